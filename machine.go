//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package asterix

import (
	"fmt"
	"math"
)

type MachineDimensions struct {
	XInitialPosition int `yaml:"x_initial_position" toml:"x_initial_position"`
	XMaximumPosition int `yaml:"x_maximum_position" toml:"x_maximum_position"`
	YInitialPosition int `yaml:"y_initial_position" toml:"y_initial_position"`
	YMaximumPosition int `yaml:"y_maximum_position" toml:"y_maximum_position"`
	YFeedRate        int `yaml:"y_feed_rate" toml:"y_feed_rate"` // mm/min
}

type NozzleConfiguration struct {
	TotalNozzles       int `yaml:"total_nozzles" toml:"total_nozzles"` // 0 derives the valve arity from the bed
	NozzlesPerManifold int `yaml:"nozzles_per_manifold" toml:"nozzles_per_manifold"`
	NumberOfPasses     int `yaml:"number_of_passes" toml:"number_of_passes"`
}

type BedParameters struct {
	XSize          int     `yaml:"x_size_mm" toml:"x_size_mm"`
	YSize          int     `yaml:"y_size_mm" toml:"y_size_mm"`
	Resolution     float64 `yaml:"resolution_mm" toml:"resolution_mm"`     // mm per pattern column
	DepositionRate int     `yaml:"deposition_rate" toml:"deposition_rate"` // mm/min
}

// Machine is the resolved configuration for a transcode
type Machine struct {
	Dimensions MachineDimensions   `yaml:"machine_dimensions" toml:"machine_dimensions"`
	Nozzles    NozzleConfiguration `yaml:"nozzle_configuration" toml:"nozzle_configuration"`
	Bed        BedParameters       `yaml:"bed_parameters" toml:"bed_parameters"`
	DwellMs    int                 `yaml:"dwell_ms" toml:"dwell_ms"` // servo settle time
}

// DefaultMachine returns the defaults a configuration file is merged over
func DefaultMachine() (machine Machine) {
	machine = Machine{
		Dimensions: MachineDimensions{
			XInitialPosition: 0,
			XMaximumPosition: 1000,
			YInitialPosition: 0,
			YMaximumPosition: 1000,
			YFeedRate:        6000,
		},
		Bed: BedParameters{
			XSize:          100,
			YSize:          100,
			Resolution:     5,
			DepositionRate: 6000,
		},
		DwellMs: 3000,
	}

	return
}

func (machine *Machine) Mapper() (mapper Mapper, err error) {
	return NewMapper(machine.Bed.Resolution)
}

// PatternSize returns the layer pattern size, in columns and rows
func (machine *Machine) PatternSize() (cols, rows int, err error) {
	mapper, err := machine.Mapper()
	if err != nil {
		return
	}

	cols = mapper.ToPattern(float64(machine.Bed.XSize))
	rows = machine.Bed.YSize

	return
}

// ValveArity is the number of bytes in a VALVES_SET command
func (machine *Machine) ValveArity() (arity int, err error) {
	if machine.Nozzles.TotalNozzles > 0 {
		arity = (machine.Nozzles.TotalNozzles + 7) / 8
		return
	}

	cols, _, err := machine.PatternSize()
	if err != nil {
		return
	}

	// Each stroke drives every second column
	arity = ((cols+1)/2 + 7) / 8

	return
}

// CombinedFeedRate is the feed rate for simultaneous head and hopper moves.
// The controller sees a diagonal, so the rate is scaled by sqrt(2) to keep
// each axis at the Y feed rate.
func (machine *Machine) CombinedFeedRate() int {
	return int(math.Round(math.Sqrt2 * float64(machine.Dimensions.YFeedRate)))
}

// Validate checks the machine is usable for a transcode
func (machine *Machine) Validate() (err error) {
	dim := &machine.Dimensions
	bed := &machine.Bed

	cols, rows, err := machine.PatternSize()
	if err != nil {
		return
	}

	switch {
	case cols <= 0:
		err = &ConfigurationError{Field: "x_size_mm", Reason: "bed narrower than one pattern column"}
	case rows <= 0:
		err = &ConfigurationError{Field: "y_size_mm", Reason: "must be positive"}
	case dim.YMaximumPosition <= dim.YInitialPosition:
		err = &ConfigurationError{Field: "y_maximum_position", Reason: "must be beyond y_initial_position"}
	case dim.YFeedRate <= 0:
		err = &ConfigurationError{Field: "y_feed_rate", Reason: "must be positive"}
	case bed.DepositionRate <= 0:
		err = &ConfigurationError{Field: "deposition_rate", Reason: "must be positive"}
	case machine.DwellMs < 0:
		err = &ConfigurationError{Field: "dwell_ms", Reason: "must not be negative"}
	case machine.Nozzles.TotalNozzles < 0:
		err = &ConfigurationError{Field: "total_nozzles", Reason: "must not be negative"}
	case machine.Nozzles.TotalNozzles > 0 && machine.Nozzles.TotalNozzles < (cols+1)/2:
		err = &ConfigurationError{
			Field:  "total_nozzles",
			Reason: fmt.Sprintf("%d nozzles cannot cover %d pattern columns", machine.Nozzles.TotalNozzles, cols),
		}
	}

	return
}

var (
	MachineFormats = map[string](*Machine){}
)

func RegisterMachine(name string, machine Machine) (err error) {
	_, ok := MachineFormats[name]
	if ok {
		err = fmt.Errorf("name already exists in Machine list")
		return
	}

	MachineFormats[name] = &machine

	return
}

func RegisterMachines(machineMap map[string]Machine) (err error) {
	for name, machine := range machineMap {
		err = RegisterMachine(name, machine)
		if err != nil {
			return
		}
	}

	return
}

var (
	machines_builtin = map[string]Machine{
		"asterix": {
			Dimensions: MachineDimensions{
				XInitialPosition: 0,
				XMaximumPosition: 1388,
				YInitialPosition: 118,
				YMaximumPosition: 1462,
				YFeedRate:        6000,
			},
			Nozzles: NozzleConfiguration{
				TotalNozzles:       88,
				NozzlesPerManifold: 8,
				NumberOfPasses:     2,
			},
			Bed: BedParameters{
				XSize:          880,
				YSize:          1000,
				Resolution:     5,
				DepositionRate: 6000,
			},
			DwellMs: 3000,
		},
		"default": DefaultMachine(),
	}
)

func init() {
	RegisterMachines(machines_builtin)
}
