//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package asterix

import (
	"math"
)

// Mapper converts between pattern cells and machine millimeters.
//
// One pattern column is Resolution mm wide; one pattern row is 1 mm tall.
// All conversions floor, so the results are reproducible bit-for-bit.
type Mapper struct {
	Resolution float64
}

func NewMapper(resolution float64) (mapper Mapper, err error) {
	if !(resolution > 0) || math.IsInf(resolution, 0) {
		err = &ConfigurationError{Field: "resolution_mm", Reason: "must be positive"}
		return
	}

	mapper = Mapper{Resolution: resolution}

	return
}

// ToPattern converts a machine coordinate (mm) to a pattern cell
func (m Mapper) ToPattern(v float64) int {
	return int(math.Floor(v / m.Resolution))
}

// ToMachine converts a pattern cell to a machine coordinate (mm)
func (m Mapper) ToMachine(v float64) int {
	return int(math.Floor(v * m.Resolution))
}

func (m Mapper) ToPatternPoint(x, y float64) (px, py int) {
	px = m.ToPattern(x)
	py = m.ToPattern(y)
	return
}

func (m Mapper) ToMachinePoint(x, y float64) (mx, my int) {
	mx = m.ToMachine(x)
	my = m.ToMachine(y)
	return
}

// ToRow converts a machine Y coordinate to a pattern row; rows are 1 mm.
func (m Mapper) ToRow(y float64) int {
	return int(math.Floor(y))
}
