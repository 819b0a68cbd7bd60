//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package asterix

import (
	"fmt"
	"io"
)

// gcodeWriter keeps the first write error, so emitters can be straight-line
type gcodeWriter struct {
	w   io.Writer
	err error
}

func (gw *gcodeWriter) Printf(format string, args ...interface{}) {
	if gw.err != nil {
		return
	}

	_, gw.err = fmt.Fprintf(gw.w, format, args...)
}

// Generator emits the Asterix program for layer patterns.
//
// Y is the position of the print head, X the position of the hopper.
// The hopper moves opposite to the print head.
type Generator struct {
	machine      *Machine
	arity        int
	valveUpdates int
}

func NewGenerator(machine *Machine) (g *Generator, err error) {
	err = machine.Validate()
	if err != nil {
		return
	}

	arity, err := machine.ValveArity()
	if err != nil {
		return
	}

	g = &Generator{
		machine: machine,
		arity:   arity,
	}

	return
}

// ValveUpdates is the number of pattern driven VALVES_SET commands emitted
func (g *Generator) ValveUpdates() int {
	return g.valveUpdates
}

func (g *Generator) closeValves(gw *gcodeWriter) {
	gw.Printf("%s\n", ValveCommand(make([]byte, g.arity)))
}

func (g *Generator) setValves(gw *gcodeWriter, sample []uint8) (err error) {
	values, err := PackRow(sample, g.arity)
	if err != nil {
		return
	}

	gw.Printf("%s\n", ValveCommand(values))
	g.valveUpdates++

	return
}

// Begin emits the program header
func (g *Generator) Begin(w io.Writer, layers int, jobID string, dryRun bool) (err error) {
	gw := &gcodeWriter{w: w}

	if jobID != "" {
		gw.Printf("; job = %s\n", jobID)
	}
	gw.Printf("SET_PRINT_STATS_INFO TOTAL_LAYER=%d\n", layers)
	gw.Printf("G28 X Y\n")
	gw.Printf("SET_FIRST_PASS\n")
	gw.Printf("G4 P%d ;wait for servo\n", g.machine.DwellMs)
	g.closeValves(gw)
	if dryRun {
		gw.Printf("VALVES_DISABLE\n")
	} else {
		gw.Printf("VALVES_ENABLE\n")
	}
	gw.Printf("\n")

	err = gw.err

	return
}

// End emits the program footer
func (g *Generator) End(w io.Writer, layers int) (err error) {
	gw := &gcodeWriter{w: w}

	gw.Printf("; total layers count = %d\n", layers)

	err = gw.err

	return
}

// Layer emits the two stroke program of a single layer.
//
// Valves are only updated every second row, which halves the valve
// switching frequency. The forward stroke drives the even columns and the
// backward stroke the odd columns.
func (g *Generator) Layer(w io.Writer, index int, p *Pattern) (err error) {
	dim := &g.machine.Dimensions
	rows := p.Rows

	// Checked once for both strokes: the backward stroke runs from
	// y_initial + rows down and ends at y_initial.
	if rows > dim.YMaximumPosition-dim.YInitialPosition {
		err = &GeometryOverflowError{
			Layer: index,
			Row:   rows - 1,
			Y:     dim.YInitialPosition + rows,
			Limit: dim.YMaximumPosition,
		}
		return
	}

	gw := &gcodeWriter{w: w}

	// Layer begin
	gw.Printf(";Layer%d\n", index+1)
	gw.Printf("SET_PRINT_STATS_INFO CURRENT_LAYER=%d\n", index+1)
	gw.Printf("RESPOND MSG=\"Start layer %d\"\n", index+1)
	gw.Printf("FILL_HOPPER_ASYNC\n")
	gw.Printf("SET_FIRST_PASS\n")
	gw.Printf("Z_ONE_LAYER\n")
	gw.Printf("PAUSE_PRINTER ;wait for button press\n")
	gw.Printf("G1 X%d F%d ; deposit material\n", dim.XMaximumPosition, g.machine.Bed.DepositionRate)

	scan := p.Transpose()
	combined := g.machine.CombinedFeedRate()

	// Forward stroke, hopper moves with the head until it is home
	y := dim.YInitialPosition
	for row := 0; row < rows; row++ {
		y = dim.YInitialPosition + row

		x := dim.XMaximumPosition - y
		feed := combined
		if x < 0 {
			x = 0
			feed = dim.YFeedRate
		}

		gw.Printf("G1 Y%d X%d F%d\n", y, x, feed)

		if row%2 == 1 {
			err = g.setValves(gw, scan.Sample(row, 0, 2))
			if err != nil {
				return
			}
		}
	}

	// Return, overshoot by 1mm to be sure the valves are closed
	y = dim.YInitialPosition + rows
	gw.Printf("G1 Y%d F%d\n", y, dim.YFeedRate)
	g.closeValves(gw)
	gw.Printf("G1 Y%d\n", y+1)
	gw.Printf("FILL_HOPPER_ASYNC\n")
	gw.Printf("SET_SECOND_PASS\n")
	gw.Printf("G4 P%d\n", g.machine.DwellMs)

	// Backward stroke, print head only
	for n := 0; n < rows; n++ {
		row := rows - 1 - n

		gw.Printf("G1 Y%d F%d\n", y, dim.YFeedRate)

		if n%2 == 1 {
			err = g.setValves(gw, scan.Sample(row, 1, 2))
			if err != nil {
				return
			}
		}

		y--
	}

	// Layer end
	gw.Printf("G1 Y%d\n", dim.YInitialPosition)
	g.closeValves(gw)
	gw.Printf("G1 Y0\n")

	err = gw.err

	return
}
