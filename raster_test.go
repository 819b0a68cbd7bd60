//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package asterix

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

var (
	testBed20 = Machine{
		Dimensions: MachineDimensions{
			XMaximumPosition: 1388,
			YInitialPosition: 118,
			YMaximumPosition: 1462,
			YFeedRate:        6000,
		},
		Bed: BedParameters{
			XSize:          20,
			YSize:          20,
			Resolution:     5,
			DepositionRate: 6000,
		},
		DwellMs: 3000,
	}
)

func rasterize(t *testing.T, machine Machine, gcode string, start Position, logger hclog.Logger) (p *Pattern, r *Rasterizer) {
	cols, rows, err := machine.PatternSize()
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	mapper, err := machine.Mapper()
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	p = NewPattern(cols, rows)
	r = NewRasterizer(mapper, p, start, logger)

	for _, line := range strings.Split(gcode, "\n") {
		move, err := ParseMove(line)
		if err != nil {
			continue
		}
		r.Add(move)
	}

	return
}

func TestRasterizeEmpty(t *testing.T) {
	p, _ := rasterize(t, testBed20, "", Position{}, nil)

	if p.Cols != 4 || p.Rows != 20 {
		t.Fatalf("expected 4x20 pattern, got %vx%v", p.Cols, p.Rows)
	}

	if p.FillPercentage() != 0 {
		t.Errorf("expected empty pattern, got %v%%", p.FillPercentage())
	}
}

func TestRasterizeLines(t *testing.T) {
	full := strings.Repeat("X..X\n", 20)
	right := strings.Repeat("...X\n", 20)
	left := strings.Repeat("X...\n", 20)

	table := map[string]struct {
		gcode string
		out   string
	}{
		"two lines": {`G0 X0 Y0
G1 X0 Y20
G0 X19 Y20
G1 X19 Y0 F1500 E117.56598
G0 F3600 X30 Y50
G0 F1800 X30 Y200
G0 F3600 X5 Y0`, full},
		"downward": {`G0 X19 Y20
G1 X19 Y0`, right},
		"single": {`G1 X0 Y20`, left},
		"travel only": {`G0 X0 Y20
G0 X19 Y0`, strings.Repeat("....\n", 20)},
		"extrude in place": {`G0 X0 Y5
G1 E3.5
G1 X0 Y5 E4`, strings.Repeat("....\n", 20)},
	}

	for key, item := range table {
		p, _ := rasterize(t, testBed20, item.gcode, Position{}, nil)
		got := patternString(p)
		if got != item.out {
			t.Errorf("%v: expected:\n%v\ngot:\n%v", key, item.out, got)
		}
	}
}

func TestRasterizeSeededPosition(t *testing.T) {
	p, r := rasterize(t, testBed20, "G1 Y0", Position{X: 7, Y: 10}, nil)

	expected := strings.Repeat(".X..\n", 10) + strings.Repeat("....\n", 10)
	if got := patternString(p); got != expected {
		t.Errorf("expected:\n%v\ngot:\n%v", expected, got)
	}

	pos := r.Position()
	if pos.X != 7 || pos.Y != 0 {
		t.Errorf("expected position X7 Y0, got %+v", pos)
	}
}

func TestRasterizeWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "test",
		Output: &buf,
		Level:  hclog.Warn,
	})

	gcode := `G0 X0 Y0
G1 X10 Y20
G0 X50 Y0
G1 Y10
G1 X5 Y30`

	p, r := rasterize(t, testBed20, gcode, Position{}, logger)

	if r.Warnings() != 3 {
		t.Errorf("expected 3 warnings, got %v\n%s", r.Warnings(), buf.String())
	}

	if !strings.Contains(buf.String(), "not vertical") {
		t.Errorf("expected non-vertical warning in log, got %q", buf.String())
	}

	if !strings.Contains(buf.String(), "out of bounds") {
		t.Errorf("expected out of bounds warning in log, got %q", buf.String())
	}

	if p.FillPercentage() != 0 {
		t.Errorf("expected no lines drawn, got\n%v", patternString(p))
	}

	// Position always follows the moves
	pos := r.Position()
	if pos.X != 5 || pos.Y != 30 {
		t.Errorf("expected position X5 Y30, got %+v", pos)
	}
}

func TestRasterizeFarOutOfRange(t *testing.T) {
	table := map[string]struct {
		gcode    string
		warnings int
		out      string
	}{
		"huge Y":           {"G0 X0 Y0\nG1 X0 Y1e19", 1, strings.Repeat("X...\n", 20)},
		"huge negative Y":  {"G0 X0 Y20\nG1 X0 Y-1e19", 1, strings.Repeat("X...\n", 20)},
		"beyond Y":         {"G0 X0 Y0\nG1 X0 Y1e6", 1, strings.Repeat("X...\n", 20)},
		"huge X":           {"G0 X1e19 Y0\nG1 Y10", 1, strings.Repeat("....\n", 20)},
		"both ends beyond": {"G0 X0 Y1e19\nG1 Y2e19", 1, strings.Repeat("....\n", 20)},
		"infinite Y":       {"G0 X0 Y0\nG1 X0 YInf", 0, strings.Repeat("....\n", 20)},
		"NaN X":            {"G0 X0 Y0\nG1 XNaN Y10", 0, strings.Repeat("....\n", 20)},
	}

	for key, item := range table {
		p, r := rasterize(t, testBed20, item.gcode, Position{}, nil)
		if r.Warnings() != item.warnings {
			t.Errorf("%v: expected %v warnings, got %v", key, item.warnings, r.Warnings())
		}
		if got := patternString(p); got != item.out {
			t.Errorf("%v: expected:\n%v\ngot:\n%v", key, item.out, got)
		}
	}
}
