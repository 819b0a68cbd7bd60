//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package asterix

import (
	"math"
	"strconv"
	"strings"
)

type MoveMode int

const (
	MoveTravel  = MoveMode(iota) // G0
	MoveDeposit                  // G1
)

// Axis is a set of axes present in a move
type Axis uint8

const (
	AxisX = Axis(1 << iota)
	AxisY
	AxisZ
	AxisE
)

// Move is a single G0/G1 command. Axes not in Axes are unchanged.
type Move struct {
	Mode       MoveMode
	Axes       Axis
	X, Y, Z, E float64
}

func (move Move) Has(axis Axis) bool {
	return (move.Axes & axis) == axis
}

// Position is the running machine position, in mm
type Position struct {
	X, Y, Z, E float64
}

// Apply resolves the move against the position
func (pos Position) Apply(move Move) (target Position) {
	target = pos

	if move.Has(AxisX) {
		target.X = move.X
	}
	if move.Has(AxisY) {
		target.Y = move.Y
	}
	if move.Has(AxisZ) {
		target.Z = move.Z
	}
	if move.Has(AxisE) {
		target.E = move.E
	}

	return
}

// ParseMove parses a G0 or G1 line
func ParseMove(line string) (move Move, err error) {
	text := line
	if n := strings.IndexByte(text, ';'); n >= 0 {
		text = text[:n]
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		err = &ParseError{Line: line, Reason: "empty"}
		return
	}

	switch fields[0] {
	case "G0":
		move.Mode = MoveTravel
	case "G1":
		move.Mode = MoveDeposit
	default:
		err = &ParseError{Line: line, Reason: "not a G0 or G1 command"}
		return
	}

	for _, field := range fields[1:] {
		var axis Axis
		var ptr *float64

		switch field[0] {
		case 'X':
			axis, ptr = AxisX, &move.X
		case 'Y':
			axis, ptr = AxisY, &move.Y
		case 'Z':
			axis, ptr = AxisZ, &move.Z
		case 'E':
			axis, ptr = AxisE, &move.E
		default:
			continue
		}

		var val float64
		val, err = strconv.ParseFloat(field[1:], 64)
		if err != nil {
			err = &ParseError{Line: line, Reason: "invalid parameter " + field}
			return
		}
		if math.IsNaN(val) || math.IsInf(val, 0) {
			err = &ParseError{Line: line, Reason: "non-finite parameter " + field}
			return
		}

		*ptr = val
		move.Axes |= axis
	}

	if move.Axes == 0 {
		err = &ParseError{Line: line, Reason: "needs at least one X, Y, Z or E parameter"}
		return
	}

	return
}
