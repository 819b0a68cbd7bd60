//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package asterix

import (
	"math"

	"github.com/hashicorp/go-hclog"
)

// xTolerance is how far apart the ends of a deposit line may be in X
const xTolerance = 1e-8

// Rasterizer draws the vertical deposit lines of one layer into a pattern
type Rasterizer struct {
	mapper   Mapper
	pattern  *Pattern
	position Position
	logger   hclog.Logger
	warnings int
}

// NewRasterizer starts a layer at the position the previous layer ended at
func NewRasterizer(mapper Mapper, pattern *Pattern, position Position, logger hclog.Logger) (r *Rasterizer) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	r = &Rasterizer{
		mapper:   mapper,
		pattern:  pattern,
		position: position,
		logger:   logger,
	}

	return
}

// Add applies a single move
func (r *Rasterizer) Add(move Move) {
	current := r.position
	target := current.Apply(move)

	r.position = target

	if move.Mode != MoveDeposit || target.Y == current.Y {
		return
	}

	if math.Abs(target.X-current.X) > xTolerance {
		r.warnings++
		r.logger.Warn("deposit move is not vertical, skipped",
			"from_x", current.X, "from_y", current.Y,
			"to_x", target.X, "to_y", target.Y)
		return
	}

	begin, end := current, target
	if end.Y < begin.Y {
		begin, end = end, begin
	}

	// Bring far out of range coordinates just outside the pattern, so
	// AddLine clamps and warns instead of the int conversion overflowing
	rows := float64(r.pattern.Rows)
	width := float64(r.pattern.Cols) * r.mapper.Resolution
	x := clampFloat(begin.X, -r.mapper.Resolution, width+r.mapper.Resolution)
	beginY := clampFloat(begin.Y, -1, rows+1)
	endY := clampFloat(end.Y, -1, rows+1)

	column := r.mapper.ToPattern(x)
	warn := r.pattern.AddLine(column, r.mapper.ToRow(beginY), r.mapper.ToRow(endY))
	if warn != nil {
		r.warnings++
		r.logger.Warn("attempt to set pattern out of bounds",
			"error", warn, "cols", r.pattern.Cols, "rows", r.pattern.Rows)
	}
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Position is where the layer left the head
func (r *Rasterizer) Position() Position {
	return r.position
}

// Warnings is the number of skipped or clamped moves
func (r *Rasterizer) Warnings() int {
	return r.warnings
}
