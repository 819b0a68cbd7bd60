//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package asterix

import (
	"image"
)

// Pattern is the coverage bitmap of a single layer.
//
// Cells are stored column major, so a vertical line is a contiguous
// run of Pix.
type Pattern struct {
	Cols, Rows int
	Pix        []uint8
}

func NewPattern(cols, rows int) (p *Pattern) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}

	p = &Pattern{
		Cols: cols,
		Rows: rows,
		Pix:  make([]uint8, cols*rows),
	}

	return
}

// AddLine sets rows [startRow, endRow) of a column.
//
// Out of range rows are clamped and an out of range column is dropped;
// in both cases a *GeometryWarning is returned, and the in-range part
// of the line is still applied.
func (p *Pattern) AddLine(column, startRow, endRow int) (warn error) {
	if column < 0 || column >= p.Cols {
		warn = &GeometryWarning{
			Column:   column,
			StartRow: startRow,
			EndRow:   endRow,
			Reason:   "column out of bounds",
		}
		return
	}

	if startRow < 0 || endRow > p.Rows {
		warn = &GeometryWarning{
			Column:   column,
			StartRow: startRow,
			EndRow:   endRow,
			Reason:   "rows out of bounds, clamped",
		}
		if startRow < 0 {
			startRow = 0
		}
		if endRow > p.Rows {
			endRow = p.Rows
		}
	}

	if startRow >= endRow {
		return
	}

	col := p.Pix[column*p.Rows : (column+1)*p.Rows]
	for n := startRow; n < endRow; n++ {
		col[n] = 1
	}

	return
}

func (p *Pattern) At(column, row int) uint8 {
	return p.Pix[column*p.Rows+row]
}

// Clear resets the pattern to all zeros
func (p *Pattern) Clear() {
	for n := range p.Pix {
		p.Pix[n] = 0
	}
}

// View returns the pattern indexed as (column, row)
func (p *Pattern) View() *View {
	return &View{
		pix:     p.Pix,
		width:   p.Cols,
		height:  p.Rows,
		xStride: p.Rows,
		yStride: 1,
	}
}

// Transpose returns the pattern indexed as (row, column), sharing storage
func (p *Pattern) Transpose() *View {
	return p.View().Transpose()
}

// FillPercentage is the percentage of set cells
func (p *Pattern) FillPercentage() (percent float64) {
	if len(p.Pix) == 0 {
		return
	}

	set := 0
	for _, c := range p.Pix {
		if c != 0 {
			set++
		}
	}

	percent = float64(set) * 100.0 / float64(len(p.Pix))

	return
}

// Image renders the pattern with X as column, Y as row
func (p *Pattern) Image() (gm *image.Gray) {
	gm = image.NewGray(image.Rect(0, 0, p.Cols, p.Rows))

	for x := 0; x < p.Cols; x++ {
		for y := 0; y < p.Rows; y++ {
			if p.At(x, y) != 0 {
				gm.Pix[y*gm.Stride+x] = 0xff
			}
		}
	}

	return
}

// View is a strided, read-only window on pattern storage.
// At(i, j) addresses line i, element j.
type View struct {
	pix              []uint8
	width, height    int
	xStride, yStride int
}

// Dims returns the number of lines, and the elements per line
func (v *View) Dims() (lines, length int) {
	return v.width, v.height
}

func (v *View) At(i, j int) uint8 {
	return v.pix[i*v.xStride+j*v.yStride]
}

func (v *View) Transpose() *View {
	return &View{
		pix:     v.pix,
		width:   v.height,
		height:  v.width,
		xStride: v.yStride,
		yStride: v.xStride,
	}
}

// Sample copies every stride'th element of a line, starting at offset
func (v *View) Sample(line, offset, stride int) (out []uint8) {
	for j := offset; j < v.height; j += stride {
		out = append(out, v.At(line, j))
	}

	return
}
