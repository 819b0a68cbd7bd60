//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package layerpng writes layer patterns as PNG images, one pixel per mm
package layerpng

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/ezrec/asterix"
)

// Image scales a pattern to machine proportions; one pixel per mm
func Image(p *asterix.Pattern, mapper asterix.Mapper) (gm *image.Gray) {
	src := p.Image()

	width := mapper.ToMachine(float64(p.Cols))
	height := p.Rows

	gm = image.NewGray(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(gm, gm.Bounds(), src, src.Bounds(), draw.Src, nil)

	return
}

func Encode(writer io.Writer, p *asterix.Pattern, mapper asterix.Mapper) (err error) {
	err = png.Encode(writer, Image(p, mapper))

	return
}

// Exporter writes each layer to a numbered file in a directory
type Exporter struct {
	Dir    string
	Mapper asterix.Mapper
}

func (ex *Exporter) Filename(index int) string {
	return filepath.Join(ex.Dir, fmt.Sprintf("layer%05d.png", index))
}

// Layer writes a single layer; it can be used as a Transcoder.OnLayer hook
func (ex *Exporter) Layer(index int, p *asterix.Pattern) (err error) {
	writer, err := os.Create(ex.Filename(index))
	if err != nil {
		return
	}
	defer func() {
		cerr := writer.Close()
		if err == nil {
			err = cerr
		}
	}()

	err = Encode(writer, p, ex.Mapper)

	return
}

// StagedExporter writes layers into a scratch directory beside Target.
// The images only appear in Target once Commit is called.
type StagedExporter struct {
	Exporter
	Target string
}

func NewStagedExporter(target string, mapper asterix.Mapper) (ex *StagedExporter, err error) {
	target = filepath.Clean(target)

	err = os.MkdirAll(filepath.Dir(target), 0o755)
	if err != nil {
		return
	}

	dir, err := os.MkdirTemp(filepath.Dir(target), "."+filepath.Base(target)+"-")
	if err != nil {
		return
	}

	ex = &StagedExporter{
		Exporter: Exporter{Dir: dir, Mapper: mapper},
		Target:   target,
	}

	return
}

// Commit moves the written layers into Target, and removes the scratch directory
func (ex *StagedExporter) Commit() (err error) {
	err = os.MkdirAll(ex.Target, 0o755)
	if err != nil {
		return
	}

	entries, err := os.ReadDir(ex.Dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		err = os.Rename(filepath.Join(ex.Dir, entry.Name()), filepath.Join(ex.Target, entry.Name()))
		if err != nil {
			return
		}
	}

	err = os.Remove(ex.Dir)

	return
}

// Discard removes the scratch directory and everything written to it
func (ex *StagedExporter) Discard() (err error) {
	err = os.RemoveAll(ex.Dir)

	return
}
