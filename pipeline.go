//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package asterix

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
)

const (
	layerMarker = ";LAYER:"
)

var (
	layerCountRegexp = regexp.MustCompile(`(?i);LAYER_COUNT:(\d+)`)
)

// Statistics of a transcode run
type Statistics struct {
	Layers            int     // Layers found
	FillPercentage    float64 // Mean pattern fill over all layers
	MaxFillPercentage float64 // Fill of the most covered layer
	FeedRate          int     // Combined head and hopper feed rate, mm/min
	ValveUpdates      int     // Pattern driven VALVES_SET commands
	Warnings          int     // Skipped or clamped deposit moves
}

type Result struct {
	Program    string
	Statistics Statistics
}

// Transcoder converts slicer G-code into an Asterix program
type Transcoder struct {
	Machine  *Machine
	Logger   hclog.Logger
	Progress Progressor
	JobID    string // Written into the program header, if set
	DryRun   bool   // Run the program with the valves disabled

	// OnLayer, if set, is shown every layer pattern before its code is
	// generated. The pattern must not be modified.
	OnLayer func(index int, pattern *Pattern) error
}

// layerBlocks splits the program into the lines of each layer.
// The layer count must be declared before the first layer.
func layerBlocks(program string) (count int, blocks [][]string, err error) {
	var match []string

	for _, line := range strings.Split(program, "\n") {
		line = strings.TrimRight(line, "\r")

		if len(line) >= len(layerMarker) && strings.EqualFold(line[:len(layerMarker)], layerMarker) {
			blocks = append(blocks, nil)
			continue
		}

		if len(blocks) > 0 {
			blocks[len(blocks)-1] = append(blocks[len(blocks)-1], line)
		} else if match == nil {
			match = layerCountRegexp.FindStringSubmatch(line)
		}
	}

	if match == nil {
		err = &ConfigurationError{Field: "LAYER_COUNT", Reason: "not found before the first layer"}
		return
	}

	count, err = strconv.Atoi(match[1])
	if err != nil {
		err = &ConfigurationError{Field: "LAYER_COUNT", Reason: fmt.Sprintf("invalid count %q", match[1])}
		return
	}

	if len(blocks) != count {
		err = &ConfigurationError{
			Field:  "LAYER_COUNT",
			Reason: fmt.Sprintf("found %d layers but expected %d", len(blocks), count),
		}
		return
	}

	return
}

// Transcode converts a whole program. No output is returned on error.
func (tc *Transcoder) Transcode(program string) (result *Result, err error) {
	logger := tc.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	machine := tc.Machine
	if machine == nil {
		err = &ConfigurationError{Reason: "no machine configured"}
		return
	}

	gen, err := NewGenerator(machine)
	if err != nil {
		return
	}

	mapper, err := machine.Mapper()
	if err != nil {
		return
	}

	cols, rows, err := machine.PatternSize()
	if err != nil {
		return
	}

	count, blocks, err := layerBlocks(program)
	if err != nil {
		return
	}

	logger.Debug("transcoding", "layers", count, "cols", cols, "rows", rows)

	var out bytes.Buffer
	var stats Statistics

	stats.Layers = count
	stats.FeedRate = machine.CombinedFeedRate()

	err = gen.Begin(&out, count, tc.JobID, tc.DryRun)
	if err != nil {
		return
	}

	prog := NewProgress(tc.Progress, count)
	defer func() {
		if err != nil {
			prog.Stop()
			return
		}
		prog.Close()
	}()

	var position Position
	var layerOut bytes.Buffer
	for index, block := range blocks {
		pattern := NewPattern(cols, rows)
		raster := NewRasterizer(mapper, pattern, position,
			logger.Named("rasterizer").With("layer", index))

		for _, line := range block {
			move, perr := ParseMove(line)
			if perr != nil {
				continue
			}
			raster.Add(move)
		}

		position = raster.Position()
		stats.Warnings += raster.Warnings()

		fill := pattern.FillPercentage()
		stats.FillPercentage += fill
		if fill > stats.MaxFillPercentage {
			stats.MaxFillPercentage = fill
		}

		if tc.OnLayer != nil {
			err = tc.OnLayer(index, pattern)
			if err != nil {
				err = fmt.Errorf("layer %d: %w", index, err)
				return
			}
		}

		layerOut.Reset()
		err = gen.Layer(&layerOut, index, pattern)
		if err != nil {
			var goe *GeometryOverflowError
			if !errors.As(err, &goe) {
				err = fmt.Errorf("layer %d: %w", index, err)
			}
			return
		}

		_, err = io.Copy(&out, &layerOut)
		if err != nil {
			return
		}

		logger.Trace("layer done", "layer", index, "fill", fill)
		prog.Indicate()
	}

	err = gen.End(&out, count)
	if err != nil {
		return
	}

	if count > 0 {
		stats.FillPercentage /= float64(count)
	}
	stats.ValveUpdates = gen.ValveUpdates()

	result = &Result{
		Program:    out.String(),
		Statistics: stats,
	}

	return
}

// TranscodeReader reads the whole program, then transcodes it
func (tc *Transcoder) TranscodeReader(reader io.Reader) (result *Result, err error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return
	}

	result, err = tc.Transcode(string(data))

	return
}
