//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"

	"github.com/ezrec/asterix"
	"github.com/ezrec/asterix/config"
	"github.com/ezrec/asterix/layerpng"
)

const (
	defaultMachine = "asterix"
	autoJobID      = "auto"
)

type TranscodeCommand struct {
	*pflag.FlagSet

	Output       string
	Config       string
	Machine      string
	JobID        string
	LayersPng    string
	DryRun       bool
	Verbose      int
	Quiet        bool
	ListMachines bool
	PrintConfig  bool
}

func NewTranscodeCommand() (cmd *TranscodeCommand) {
	cmd = &TranscodeCommand{
		FlagSet: pflag.NewFlagSet("asterix", pflag.ContinueOnError),
	}

	cmd.StringVarP(&cmd.Output, "output", "o", "", "Output file (default: <input>_processed.gcode)")
	cmd.StringVarP(&cmd.Config, "config", "c", "", "Machine configuration (YAML, or TOML if .toml), merged over the machine preset")
	cmd.StringVarP(&cmd.Machine, "machine", "M", defaultMachine, "Machine preset [see 'Known machines' in help]")
	cmd.StringVarP(&cmd.JobID, "job-id", "j", "", "Tag the program with a job ID ('auto' to generate one)")
	cmd.StringVarP(&cmd.LayersPng, "layers-png", "L", "", "Directory to write each layer pattern as PNG, on success")
	cmd.BoolVarP(&cmd.DryRun, "dry-run", "n", false, "Run the program with the valves disabled")
	cmd.CountVarP(&cmd.Verbose, "verbose", "v", "Increase logging verbosity")
	cmd.BoolVarP(&cmd.Quiet, "quiet", "q", false, "Do not print statistics")
	cmd.BoolVar(&cmd.ListMachines, "list-machines", false, "List the known machine presets")
	cmd.BoolVar(&cmd.PrintConfig, "print-config", false, "Print the resolved machine configuration as YAML")

	cmd.SetInterspersed(true)

	return
}

func outputFilename(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "_processed.gcode"
}

func (cmd *TranscodeCommand) logger(stderr io.Writer) hclog.Logger {
	level := hclog.Warn
	switch {
	case cmd.Verbose >= 3:
		level = hclog.Trace
	case cmd.Verbose == 2:
		level = hclog.Debug
	case cmd.Verbose == 1:
		level = hclog.Info
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "asterix",
		Level:  level,
		Output: stderr,
	})
}

// machine resolves the preset, and merges the configuration file over it
func (cmd *TranscodeCommand) machine() (machine asterix.Machine, err error) {
	preset, ok := asterix.MachineFormats[cmd.Machine]
	if !ok {
		err = fmt.Errorf("unknown machine \"%v\"", cmd.Machine)
		return
	}

	machine = *preset

	if cmd.Config != "" {
		machine, err = config.LoadOver(cmd.Config, machine)
		if err != nil {
			return
		}
	}

	return
}

func (cmd *TranscodeCommand) Run(stdout, stderr io.Writer) (err error) {
	if cmd.ListMachines {
		PrintMachines(stdout)
		return
	}

	logger := cmd.logger(stderr)

	machine, err := cmd.machine()
	if err != nil {
		return
	}

	if cmd.PrintConfig {
		err = config.Save(stdout, machine)
		return
	}

	var input string
	switch cmd.NArg() {
	case 0:
		input, err = promptInput()
		if err != nil {
			return
		}
	case 1:
		input = cmd.Arg(0)
	default:
		err = errors.New("only one input file may be given")
		return
	}

	output := cmd.Output
	if output == "" {
		output = outputFilename(input)
	}

	jobID := cmd.JobID
	if jobID == autoJobID {
		jobID = uuid.New().String()
	}

	reader, err := os.Open(input)
	if err != nil {
		return
	}
	defer func() { reader.Close() }()

	tc := &asterix.Transcoder{
		Machine: &machine,
		Logger:  logger,
		JobID:   jobID,
		DryRun:  cmd.DryRun,
	}

	if cmd.Verbose > 0 {
		tc.Progress = &textProgress{w: stderr}
	}

	var exporter *layerpng.StagedExporter
	if cmd.LayersPng != "" {
		var mapper asterix.Mapper
		mapper, err = machine.Mapper()
		if err != nil {
			return
		}

		exporter, err = layerpng.NewStagedExporter(cmd.LayersPng, mapper)
		if err != nil {
			return
		}
		defer func() {
			if err != nil {
				exporter.Discard()
			}
		}()

		tc.OnLayer = exporter.Layer
	}

	logger.Info("transcoding", "input", input, "output", output, "machine", cmd.Machine, "job", jobID)

	result, err := tc.TranscodeReader(reader)
	if err != nil {
		return
	}

	err = os.WriteFile(output, []byte(result.Program), 0o644)
	if err != nil {
		return
	}

	if exporter != nil {
		err = exporter.Commit()
		if err != nil {
			return
		}
	}

	fmt.Fprintf(stdout, "Processing complete. Output written to: %s\n", output)

	if !cmd.Quiet {
		PrintStatistics(stdout, result.Statistics)
	}

	return
}

func main() {
	cmd := NewTranscodeCommand()
	cmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n\n  asterix [options] [input.gcode]\n\nOptions:\n\n")
		cmd.PrintDefaults()
		PrintMachines(os.Stderr)
	}

	err := cmd.Parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err = cmd.Run(os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error processing file: %v\n", err)
		os.Exit(1)
	}
}
