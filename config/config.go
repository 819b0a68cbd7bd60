//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package config loads Asterix machine descriptions from YAML or TOML files
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ezrec/asterix"
)

// Parse decodes a machine description over a base machine.
// Keys absent from the document keep the value of the base.
func Parse(data []byte, base asterix.Machine) (machine asterix.Machine, err error) {
	machine = base

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	err = decoder.Decode(&machine)
	if err == io.EOF {
		// Empty document
		err = nil
	}
	if err != nil {
		err = fmt.Errorf("machine config: %w", err)
		return
	}

	return
}

// ParseTOML decodes a TOML machine description over a base machine.
// The sections and keys are the same as for YAML.
func ParseTOML(data []byte, base asterix.Machine) (machine asterix.Machine, err error) {
	machine = base

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	err = decoder.Decode(&machine)
	if err != nil {
		err = fmt.Errorf("machine config: %w", err)
		return
	}

	return
}

// Load reads a machine description file over the default machine
func Load(filename string) (machine asterix.Machine, err error) {
	return LoadOver(filename, asterix.DefaultMachine())
}

// LoadOver reads a machine description file over a base machine.
// Files ending in .toml are TOML, anything else YAML.
func LoadOver(filename string, base asterix.Machine) (machine asterix.Machine, err error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return
	}

	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		machine, err = ParseTOML(data, base)
	} else {
		machine, err = Parse(data, base)
	}
	if err != nil {
		err = fmt.Errorf("%s: %w", filename, err)
		return
	}

	return
}

// Save writes a machine description as YAML
func Save(writer io.Writer, machine asterix.Machine) (err error) {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)

	err = encoder.Encode(&machine)
	if err != nil {
		return
	}

	err = encoder.Close()

	return
}
