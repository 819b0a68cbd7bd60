//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ezrec/asterix"
)

const (
	testMachineYaml = `machine_dimensions:
  x_maximum_position: 1388
  y_initial_position: 118
  y_maximum_position: 1462
bed_parameters:
  x_size_mm: 20
  y_size_mm: 20
  resolution_mm: 5
`
)

func TestParseMergesDefaults(t *testing.T) {
	machine, err := Parse([]byte(testMachineYaml), asterix.DefaultMachine())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	expected := asterix.DefaultMachine()
	expected.Dimensions.XMaximumPosition = 1388
	expected.Dimensions.YInitialPosition = 118
	expected.Dimensions.YMaximumPosition = 1462
	expected.Bed.XSize = 20
	expected.Bed.YSize = 20

	if diff := cmp.Diff(expected, machine); diff != "" {
		t.Errorf("machine mismatch (-want +got):\n%s", diff)
	}

	cols, rows, _ := machine.PatternSize()
	if cols != 4 || rows != 20 {
		t.Errorf("expected 4x20, got %vx%v", cols, rows)
	}
}

func TestParseEmpty(t *testing.T) {
	machine, err := Parse(nil, asterix.DefaultMachine())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if diff := cmp.Diff(asterix.DefaultMachine(), machine); diff != "" {
		t.Errorf("machine mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInvalid(t *testing.T) {
	table := map[string]string{
		"unknown key": "bed_parameters:\n  x_size: 20\n",
		"bad type":    "bed_parameters:\n  x_size_mm: wide\n",
	}

	for key, doc := range table {
		_, err := Parse([]byte(doc), asterix.DefaultMachine())
		if err == nil {
			t.Errorf("%v: expected error", key)
		}
	}
}

func TestLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "machine.yaml")
	err := os.WriteFile(filename, []byte(testMachineYaml), 0o644)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	machine, err := Load(filename)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if machine.Dimensions.YInitialPosition != 118 || machine.Bed.DepositionRate != 6000 {
		t.Errorf("unexpected machine %+v", machine)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Errorf("expected missing file to fail")
	}
}

func TestSave(t *testing.T) {
	var buf bytes.Buffer

	err := Save(&buf, *asterix.MachineFormats["asterix"])
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	for _, expect := range []string{
		"machine_dimensions:\n",
		"  x_maximum_position: 1388\n",
		"  total_nozzles: 88\n",
		"  resolution_mm: 5\n",
		"dwell_ms: 3000\n",
	} {
		if !strings.Contains(buf.String(), expect) {
			t.Errorf("expected %q in:\n%v", expect, buf.String())
		}
	}

	machine, err := Parse(buf.Bytes(), asterix.Machine{})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if diff := cmp.Diff(*asterix.MachineFormats["asterix"], machine); diff != "" {
		t.Errorf("machine mismatch (-want +got):\n%s", diff)
	}
}

const (
	testMachineToml = `[machine_dimensions]
x_maximum_position = 1388
y_initial_position = 118
y_maximum_position = 1462

[bed_parameters]
x_size_mm = 20
y_size_mm = 20
resolution_mm = 5
`
)

func TestParseTOML(t *testing.T) {
	machine, err := ParseTOML([]byte(testMachineToml), asterix.DefaultMachine())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	expected, err := Parse([]byte(testMachineYaml), asterix.DefaultMachine())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if diff := cmp.Diff(expected, machine); diff != "" {
		t.Errorf("machine mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTOMLInvalid(t *testing.T) {
	table := map[string]string{
		"unknown key": "[bed_parameters]\nx_size = 20\n",
		"bad type":    "[bed_parameters]\nx_size_mm = \"wide\"\n",
	}

	for key, doc := range table {
		_, err := ParseTOML([]byte(doc), asterix.DefaultMachine())
		if err == nil {
			t.Errorf("%v: expected error", key)
		}
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()

	table := map[string]string{
		"machine.toml": testMachineToml,
		"machine.TOML": testMachineToml,
		"machine.yaml": testMachineYaml,
		"machine.yml":  testMachineYaml,
	}

	for name, doc := range table {
		filename := filepath.Join(dir, name)
		err := os.WriteFile(filename, []byte(doc), 0o644)
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}

		machine, err := Load(filename)
		if err != nil {
			t.Errorf("%v: unexpected error %v", name, err)
			continue
		}
		if machine.Dimensions.YInitialPosition != 118 || machine.Bed.XSize != 20 {
			t.Errorf("%v: unexpected machine %+v", name, machine)
		}
	}
}
