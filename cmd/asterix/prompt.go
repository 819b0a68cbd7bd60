//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
)

func suggestGcode(toComplete string) (files []string) {
	matches, _ := filepath.Glob(toComplete + "*")
	for _, match := range matches {
		if filepath.Ext(match) == ".gcode" {
			files = append(files, match)
		}
	}

	return
}

// promptInput asks for the G-code file to transcode
func promptInput() (filename string, err error) {
	prompt := &survey.Input{
		Message: "Select GCode file:",
		Help:    "Slicer output with ;LAYER_COUNT: and ;LAYER: markers",
		Suggest: suggestGcode,
	}

	err = survey.AskOne(prompt, &filename, survey.WithValidator(survey.Required))

	return
}
