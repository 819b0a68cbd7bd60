//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/asterix"
)

func PrintStatistics(w io.Writer, stats asterix.Statistics) {
	rule := strings.Repeat("-", 50)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Statistics:")
	fmt.Fprintln(w, rule)

	items := []struct {
		name  string
		value float64
	}{
		{"layers", float64(stats.Layers)},
		{"fill_percentage", stats.FillPercentage},
		{"max_fill_percentage", stats.MaxFillPercentage},
		{"feed_rate", float64(stats.FeedRate)},
		{"valve_updates", float64(stats.ValveUpdates)},
		{"warnings", float64(stats.Warnings)},
	}

	for _, item := range items {
		fmt.Fprintf(w, "%-25s %.5g\n", item.name, item.value)
	}

	fmt.Fprintln(w, rule)
}

// textProgress shows layer progress on a terminal line
type textProgress struct {
	w io.Writer
}

func (tp *textProgress) Show(percent float32) {
	fmt.Fprintf(tp.w, "\rTranscoding: %3.0f%%", percent)
}

func (tp *textProgress) Stop() {
	fmt.Fprintln(tp.w)
}
