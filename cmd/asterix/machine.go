//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/ezrec/asterix"
)

func PrintMachines(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Known machines:")
	fmt.Fprintln(w)

	keys := []string{}
	for key := range asterix.MachineFormats {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		item := asterix.MachineFormats[key]
		bed := &item.Bed
		fmt.Fprintf(w, "    %-20s %dx%d mm bed, %.3g mm/column, %d nozzles\n",
			key, bed.XSize, bed.YSize, bed.Resolution, item.Nozzles.TotalNozzles)
	}
}
