/*
 * Copyright (C) 2019 Canonical Ltd
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License version 3 as
 * published by the Free Software Foundation.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/anonymouse64/rwtrace/internal/trace"
)

// ResultOutput is the JSON/text rendering of an analyzed trace.
type ResultOutput struct {
	ReadSet  []string
	WriteSet []string
	ExitCode int
	Errors   []string `json:",omitempty"`
}

func tabWriterGeneric(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 5, 3, 2, ' ', 0)
}

// writeResult renders a trace.Result to w, either as JSON or as a
// column-aligned (space padded) read-set/write-set/exit-code dump.
func writeResult(w io.Writer, res *trace.Result, jsonOutput bool) error {
	var errStrs []string
	for _, e := range errs {
		errStrs = append(errStrs, e.Error())
	}
	out := ResultOutput{
		ReadSet:  res.SortedReadSet(),
		WriteSet: res.SortedWriteSet(),
		ExitCode: res.Exit.Code,
		Errors:   errStrs,
	}

	if jsonOutput {
		return json.NewEncoder(w).Encode(out)
	}

	wtab := tabWriterGeneric(w)
	for _, p := range out.ReadSet {
		fmt.Fprintf(wtab, "read\t%s\n", p)
	}
	for _, p := range out.WriteSet {
		fmt.Fprintf(wtab, "write\t%s\n", p)
	}
	fmt.Fprintf(wtab, "exit\t%d\n", out.ExitCode)
	return wtab.Flush()
}
