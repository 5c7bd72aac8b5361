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
	"fmt"
	"os"

	"github.com/anonymouse64/rwtrace/internal/files"
	"github.com/anonymouse64/rwtrace/internal/trace"
)

type cmdAnalyze struct {
	JSONOutput bool   `short:"j" long:"json" description:"Output results in JSON"`
	OutputFile string `short:"o" long:"output-file" description:"A file to output the results (empty string means stdout)"`

	Args struct {
		TraceFile string `description:"Path to an existing strace log" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

func (x *cmdAnalyze) Execute(args []string) error {
	resetErrors()

	f, err := os.Open(x.Args.TraceFile)
	if err != nil {
		return fmt.Errorf("cannot open trace file: %w", err)
	}
	defer f.Close()

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	res, err := trace.Run(f, cwd)
	if err != nil {
		return fmt.Errorf("cannot analyze trace: %w", err)
	}

	w := os.Stdout
	if x.OutputFile != "" {
		out, err := files.EnsureExistsAndOpen(x.OutputFile, true)
		if err != nil {
			return err
		}
		defer out.Close()
		w = out
	}

	return writeResult(w, res, x.JSONOutput)
}
