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
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/anonymouse64/rwtrace/internal/files"
	"github.com/anonymouse64/rwtrace/internal/profiling"
	"github.com/anonymouse64/rwtrace/internal/trace"
	"github.com/anonymouse64/rwtrace/internal/tracecmd"
)

type cmdRun struct {
	JSONOutput        bool     `short:"j" long:"json" description:"Output results in JSON"`
	OutputFile        string   `short:"o" long:"output-file" description:"A file to output the results (empty string means stdout)"`
	PrepareScript     string   `short:"p" long:"prepare-script" description:"Script to run before tracing starts"`
	PrepareScriptArgs []string `long:"prepare-script-args" description:"Args to provide to the prepare script"`
	RestoreScript     string   `short:"r" long:"restore-script" description:"Script to run after tracing ends"`
	RestoreScriptArgs []string `long:"restore-script-args" description:"Args to provide to the restore script"`
	NoDropCaches      bool     `long:"no-drop-caches" description:"Don't drop kernel caches before running the traced command"`

	Args struct {
		Cmd []string `description:"Command to run and trace" required:"yes"`
	} `positional-args:"yes" required:"yes"`
}

func (x *cmdRun) Execute(args []string) error {
	resetErrors()

	if x.PrepareScript != "" {
		if err := profiling.RunScript(x.PrepareScript, x.PrepareScriptArgs); err != nil {
			logError(fmt.Errorf("running prepare script: %w", err))
		}
	}

	straceTmp, err := ioutil.TempDir("", "rwtrace")
	if err != nil {
		return err
	}
	defer os.RemoveAll(straceTmp)

	straceLog := filepath.Join(straceTmp, "trace.log")
	if err := files.EnsureFileIsDeleted(straceLog); err != nil {
		return err
	}

	cmd, err := tracecmd.TraceCommand(straceLog, x.Args.Cmd...)
	if err != nil {
		return err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if !x.NoDropCaches {
		if err := profiling.FreeCaches(); err != nil {
			logError(fmt.Errorf("dropping caches: %w", err))
		}
	}

	if err := cmd.Run(); err != nil {
		// the traced command may legitimately exit non-zero; its exit
		// status is recovered from the trace itself below, so only bail
		// here if strace never produced a usable log
		if _, statErr := os.Stat(straceLog); statErr != nil {
			return fmt.Errorf("running traced command: %w", err)
		}
	}

	if x.RestoreScript != "" {
		if err := profiling.RunScript(x.RestoreScript, x.RestoreScriptArgs); err != nil {
			logError(fmt.Errorf("running restore script: %w", err))
		}
	}

	f, err := os.Open(straceLog)
	if err != nil {
		return fmt.Errorf("cannot open trace log: %w", err)
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
