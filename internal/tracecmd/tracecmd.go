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

// Package tracecmd builds the strace invocation used to produce a trace
// that internal/trace can parse.
package tracecmd

import (
	"fmt"
	"os/exec"
	"os/user"

	"github.com/anonymouse64/rwtrace/internal/commands"
)

// These syscalls are excluded because they make strace hang on all or
// some architectures (gettimeofday on arm64).
var excludedSyscalls = "!select,pselect6,_newselect,clock_gettime,sigaltstack,gettid,gettimeofday,nanosleep"

// straceCommand returns how to run strace in the user's context with the
// right set of excluded system calls, writing a single interleaved trace
// to traceLogPath.
func straceCommand(traceLogPath string, extraStraceOpts []string, traceeCmd ...string) (*exec.Cmd, error) {
	current, err := user.Current()
	if err != nil {
		return nil, err
	}

	stracePath, err := exec.LookPath("strace")
	if err != nil {
		return nil, fmt.Errorf("cannot find an installed strace, please try 'snap install strace-static'")
	}

	args := []string{
		stracePath,
		"-u", current.Username,
		// follow forks, but keep a single output stream (no -ff) so that
		// lines from every pid interleave in the order they happened,
		// each one prefixed with its pid
		"-f",
		// annotate every file descriptor argument with <path>, which is
		// how fd-based syscalls (fstat, close, read, ...) recover a path
		"-y",
		// capture full path strings instead of strace's default
		// truncation, otherwise longer paths would come back as "..."
		"-s", "32768",
		// suppress the attach/detach messages but keep the "+++ exited
		// with N +++" lines, which carry the exit status the analyzer
		// needs; signal lines ("--- SIG... ---") are skipped by the parser
		"-q",
		"-e", excludedSyscalls,
		"-o", traceLogPath,
	}
	args = append(args, extraStraceOpts...)
	args = append(args, traceeCmd...)

	cmd := &exec.Cmd{
		Path: args[0],
		Args: args,
	}

	if err := commands.AddSudoIfNeeded(cmd, "-E"); err != nil {
		return nil, err
	}
	return cmd, nil
}

// TraceCommand returns an exec.Cmd that runs traceeCmd under strace,
// writing a trace of every syscall it and its descendants make to
// traceLogPath in the format internal/trace.Run expects.
func TraceCommand(traceLogPath string, traceeCmd ...string) (*exec.Cmd, error) {
	return straceCommand(traceLogPath, nil, traceeCmd...)
}
