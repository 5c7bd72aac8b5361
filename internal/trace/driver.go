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

package trace

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ignoredPathPrefixes are trace-host artefacts and device nodes that are
// never meaningful cache keys for a downstream parallelising shell or
// sandbox analyser.
var ignoredPathPrefixes = []string{"/tmp/pash_spec", "/dev"}

const ignoredTTYPath = "/dev/tty"

// Result is the outcome of interpreting one trace: the set of paths read,
// the set of paths written, and the traced command's exit status.
type Result struct {
	ReadSet  map[string]bool
	WriteSet map[string]bool
	Exit     ExitStatus
}

// SortedReadSet returns ReadSet's members in sorted order, for stable
// display.
func (r *Result) SortedReadSet() []string { return sortedKeys(r.ReadSet) }

// SortedWriteSet returns WriteSet's members in sorted order, for stable
// display.
func (r *Result) SortedWriteSet() []string { return sortedKeys(r.WriteSet) }

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func isFiltered(path string) bool {
	for _, prefix := range ignoredPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Run streams trace lines from r, one at a time, and computes the read/
// write sets and exit status for the traced command. fallbackDir seeds
// Context's process-wide current directory (spec: "cwd-of-caller").
//
// Lines are consumed in file order because that order encodes the causal
// ordering of pid state (half-line pairing, clone before child activity,
// chdir before subsequent relative paths); Run is single-threaded and
// makes no attempt to parallelise across lines.
func Run(r io.Reader, fallbackDir string) (*Result, error) {
	ctx := NewContext(fallbackDir)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var records []PathRecord
	var exit *ExitStatus
	firstPid := -1
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		pid, rest, err := splitPidPrefix(line)
		if err != nil {
			return nil, fmt.Errorf("trace line %d: %w", lineNo, err)
		}
		if firstPid == -1 {
			firstPid = pid
		}

		res, err := dispatchLine(ctx, pid, rest)
		if err != nil {
			if isFatal(err) {
				return nil, fmt.Errorf("trace line %d: %w", lineNo, err)
			}
			// non-fatal: skip this line and keep going
			continue
		}
		if res == nil {
			continue
		}
		if res.exit != nil && exit == nil && res.pid == firstPid {
			exit = res.exit
		}
		records = append(records, res.records...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if exit == nil {
		return nil, errNoExitStatus
	}

	readSet := make(map[string]bool)
	writeSet := make(map[string]bool)
	for _, rec := range records {
		if isFiltered(rec.Path) {
			continue
		}
		expanded, err := Ancestors(rec.Path)
		if err != nil {
			return nil, err
		}
		for _, p := range expanded {
			if p == ignoredTTYPath {
				continue
			}
			switch rec.Kind {
			case Read:
				readSet[p] = true
			case Write:
				writeSet[p] = true
			}
		}
	}

	return &Result{ReadSet: readSet, WriteSet: writeSet, Exit: *exit}, nil
}
