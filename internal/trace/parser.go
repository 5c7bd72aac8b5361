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
	"strconv"
	"strings"
)

// lineResult is what dispatching a single trace line produces: zero or more
// path records and, if the line was an exit/kill marker, the exit status it
// carried.
type lineResult struct {
	pid     int
	records []PathRecord
	exit    *ExitStatus
}

// splitPidPrefix strips the leading pid off a trace line. A line is
// required to begin with an ASCII digit run followed by whitespace; lines
// that don't are a fatal input error (spec §7).
func splitPidPrefix(line string) (pid int, rest string, err error) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, "", fatal(errNoPidPrefix)
	}
	pidVal, convErr := strconv.Atoi(line[:i])
	if convErr != nil {
		return 0, "", fatal(errNoPidPrefix)
	}
	j := i
	for j < len(line) && (line[j] == ' ' || line[j] == '\t') {
		j++
	}
	if j == i {
		return 0, "", fatal(errNoPidPrefix)
	}
	return pidVal, line[j:], nil
}

// parseExitMarker parses a "+++ exited with N +++" or "+++ killed ... +++"
// line. Anything else ending in "+++" is malformed input and fatal.
func parseExitMarker(rest string) (*ExitStatus, error) {
	switch {
	case strings.Contains(rest, "exited"):
		start := strings.Index(rest, "exited with")
		if start < 0 {
			return nil, fatal(errMalformedExit)
		}
		tail := rest[start+len("exited with"):]
		tail = strings.TrimSuffix(strings.TrimSpace(tail), "+++")
		code, err := strconv.Atoi(strings.TrimSpace(tail))
		if err != nil {
			return nil, fatal(errMalformedExit)
		}
		return &ExitStatus{Code: code}, nil
	case strings.Contains(rest, "killed"), strings.Contains(rest, "Killed"):
		return &ExitStatus{Code: -1}, nil
	default:
		return nil, fatal(errMalformedExit)
	}
}

// parseSyscallLine locates the syscall_name(args) = ret shape in a complete
// (non-split) trace line: the first '(', the last '=' (the return
// separator), and then the args-closing ')' - which must be found relative
// to that '=', not globally. A failed syscall's ret carries its own
// parenthesized errno description (e.g. "= -1 ENOENT (No such file or
// directory)"), whose trailing ')' is the last ')' in the whole line but is
// not the args-closing one; picking it globally would misparse every failed
// syscall. If any boundary is absent the line is unparseable and should
// simply be skipped (spec §7), not treated as fatal.
func parseSyscallLine(rest string) (name, argsText, ret string, ok bool) {
	openIdx := strings.Index(rest, "(")
	if openIdx < 0 {
		return "", "", "", false
	}
	eqIdx := strings.LastIndex(rest, "=")
	if eqIdx < openIdx {
		return "", "", "", false
	}
	closeIdx := strings.LastIndex(rest[:eqIdx], ")")
	if closeIdx < openIdx {
		return "", "", "", false
	}
	name = strings.TrimSpace(rest[:openIdx])
	argsText = rest[openIdx+1 : closeIdx]
	ret = strings.TrimSpace(rest[eqIdx+1:])
	if name == "" {
		return "", "", "", false
	}
	return name, argsText, ret, true
}

// dispatchLine runs one trace line through the per-pid state machine
// described in spec §4.7: split-line assembly, exit/signal markers, and
// finally syscall classification and handler dispatch.
//
// A nil result with a nil error means the line produced nothing (e.g. it
// pushed a half-line, or was a signal notification). A non-nil error that
// is not a *FatalError means the line should be skipped; a *FatalError
// means the whole driver run must abort.
func dispatchLine(ctx *Context, pid int, rest string) (*lineResult, error) {
	trimmed := strings.TrimSpace(rest)

	if strings.HasSuffix(trimmed, "+++") {
		exit, err := parseExitMarker(trimmed)
		if err != nil {
			return nil, err
		}
		return &lineResult{pid: pid, exit: exit}, nil
	}
	if strings.HasSuffix(trimmed, "---") {
		// signal notification, no records
		return nil, nil
	}

	if strings.Contains(rest, "<unfinished") {
		ctx.PushHalfLine(pid, rest)
		return nil, nil
	}

	if strings.Contains(rest, "resumed>") {
		completed, err := ctx.PopCompleteLine(pid, rest)
		if err != nil {
			// unmatched resume: skip, not fatal
			return nil, err
		}
		rest = completed
	}

	name, argsText, ret, ok := parseSyscallLine(rest)
	if !ok {
		return nil, errShapeMismatch
	}

	strategy := Classify(name)
	records, err := dispatch(strategy, ctx, pid, argsText, ret)
	if err != nil {
		return nil, err
	}
	return &lineResult{pid: pid, records: records}, nil
}
