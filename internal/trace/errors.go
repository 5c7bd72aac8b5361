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
	"errors"
	"fmt"
)

// Sentinel errors used throughout the engine. Most of these are skip-this-
// line conditions; only those wrapped in FatalError (see below) abort the
// whole driver run.
var (
	// errUnmatchedResume is returned by Context.PopCompleteLine when a
	// "resumed>" line has no matching pending half-line for its pid.
	errUnmatchedResume = errors.New("trace: resumed line has no matching unfinished half-line")

	// errDecodeUnreachable is the "programmer error" branch of the string
	// decoder: a value that, after the NULL/"..." trims, is not wrapped in
	// double quotes. The original implementation treats this as
	// unreachable given well-formed strace output.
	errDecodeUnreachable = errors.New("trace: decoded value not wrapped in quotes")

	// errAncestorDepth is returned when a path's ancestor chain exceeds the
	// 512-level cap.
	errAncestorDepth = errors.New("trace: path closure exceeded 512 levels")

	// errNoPidPrefix is returned when a line does not begin with a pid.
	errNoPidPrefix = errors.New("trace: line has no leading pid")

	// errMalformedExit is returned when a "+++ ... +++" line matches
	// neither "exited" nor "killed".
	errMalformedExit = errors.New("trace: malformed exit/kill marker")

	// errNoExitStatus is returned by the driver when the trace never
	// produced an exit status for the first-observed pid.
	errNoExitStatus = errors.New("trace: no exit status found for traced process")
)

// FatalError marks an error that must abort the entire driver run, as
// opposed to the default policy of skipping the offending line and
// continuing. See spec §7 for the classification this mirrors.
type FatalError struct {
	err error
}

func fatal(err error) *FatalError {
	return &FatalError{err: err}
}

func fatalf(format string, args ...interface{}) *FatalError {
	return &FatalError{err: fmt.Errorf(format, args...)}
}

func (f *FatalError) Error() string {
	return f.err.Error()
}

func (f *FatalError) Unwrap() error {
	return f.err
}

// isFatal reports whether err (or anything it wraps) is a FatalError.
func isFatal(err error) bool {
	var f *FatalError
	return errors.As(err, &f)
}
