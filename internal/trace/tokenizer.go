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

import "regexp"

// argRE matches one top-level syscall argument: a run of double-quoted text,
// angle-bracketed text, brace-delimited text, or bare characters, none of
// which may contain a top-level comma or a line break. Adjacent atoms (e.g.
// a leading space before a bracketed fd annotation) concatenate into a
// single match, which is what lets consecutive argRE matches line up
// one-for-one with top-level arguments.
var argRE = regexp.MustCompile(`(?:"[^"\n]*"|<[^>\n]*>|\{[^}\n]*\}|[^,\n])+`)

// SplitArgs splits a syscall argument-list string (the text between the
// outermost '(' and ')' of a trace record, exclusive) into its top-level
// comma-separated arguments. Whitespace around each argument is preserved.
// SplitArgs never fails on well-formed strace output.
func SplitArgs(s string) []string {
	return argRE.FindAllString(s, -1)
}

// TakeFirst returns the first top-level argument of s and the remainder of
// s after the separator that followed it. If s has no arguments, both
// return values are empty.
func TakeFirst(s string) (first, rest string) {
	loc := argRE.FindStringIndex(s)
	if loc == nil {
		return "", ""
	}
	first = s[loc[0]:loc[1]]
	restIdx := loc[1] + 1 // skip the separating comma
	if restIdx >= len(s) {
		return first, ""
	}
	return first, s[restIdx:]
}
