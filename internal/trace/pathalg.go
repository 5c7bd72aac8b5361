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

import "strings"

// maxAncestorDepth bounds how many parent directories Ancestors will walk
// before treating the path as pathological. Matches the 512-level cap the
// original implementation panics on.
const maxAncestorDepth = 512

// IsAbsolute reports whether p is a non-empty path beginning with '/'.
func IsAbsolute(p string) bool {
	return p != "" && p[0] == '/'
}

// Join returns p unchanged if it is absolute, otherwise joins it onto cwd.
// Join is purely textual: it does not canonicalise, resolve symlinks, or
// collapse "..".
func Join(cwd, p string) string {
	if IsAbsolute(p) || cwd == "" {
		return p
	}
	if strings.HasSuffix(cwd, "/") {
		return cwd + p
	}
	return cwd + "/" + p
}

// parentOf returns the textual parent directory of p, or "" if p has no
// parent above the root. This is a lexical operation on the last '/',
// nothing more - no cleaning, no ".." collapsing.
func parentOf(p string) string {
	idx := strings.LastIndex(p, "/")
	if idx <= 0 {
		return ""
	}
	return p[:idx]
}

// Ancestors returns p followed by each of its parent directories up to but
// excluding the filesystem root, capped at maxAncestorDepth levels. For a
// non-absolute p, Ancestors returns only p itself.
func Ancestors(p string) ([]string, error) {
	if !IsAbsolute(p) {
		return []string{p}, nil
	}

	result := []string{p}
	cur := p
	depth := 0
	for {
		parent := parentOf(cur)
		if parent == "" {
			break
		}
		result = append(result, parent)
		cur = parent
		depth++
		if depth > maxAncestorDepth {
			return nil, fatal(errAncestorDepth)
		}
	}
	return result, nil
}
