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

// Context holds the per-process filesystem state a trace interpretation
// needs: each pid's current directory, the CLONE_FS group a pid belongs to,
// and pending half-lines for syscalls strace split across an <unfinished>/
// resumed> pair. It is owned exclusively by the driver and passed to
// handlers by reference; nothing here is safe for concurrent use, which is
// fine since the driver is single-threaded (spec §5).
type Context struct {
	halfline map[int]string
	curdir   map[int]string
	group    map[int]int

	// fallbackDir is the process-wide current directory used the first
	// time a pid with no recorded directory is looked up. Updated on every
	// successful chdir, regardless of which pid performed it.
	fallbackDir string
}

// NewContext creates a Context seeded with fallbackDir as the process-wide
// fallback current directory.
func NewContext(fallbackDir string) *Context {
	return &Context{
		halfline:    make(map[int]string),
		curdir:      make(map[int]string),
		group:       make(map[int]int),
		fallbackDir: fallbackDir,
	}
}

// representative resolves pid to its CLONE_FS group representative. This is
// a single hop: a clone child always maps straight to its parent, never
// transitively through a chain of clones. Deeper chasing would be a
// different, incorrect semantics for nested clone(CLONE_FS) - see spec §9.
func (c *Context) representative(pid int) int {
	if parent, ok := c.group[pid]; ok {
		return parent
	}
	return pid
}

// Clone records that child shares its filesystem context with parent. Call
// only when a clone() syscall's flags include CLONE_FS.
func (c *Context) Clone(parent, child int) {
	c.group[child] = parent
}

// SetDir unconditionally updates the process-wide fallback directory, and,
// if a pid is supplied, also records it as that pid's group representative
// current directory.
func (c *Context) SetDir(path string, pid int, hasPid bool) {
	c.fallbackDir = path
	if hasPid {
		repr := c.representative(pid)
		c.curdir[repr] = path
	}
}

// GetDir returns pid's current directory, resolving to its group
// representative first. A representative with no recorded directory is
// seeded with the current fallback directory on first lookup, and that
// seeded value is cached from then on.
func (c *Context) GetDir(pid int) string {
	repr := c.representative(pid)
	if _, ok := c.curdir[repr]; !ok {
		c.curdir[repr] = c.fallbackDir
	}
	return c.curdir[repr]
}

// PushHalfLine stores the prefix of a syscall line that strace split across
// an <unfinished ...> marker, keyed by pid. If the marker isn't present,
// the empty string is stored - this mirrors the original implementation's
// behaviour rather than treating it as an error, since the caller only
// reaches here after already deciding the line contains <unfinished.
func (c *Context) PushHalfLine(pid int, line string) {
	idx := strings.Index(line, "<unfinished")
	s := ""
	if idx >= 0 {
		s = strings.TrimSpace(line[:idx])
	}
	c.halfline[pid] = s
}

// PopCompleteLine concatenates a previously pushed half-line for pid with
// the text following "resumed>" in line, and clears the pending half-line.
// It returns an error if line has no "resumed>" marker, or if there is no
// pending half-line for pid - both cases are an unmatched resume, skipped
// by the caller rather than treated as fatal.
func (c *Context) PopCompleteLine(pid int, line string) (string, error) {
	const marker = "resumed>"
	idx := strings.Index(line, marker)
	if idx < 0 {
		return "", errUnmatchedResume
	}
	prefix, ok := c.halfline[pid]
	if !ok {
		return "", errUnmatchedResume
	}
	delete(c.halfline, pid)
	return prefix + line[idx+len(marker):], nil
}
