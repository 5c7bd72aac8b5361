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

package trace_test

import (
	"strings"

	. "gopkg.in/check.v1"

	"github.com/anonymouse64/rwtrace/internal/trace"
)

type pathAlgSuite struct{}

var _ = Suite(&pathAlgSuite{})

func (s *pathAlgSuite) TestIsAbsolute(c *C) {
	c.Check(trace.IsAbsolute("/a/b"), Equals, true)
	c.Check(trace.IsAbsolute("a/b"), Equals, false)
	c.Check(trace.IsAbsolute(""), Equals, false)
}

func (s *pathAlgSuite) TestJoin(c *C) {
	c.Check(trace.Join("/work", "rel"), Equals, "/work/rel")
	c.Check(trace.Join("/work", "/abs"), Equals, "/abs")
	c.Check(trace.Join("/work/", "rel"), Equals, "/work/rel")
	// purely textual: no ".." collapsing
	c.Check(trace.Join("/work", "../escape"), Equals, "/work/../escape")
}

func (s *pathAlgSuite) TestAncestorsAbsolute(c *C) {
	anc, err := trace.Ancestors("/a/b/c")
	c.Assert(err, IsNil)
	c.Check(anc, DeepEquals, []string{"/a/b/c", "/a/b", "/a"})
}

func (s *pathAlgSuite) TestAncestorsRelative(c *C) {
	anc, err := trace.Ancestors("rel/path")
	c.Assert(err, IsNil)
	c.Check(anc, DeepEquals, []string{"rel/path"})
}

func (s *pathAlgSuite) TestAncestorsIdempotent(c *C) {
	once, err := trace.Ancestors("/a/b/c")
	c.Assert(err, IsNil)

	var twice []string
	seen := map[string]bool{}
	for _, p := range once {
		expanded, err := trace.Ancestors(p)
		c.Assert(err, IsNil)
		for _, e := range expanded {
			if !seen[e] {
				seen[e] = true
				twice = append(twice, e)
			}
		}
	}
	c.Check(len(twice), Equals, len(once))
	for _, p := range once {
		c.Check(seen[p], Equals, true)
	}
}

func (s *pathAlgSuite) TestAncestorsDepthCap(c *C) {
	deep := "/" + strings.Repeat("a/", 600)
	_, err := trace.Ancestors(deep)
	c.Assert(err, NotNil)
}
