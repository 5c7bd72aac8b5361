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
	. "gopkg.in/check.v1"

	"github.com/anonymouse64/rwtrace/internal/trace"
)

type tokenizerSuite struct{}

var _ = Suite(&tokenizerSuite{})

func (s *tokenizerSuite) TestSplitArgsBracketKinds(c *C) {
	args := trace.SplitArgs(`"a,b", <c,d>, {e,f}, g`)
	c.Assert(args, HasLen, 4)
	c.Check(args[0], Equals, `"a,b"`)
	c.Check(args[1], Equals, ` <c,d>`)
	c.Check(args[2], Equals, ` {e,f}`)
	c.Check(args[3], Equals, ` g`)
}

func (s *tokenizerSuite) TestSplitArgsSimple(c *C) {
	tt := []struct {
		in  string
		out []string
	}{
		{`"/etc/hosts", O_RDONLY`, []string{`"/etc/hosts"`, ` O_RDONLY`}},
		{`AT_FDCWD, "/a/b", O_RDONLY|O_CLOEXEC`, []string{`AT_FDCWD`, ` "/a/b"`, ` O_RDONLY|O_CLOEXEC`}},
		{``, nil},
	}
	for _, t := range tt {
		c.Check(trace.SplitArgs(t.in), DeepEquals, t.out, Commentf("input %q", t.in))
	}
}

func (s *tokenizerSuite) TestTakeFirst(c *C) {
	first, rest := trace.TakeFirst(`"/a/b", O_RDONLY`)
	c.Check(first, Equals, `"/a/b"`)
	c.Check(rest, Equals, ` O_RDONLY`)

	first, rest = trace.TakeFirst(`onlyarg`)
	c.Check(first, Equals, `onlyarg`)
	c.Check(rest, Equals, ``)

	first, rest = trace.TakeFirst(``)
	c.Check(first, Equals, ``)
	c.Check(rest, Equals, ``)
}
