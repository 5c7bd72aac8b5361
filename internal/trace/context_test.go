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

type contextSuite struct{}

var _ = Suite(&contextSuite{})

func (s *contextSuite) TestGetDirSeedsFromFallback(c *C) {
	ctx := trace.NewContext("/start")
	c.Check(ctx.GetDir(100), Equals, "/start")
}

func (s *contextSuite) TestSetDirUpdatesFallbackAndPid(c *C) {
	ctx := trace.NewContext("/start")
	ctx.SetDir("/work", 100, true)
	c.Check(ctx.GetDir(100), Equals, "/work")
	// a brand new pid still sees the updated fallback
	c.Check(ctx.GetDir(200), Equals, "/work")
}

func (s *contextSuite) TestCloneInheritsParentDir(c *C) {
	ctx := trace.NewContext("/start")
	ctx.SetDir("/work", 100, true)
	ctx.Clone(100, 101)
	c.Check(ctx.GetDir(101), Equals, "/work")
}

func (s *contextSuite) TestGroupResolutionIsSingleStep(c *C) {
	ctx := trace.NewContext("/start")
	ctx.SetDir("/work", 100, true)
	ctx.Clone(100, 101)
	ctx.Clone(101, 102)

	// 102 maps straight to 101, not transitively to 100: since 101 has
	// never chdir'd itself, 102 sees whatever fallback was seeded for 101
	// at 101's own first lookup, not necessarily "/work".
	ctx.SetDir("/other", -1, false)
	c.Check(ctx.GetDir(102), Equals, "/other")
}

func (s *contextSuite) TestPushAndPopHalfLine(c *C) {
	ctx := trace.NewContext("/start")
	ctx.PushHalfLine(5, `open("/a", O_RDONLY <unfinished ...>`)
	completed, err := ctx.PopCompleteLine(5, `<... open resumed> ) = 6</a>`)
	c.Assert(err, IsNil)
	c.Check(completed, Equals, `open("/a", O_RDONLY ) = 6</a>`)
}

func (s *contextSuite) TestPopWithoutPushIsUnmatchedResume(c *C) {
	ctx := trace.NewContext("/start")
	_, err := ctx.PopCompleteLine(9, `<... open resumed>) = 1`)
	c.Assert(err, NotNil)
}

func (s *contextSuite) TestPopWithoutMarkerIsUnmatchedResume(c *C) {
	ctx := trace.NewContext("/start")
	ctx.PushHalfLine(5, `open("/a" <unfinished ...>`)
	_, err := ctx.PopCompleteLine(5, `no marker here`)
	c.Assert(err, NotNil)
}
