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

type decodeSuite struct{}

var _ = Suite(&decodeSuite{})

func (s *decodeSuite) TestNull(c *C) {
	v, err := trace.DecodeString("NULL")
	c.Assert(err, IsNil)
	c.Check(v, Equals, "")
}

func (s *decodeSuite) TestSimple(c *C) {
	v, err := trace.DecodeString(`"/etc/hosts"`)
	c.Assert(err, IsNil)
	c.Check(v, Equals, "/etc/hosts")
}

func (s *decodeSuite) TestEscapes(c *C) {
	v, err := trace.DecodeString(`"foo\nbar"`)
	c.Assert(err, IsNil)
	c.Check(v, Equals, "foo\nbar")
}

func (s *decodeSuite) TestHexAndOctalEscapes(c *C) {
	v, err := trace.DecodeString(`"\x41\101"`)
	c.Assert(err, IsNil)
	c.Check(v, Equals, "AA")
}

func (s *decodeSuite) TestTruncationMarkerStripped(c *C) {
	// per spec §8: parse_string("\"truncated...") -> fatal, unreachable
	// branch, because stripping "..." leaves an unquoted remainder.
	_, err := trace.DecodeString(`"truncated...`)
	c.Assert(err, NotNil)
}

func (s *decodeSuite) TestTruncationMarkerOnProperlyQuotedString(c *C) {
	v, err := trace.DecodeString(`"truncated"...`)
	c.Assert(err, IsNil)
	c.Check(v, Equals, "truncated")
}

func (s *decodeSuite) TestUnquotedIsUnreachable(c *C) {
	_, err := trace.DecodeString("bareword")
	c.Assert(err, NotNil)
}

func (s *decodeSuite) TestUndecodableEscapeFallsBackToRaw(c *C) {
	v, err := trace.DecodeString(`"foo\qbar"`)
	c.Assert(err, IsNil)
	c.Check(v, Equals, `foo\qbar`)
}

func (s *decodeSuite) TestWhitespaceTrimmed(c *C) {
	v, err := trace.DecodeString("  \"/a\"  ")
	c.Assert(err, IsNil)
	c.Check(v, Equals, "/a")
}
