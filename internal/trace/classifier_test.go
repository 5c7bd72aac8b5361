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

type classifierSuite struct{}

var _ = Suite(&classifierSuite{})

func (s *classifierSuite) TestFixedTables(c *C) {
	tt := []struct {
		name     string
		strategy trace.Strategy
	}{
		{"execve", trace.StrategyRFirstPath},
		{"stat", trace.StrategyRFirstPath},
		{"mkdir", trace.StrategyWFirstPath},
		{"unlink", trace.StrategyWFirstPath},
		{"fstatat", trace.StrategyRFDPath},
		{"faccessat2", trace.StrategyRFDPath},
		{"unlinkat", trace.StrategyWFDPath},
		{"fchmodat", trace.StrategyWFDPath},
		{"openat", trace.StrategyOpenAt},
		{"open", trace.StrategyOpen},
		{"chdir", trace.StrategyChdir},
		{"rename", trace.StrategyRename},
		{"renameat", trace.StrategyRenameAt},
		{"renameat2", trace.StrategyRenameAt},
		{"link", trace.StrategyLinkOrSymlink},
		{"symlink", trace.StrategyLinkOrSymlink},
		{"symlinkat", trace.StrategySymlinkAt},
		{"clone", trace.StrategyClone},
		{"inotify_add_watch", trace.StrategyInotifyAddWatch},
		{"getpid", trace.StrategyIgnore},
		{"getcwd", trace.StrategyIgnore},
		{"totally_unknown_syscall", trace.StrategyUnknown},
	}
	for _, t := range tt {
		c.Check(trace.Classify(t.name), Equals, t.strategy, Commentf("syscall %q", t.name))
	}
}
