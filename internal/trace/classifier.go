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

// Strategy identifies which handler a classified syscall name dispatches
// to.
type Strategy int

const (
	// StrategyUnknown is returned for a name that appears in none of the
	// fixed tables below.
	StrategyUnknown Strategy = iota
	// StrategyIgnore is returned for names the engine deliberately does
	// not generate records for.
	StrategyIgnore
	StrategyRFirstPath
	StrategyWFirstPath
	StrategyRFDPath
	StrategyWFDPath
	StrategyOpenAt
	StrategyOpen
	StrategyChdir
	StrategyRename
	StrategyRenameAt
	StrategyLinkOrSymlink
	StrategySymlinkAt
	StrategyClone
	StrategyInotifyAddWatch
)

// rFirstPathSet is R_FIRST_PATH_SET from spec §6: read record, argument 0 is
// the path.
var rFirstPathSet = stringSet(
	"execve", "stat", "lstat", "access", "statfs",
	"readlink", "getxattr", "lgetxattr", "llistxattr",
)

// wFirstPathSet is W_FIRST_PATH_SET from spec §6: write record (read if ret
// is an error), argument 0 is the path.
var wFirstPathSet = stringSet(
	"mkdir", "rmdir", "truncate", "creat", "chmod", "chown",
	"lchown", "utime", "mknod", "utimes", "acct", "unlink",
	"setxattr", "removexattr",
)

// rFDPathSet is R_FD_PATH_SET from spec §6: read record from a (dfd, path)
// pair.
var rFDPathSet = stringSet(
	"fstatat", "newfstatat", "statx", "name_to_handle_at",
	"readlinkat", "faccessat", "execveat", "faccessat2",
)

// wFDPathSet is W_FD_PATH_SET from spec §6: write record (read if ret is an
// error) from a (dfd, path) pair.
var wFDPathSet = stringSet(
	"unlinkat", "utimensat", "mkdirat", "mknodat", "fchownat",
	"futimeat", "linkat", "fchmodat",
)

// ignoreSet is IGNORE_SET from spec §6.
var ignoreSet = stringSet("getpid", "getcwd")

func stringSet(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// Classify maps a syscall name to exactly one Strategy.
func Classify(name string) Strategy {
	switch name {
	case "openat":
		return StrategyOpenAt
	case "open":
		return StrategyOpen
	case "chdir":
		return StrategyChdir
	case "rename":
		return StrategyRename
	case "renameat", "renameat2":
		return StrategyRenameAt
	case "link", "symlink":
		return StrategyLinkOrSymlink
	case "symlinkat":
		return StrategySymlinkAt
	case "clone":
		return StrategyClone
	case "inotify_add_watch":
		return StrategyInotifyAddWatch
	}

	if _, ok := rFirstPathSet[name]; ok {
		return StrategyRFirstPath
	}
	if _, ok := wFirstPathSet[name]; ok {
		return StrategyWFirstPath
	}
	if _, ok := rFDPathSet[name]; ok {
		return StrategyRFDPath
	}
	if _, ok := wFDPathSet[name]; ok {
		return StrategyWFDPath
	}
	if _, ok := ignoreSet[name]; ok {
		return StrategyIgnore
	}
	return StrategyUnknown
}
