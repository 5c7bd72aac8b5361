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
	"strconv"
	"strings"
)

// isRetErr reports whether a syscall's textual return value indicates
// failure. strace prints failed syscalls as "-1 EFOO (...)".
func isRetErr(ret string) bool {
	return strings.HasPrefix(strings.TrimSpace(ret), "-")
}

// writeKindFor downgrades a write-effect record to a read when the syscall
// that produced it failed: the kernel still resolved the path's components,
// it just didn't manage to modify anything at the end of them.
func writeKindFor(ret string) Kind {
	if isRetErr(ret) {
		return Read
	}
	return Write
}

// decodeArg decodes SplitArgs(argsText)[i] as a C string. It returns a
// FatalError (via DecodeString) if the argument isn't well-formed, and a
// plain error if there simply aren't enough arguments - both are handled
// identically by the caller's skip-or-abort dispatch, but only the former
// is wrapped fatal.
func decodeArg(argsText string, i int) (string, error) {
	args := SplitArgs(argsText)
	if i >= len(args) {
		return "", errShapeMismatch
	}
	return DecodeString(args[i])
}

var errShapeMismatch = &shapeMismatchError{}

type shapeMismatchError struct{}

func (*shapeMismatchError) Error() string { return "trace: syscall has fewer arguments than expected" }

// firstPathArg resolves argument 0 of a R_FIRST_PATH_SET/W_FIRST_PATH_SET
// syscall against pid's current directory. Per spec §9 Open Question (a),
// the path argument is at index 0.
func firstPathArg(ctx *Context, pid int, argsText string) (string, error) {
	raw, err := decodeArg(argsText, 0)
	if err != nil {
		return "", err
	}
	return Join(ctx.GetDir(pid), raw), nil
}

// extractBracketed returns the text strictly between the first '<' in s and
// the next '>' following it.
func extractBracketed(s string) (string, bool) {
	start := strings.Index(s, "<")
	if start < 0 {
		return "", false
	}
	end := strings.Index(s[start+1:], ">")
	if end < 0 {
		return "", false
	}
	return s[start+1 : start+1+end], true
}

// fdPath resolves a (dfd, path) pair at the given argument indices, per spec
// §4.6: the dfd argument carries an inline "N</abs/dir>"-style annotation
// (or the literal AT_FDCWD), and an absolute path argument wins
// outright over the directory. An empty path argument (AT_EMPTY_PATH)
// yields no path at all.
func fdPath(ctx *Context, pid int, argsText string, dfdIdx, pathIdx int) (path string, empty bool, err error) {
	args := SplitArgs(argsText)
	if dfdIdx >= len(args) || pathIdx >= len(args) {
		return "", false, errShapeMismatch
	}

	decoded, err := DecodeString(args[pathIdx])
	if err != nil {
		return "", false, err
	}
	if decoded == "" {
		return "", true, nil
	}
	if IsAbsolute(decoded) {
		return decoded, false, nil
	}

	dir, ok := extractBracketed(args[dfdIdx])
	if !ok {
		// AT_FDCWD or an otherwise undecorated dfd: fall back to the pid's
		// current directory.
		dir = ctx.GetDir(pid)
	}
	return Join(dir, decoded), false, nil
}

// returnedFdPath extracts the bare path from a successful open*'s returned
// fd annotation, e.g. the ret field "4</abs/file>" yields "/abs/file". Per
// spec §9 Open Question (d) this is exclusive of the closing '>'.
func returnedFdPath(ret string) (string, bool) {
	return extractBracketed(strings.TrimSpace(ret))
}

// handleOpenFlag classifies an open/openat flags argument: the literal
// substring O_RDONLY means read, anything else (including O_RDWR and
// O_WRONLY) means write. This is intentionally a substring match, matching
// strace's actual flag vocabulary; see spec §9 design notes.
func handleOpenFlag(flags string) Kind {
	if strings.Contains(flags, "O_RDONLY") {
		return Read
	}
	return Write
}

func handleRFirstPath(ctx *Context, pid int, argsText, _ string) ([]PathRecord, error) {
	p, err := firstPathArg(ctx, pid, argsText)
	if err != nil {
		return nil, err
	}
	return []PathRecord{{Kind: Read, Path: p}}, nil
}

func handleWFirstPath(ctx *Context, pid int, argsText, ret string) ([]PathRecord, error) {
	p, err := firstPathArg(ctx, pid, argsText)
	if err != nil {
		return nil, err
	}
	return []PathRecord{{Kind: writeKindFor(ret), Path: p}}, nil
}

func handleRFDPath(ctx *Context, pid int, argsText, _ string) ([]PathRecord, error) {
	p, empty, err := fdPath(ctx, pid, argsText, 0, 1)
	if err != nil || empty {
		return nil, err
	}
	return []PathRecord{{Kind: Read, Path: p}}, nil
}

func handleWFDPath(ctx *Context, pid int, argsText, ret string) ([]PathRecord, error) {
	p, empty, err := fdPath(ctx, pid, argsText, 0, 1)
	if err != nil || empty {
		return nil, err
	}
	return []PathRecord{{Kind: writeKindFor(ret), Path: p}}, nil
}

// openCommon is shared by StrategyOpen and StrategyOpenAt: decide the
// access kind from the flags argument, downgrade to a read on failure, and
// on success also emit a record for the returned fd's path annotation.
func openCommon(path string, flags string, ret string) []PathRecord {
	if isRetErr(ret) {
		return []PathRecord{{Kind: Read, Path: path}}
	}
	kind := handleOpenFlag(flags)
	records := []PathRecord{{Kind: kind, Path: path}}
	if fdp, ok := returnedFdPath(ret); ok {
		records = append(records, PathRecord{Kind: kind, Path: fdp})
	}
	return records
}

func handleOpenAt(ctx *Context, pid int, argsText, ret string) ([]PathRecord, error) {
	path, empty, err := fdPath(ctx, pid, argsText, 0, 1)
	if err != nil || empty {
		return nil, err
	}
	flags, err := decodeRawArg(argsText, 2)
	if err != nil {
		return nil, err
	}
	return openCommon(path, flags, ret), nil
}

func handleOpen(ctx *Context, pid int, argsText, ret string) ([]PathRecord, error) {
	path, err := firstPathArg(ctx, pid, argsText)
	if err != nil {
		return nil, err
	}
	flags, err := decodeRawArg(argsText, 1)
	if err != nil {
		return nil, err
	}
	return openCommon(path, flags, ret), nil
}

// decodeRawArg returns SplitArgs(argsText)[i] untouched by string
// decoding - used for flag arguments, which are bare identifiers like
// O_RDONLY|O_CLOEXEC rather than quoted strings.
func decodeRawArg(argsText string, i int) (string, error) {
	args := SplitArgs(argsText)
	if i >= len(args) {
		return "", errShapeMismatch
	}
	return strings.TrimSpace(args[i]), nil
}

func handleChdir(ctx *Context, pid int, argsText, ret string) ([]PathRecord, error) {
	path, err := firstPathArg(ctx, pid, argsText)
	if err != nil {
		return nil, err
	}
	if !isRetErr(ret) {
		ctx.SetDir(path, pid, true)
	}
	return []PathRecord{{Kind: Read, Path: path}}, nil
}

func handleRename(ctx *Context, pid int, argsText, ret string) ([]PathRecord, error) {
	src, err := decodeArg(argsText, 0)
	if err != nil {
		return nil, err
	}
	dst, err := decodeArg(argsText, 1)
	if err != nil {
		return nil, err
	}
	kind := writeKindFor(ret)
	dir := ctx.GetDir(pid)
	return []PathRecord{
		{Kind: kind, Path: Join(dir, src)},
		{Kind: kind, Path: Join(dir, dst)},
	}, nil
}

// handleRenameAt resolves four arguments as two (dfd, path) pairs at
// positions 0-1 and 2-3, per spec §9 Open Question (c).
func handleRenameAt(ctx *Context, pid int, argsText, ret string) ([]PathRecord, error) {
	src, emptySrc, err := fdPath(ctx, pid, argsText, 0, 1)
	if err != nil {
		return nil, err
	}
	dst, emptyDst, err := fdPath(ctx, pid, argsText, 2, 3)
	if err != nil {
		return nil, err
	}
	kind := writeKindFor(ret)
	var records []PathRecord
	if !emptySrc {
		records = append(records, PathRecord{Kind: kind, Path: src})
	}
	if !emptyDst {
		records = append(records, PathRecord{Kind: kind, Path: dst})
	}
	return records, nil
}

// handleLinkOrSymlink covers both link() and symlink(): a read of argument
// 0 and a write of argument 1. For symlink, argument 0 is the literal
// target text rather than a path that has to exist, but it is still
// resolved and recorded the same way.
func handleLinkOrSymlink(ctx *Context, pid int, argsText, ret string) ([]PathRecord, error) {
	a, err := decodeArg(argsText, 0)
	if err != nil {
		return nil, err
	}
	b, err := decodeArg(argsText, 1)
	if err != nil {
		return nil, err
	}
	dir := ctx.GetDir(pid)
	return []PathRecord{
		{Kind: Read, Path: Join(dir, a)},
		{Kind: writeKindFor(ret), Path: Join(dir, b)},
	}, nil
}

// handleSymlinkAt writes via the (dfd, path) pair at positions 1-2; argument
// 0 is the literal symlink target and is not a path to resolve.
func handleSymlinkAt(ctx *Context, pid int, argsText, ret string) ([]PathRecord, error) {
	path, empty, err := fdPath(ctx, pid, argsText, 1, 2)
	if err != nil || empty {
		return nil, err
	}
	return []PathRecord{{Kind: writeKindFor(ret), Path: path}}, nil
}

// handleClone records a CLONE_FS relationship between the calling pid and
// the child pid returned on success. It never emits path records.
func handleClone(ctx *Context, pid int, argsText, ret string) ([]PathRecord, error) {
	if isRetErr(ret) {
		return nil, nil
	}
	if !strings.Contains(argsText, "CLONE_FS") {
		return nil, nil
	}
	child, err := strconv.Atoi(strings.TrimSpace(ret))
	if err != nil {
		// ret wasn't a bare pid (e.g. it carries extra trailing
		// annotation); nothing sensible to group, skip quietly.
		return nil, nil
	}
	ctx.Clone(pid, child)
	return nil, nil
}

// handleInotifyAddWatch emits a read for the watched path, which is the
// second positional argument.
func handleInotifyAddWatch(ctx *Context, pid int, argsText, _ string) ([]PathRecord, error) {
	raw, err := decodeArg(argsText, 1)
	if err != nil {
		return nil, err
	}
	return []PathRecord{{Kind: Read, Path: Join(ctx.GetDir(pid), raw)}}, nil
}

// dispatch invokes the handler for strategy. It returns (nil, nil) for
// strategies that never emit records (StrategyIgnore, StrategyClone with no
// CLONE_FS) and a non-nil error for StrategyUnknown, which the caller skips.
func dispatch(strategy Strategy, ctx *Context, pid int, argsText, ret string) ([]PathRecord, error) {
	switch strategy {
	case StrategyIgnore:
		return nil, nil
	case StrategyRFirstPath:
		return handleRFirstPath(ctx, pid, argsText, ret)
	case StrategyWFirstPath:
		return handleWFirstPath(ctx, pid, argsText, ret)
	case StrategyRFDPath:
		return handleRFDPath(ctx, pid, argsText, ret)
	case StrategyWFDPath:
		return handleWFDPath(ctx, pid, argsText, ret)
	case StrategyOpenAt:
		return handleOpenAt(ctx, pid, argsText, ret)
	case StrategyOpen:
		return handleOpen(ctx, pid, argsText, ret)
	case StrategyChdir:
		return handleChdir(ctx, pid, argsText, ret)
	case StrategyRename:
		return handleRename(ctx, pid, argsText, ret)
	case StrategyRenameAt:
		return handleRenameAt(ctx, pid, argsText, ret)
	case StrategyLinkOrSymlink:
		return handleLinkOrSymlink(ctx, pid, argsText, ret)
	case StrategySymlinkAt:
		return handleSymlinkAt(ctx, pid, argsText, ret)
	case StrategyClone:
		return handleClone(ctx, pid, argsText, ret)
	case StrategyInotifyAddWatch:
		return handleInotifyAddWatch(ctx, pid, argsText, ret)
	default:
		return nil, errUnknownSyscall
	}
}

var errUnknownSyscall = &unknownSyscallError{}

type unknownSyscallError struct{}

func (*unknownSyscallError) Error() string { return "trace: unknown syscall" }
