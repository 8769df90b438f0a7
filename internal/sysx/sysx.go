// Package sysx dispatches extended attribute operations to the right
// member of the {get,set,list,remove}xattr syscall families and hides
// the kernel's variable-length reply protocol behind a bounded retry
// loop.
package sysx

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/iustin/goxattr/internal/tlog"
)

// sizeEstimate is the initial reply buffer size. It is chosen so that
// the overwhelmingly common case (short names, short values) is served
// by a single syscall.
const sizeEstimate = 256

// maxTries bounds the probe/refill rounds for replies whose size keeps
// changing underneath us.
const maxTries = 3

// ErrSizeMismatch means the kernel kept reporting reply sizes that
// disagreed between the zero-length size probe and the filled call.
// The attribute set is being modified concurrently by someone else;
// the call may simply be retried.
var ErrSizeMismatch = errors.New("xattr reply size changed between size probe and read")

// Target is a resolved reference to the filesystem object whose
// attributes are operated on. Exactly one addressing mode is active:
// descriptor when IsFd is set, path otherwise. Link selects the
// l-prefixed (non-following) syscall variants; it has no meaning for
// descriptors, which already name a concrete inode.
type Target struct {
	Path string
	Fd   int
	IsFd bool
	Link bool
}

func (t Target) String() string {
	if t.IsFd {
		return fmt.Sprintf("fd %d", t.Fd)
	}
	return t.Path
}

// Get retrieves the value of the attribute "name", growing the reply
// buffer as directed by the kernel. The returned slice is freshly
// allocated and trimmed to the reported length.
func Get(t Target, name string) ([]byte, error) {
	return sized(func(buf []byte) (int, error) {
		switch {
		case t.IsFd:
			return unix.Fgetxattr(t.Fd, name, buf)
		case t.Link:
			return unix.Lgetxattr(t.Path, name, buf)
		default:
			return unix.Getxattr(t.Path, name, buf)
		}
	})
}

// List returns the attribute names present on t, preserving the order
// the kernel reports them in.
func List(t Target) ([]string, error) {
	blob, err := sized(func(buf []byte) (int, error) {
		switch {
		case t.IsFd:
			return unix.Flistxattr(t.Fd, buf)
		case t.Link:
			return unix.Llistxattr(t.Path, buf)
		default:
			return unix.Listxattr(t.Path, buf)
		}
	})
	if err != nil {
		return nil, err
	}
	return parseListBlob(blob), nil
}

// Set stores value under "name". flags is passed to the kernel
// verbatim: 0, XATTR_CREATE or XATTR_REPLACE.
func Set(t Target, name string, value []byte, flags int) error {
	switch {
	case t.IsFd:
		return unix.Fsetxattr(t.Fd, name, value, flags)
	case t.Link:
		return unix.Lsetxattr(t.Path, name, value, flags)
	default:
		return unix.Setxattr(t.Path, name, value, flags)
	}
}

// Remove deletes the attribute "name".
func Remove(t Target, name string) error {
	switch {
	case t.IsFd:
		return unix.Fremovexattr(t.Fd, name)
	case t.Link:
		return unix.Lremovexattr(t.Path, name)
	default:
		return unix.Removexattr(t.Path, name)
	}
}

// sized calls fn with a small first-guess buffer and follows the
// kernel's sizing protocol when that is not enough: on ERANGE, a
// zero-length probe returns the currently required size and the call is
// repeated with an exactly sized buffer. The refill can hit ERANGE
// again if the attribute grew in between, so the rounds are capped.
// Every errno other than ERANGE propagates untouched.
func sized(fn func(buf []byte) (int, error)) ([]byte, error) {
	buf := make([]byte, sizeEstimate)
	for try := 1; try <= maxTries; try++ {
		n, err := fn(buf)
		if err == nil {
			if n > len(buf) {
				// Only possible when buf is empty: the kernel treats a
				// zero-length buffer as a size query and reports the
				// required size instead of filling anything. The
				// attribute regrew after an empty probe, so this is
				// just another sizing round.
				tlog.Debug.Printf("sized: try %d: reply needs %d bytes", try, n)
				buf = make([]byte, n)
				continue
			}
			return buf[:n], nil
		}
		if err != unix.ERANGE {
			return nil, err
		}
		// Buffer too small. Ask the kernel how much it needs now.
		n, err = fn(nil)
		if err != nil {
			return nil, err
		}
		tlog.Debug.Printf("sized: try %d: reply needs %d bytes", try, n)
		buf = make([]byte, n)
	}
	tlog.Warn.Printf("sized: reply size still changing after %d tries", maxTries)
	return nil, ErrSizeMismatch
}

// parseListBlob splits a raw listxattr reply into names. Entries are
// NUL-terminated, so the split leaves one empty trailing part.
func parseListBlob(buf []byte) (attrs []string) {
	for _, part := range bytes.Split(buf, []byte{0}) {
		if len(part) == 0 {
			continue
		}
		attrs = append(attrs, string(part))
	}
	return attrs
}
