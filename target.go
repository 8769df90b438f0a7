package xattr

import (
	"fmt"

	"github.com/iustin/goxattr/internal/sysx"
)

// Target is a resolved reference to the filesystem object whose
// attributes are operated on: either a path (with or without symlink
// following) or an open file descriptor. A Target can be passed
// anywhere an item argument is accepted.
type Target struct {
	t sysx.Target
}

func (t Target) String() string { return t.t.String() }

// Fder is the descriptor accessor implemented by *os.File. Resolve
// extracts the descriptor from it; ownership stays with the caller,
// who remains responsible for closing.
type Fder interface {
	Fd() uintptr
}

// Path returns a Target addressing the object the path points at,
// following symlinks.
func Path(path string) Target {
	return Target{sysx.Target{Path: path}}
}

// Link returns a Target addressing the path itself, so that operations
// on a symlink act on the link and not on what it points to.
func Link(path string) Target {
	return Target{sysx.Target{Path: path, Link: true}}
}

// Fd returns a Target addressing an open file descriptor.
func Fd(fd int) Target {
	return Target{sysx.Target{Fd: fd, IsFd: true}}
}

// Resolve classifies item into a Target. Accepted are a path as string
// or []byte, a file descriptor as int or uintptr, anything carrying a
// descriptor via an Fd() uintptr method (*os.File), and an already
// resolved Target, which passes through unchanged.
//
// nofollow selects the non-following syscall variants for path items.
// For descriptor items and pre-resolved Targets it is silently
// ignored; a descriptor never traverses symlinks, it already names a
// concrete inode.
//
// Resolve is pure classification: it makes no syscall and neither
// duplicates nor retains the descriptor.
func Resolve(item interface{}, nofollow bool) (Target, error) {
	switch v := item.(type) {
	case Target:
		return v, nil
	case string:
		return pathTarget(v, nofollow), nil
	case []byte:
		return pathTarget(string(v), nofollow), nil
	case int:
		return Fd(v), nil
	case uintptr:
		return Fd(int(v)), nil
	case Fder:
		return Fd(int(v.Fd())), nil
	}
	return Target{}, &ArgError{
		Op:  "resolve",
		Msg: fmt.Sprintf("unsupported target type %T: want a path, a file descriptor or an Fd() method", item),
	}
}

func pathTarget(path string, nofollow bool) Target {
	if nofollow {
		return Link(path)
	}
	return Path(path)
}

// resolveFor adapts Resolve errors to the calling operation.
func resolveFor(op string, item interface{}, nofollow bool) (Target, error) {
	if item == nil {
		return Target{}, &ArgError{Op: op, Msg: "nil target"}
	}
	tgt, err := Resolve(item, nofollow)
	if err != nil {
		if ae, ok := err.(*ArgError); ok {
			return Target{}, &ArgError{Op: op, Msg: ae.Msg}
		}
		return Target{}, err
	}
	return tgt, nil
}
