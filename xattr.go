// Package xattr provides access to POSIX filesystem extended
// attributes: namespaced key/value metadata attached to files,
// directories and symlinks.
//
// The target of an operation can be given as a path (string or
// []byte), as an open *os.File (or anything else with an Fd() uintptr
// method), as a raw integer file descriptor, or as a Target obtained
// from Resolve. Values are opaque octet sequences; embedded NUL bytes
// and empty values are valid payload.
//
//	err := xattr.Set("file.txt", "user.comment", []byte("simple text file"))
//	names, err := xattr.List("file.txt")                        // ["user.comment"]
//	keys, err := xattr.List("file.txt", xattr.InNamespace(xattr.NsUser)) // ["comment"]
//	val, err := xattr.Get("file.txt", "user.comment")
//	err = xattr.Remove("file.txt", "user.comment")
//
// Syscall failures are returned as *Error values carrying the raw
// errno, so callers can tell the individual conditions apart with
// errors.Is: ENODATA/ENOATTR (no such attribute), EEXIST (XATTR_CREATE
// on an existing attribute), ENOENT (target missing), ENOTSUP or
// EOPNOTSUPP (filesystem without xattr support), EPERM (the kernel
// forbids user attributes on symlinks). Contract violations that are
// detectable before any syscall - an unsupported target type, an empty
// attribute name, a nil namespace - are reported as *ArgError instead
// and never carry an errno.
package xattr

import (
	"errors"

	"golang.org/x/sys/unix"

	"github.com/iustin/goxattr/internal/sysx"
)

// Kernel flag values for Set, passed through to the syscall verbatim.
// XATTR_CREATE fails with EEXIST when the attribute already exists,
// XATTR_REPLACE fails with ENODATA/ENOATTR when it does not. Without
// flags the attribute is created or replaced as needed.
const (
	XATTR_CREATE  = unix.XATTR_CREATE
	XATTR_REPLACE = unix.XATTR_REPLACE
)

// ErrSizeMismatch is found (via errors.Is) in errors of calls that had
// to give up because the kernel kept reporting different reply sizes
// between the size probe and the read, which means another process is
// mutating the attribute set. Such calls may simply be retried.
var ErrSizeMismatch = sysx.ErrSizeMismatch

// Attr is a single (name, value) pair returned by GetAll.
type Attr struct {
	Name  string
	Value []byte
}

// callOpts collects the per-call options. hasNs distinguishes an
// omitted namespace (name is already fully qualified) from an
// explicitly supplied one.
type callOpts struct {
	nofollow bool
	ns       []byte
	hasNs    bool
	flags    int
	hasFlags bool
}

// Option adjusts a single attribute operation.
type Option func(*callOpts) error

// NoFollow makes the operation act on a symlink itself instead of the
// file it points to. It has no effect on descriptor targets: a
// descriptor already names a concrete inode.
var NoFollow Option = func(o *callOpts) error {
	o.nofollow = true
	return nil
}

// InNamespace supplies the attribute namespace separately; the name
// given to the operation is then a bare key inside ns. On List and
// GetAll it filters the result to that namespace and strips the
// namespace prefix from the returned names.
//
// A nil ns is always rejected. To pass a name through untouched, omit
// the option or use an empty (zero-length, non-nil) namespace.
func InNamespace(ns []byte) Option {
	return func(o *callOpts) error {
		if ns == nil {
			return errors.New("nil namespace; pass an empty namespace or omit the option")
		}
		o.ns = ns
		o.hasNs = true
		return nil
	}
}

// WithFlags sets the XATTR_CREATE or XATTR_REPLACE precondition on
// Set. The kernel only accepts flags when setting, so WithFlags on any
// other operation is a usage error.
func WithFlags(flags int) Option {
	return func(o *callOpts) error {
		o.flags = flags
		o.hasFlags = true
		return nil
	}
}

func applyOpts(op string, allowFlags bool, opts []Option) (callOpts, error) {
	var o callOpts
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return o, &ArgError{Op: op, Msg: err.Error()}
		}
	}
	if o.hasFlags && !allowFlags {
		return o, &ArgError{Op: op, Msg: "flags are only valid for Set"}
	}
	return o, nil
}

// qualify validates the attribute name and merges in the namespace, if
// one was supplied.
func qualify(op, name string, o callOpts) (string, error) {
	if name == "" {
		return "", &ArgError{Op: op, Msg: "empty attribute name"}
	}
	if !o.hasNs {
		return name, nil
	}
	return mergeName(o.ns, name), nil
}

// List returns the names of all extended attributes of item, in the
// order the kernel reports them. With InNamespace, only the attributes
// of that namespace are returned, as bare keys.
func List(item interface{}, opts ...Option) ([]string, error) {
	const op = "list"
	o, err := applyOpts(op, false, opts)
	if err != nil {
		return nil, err
	}
	tgt, err := resolveFor(op, item, o.nofollow)
	if err != nil {
		return nil, err
	}
	names, err := sysx.List(tgt.t)
	if err != nil {
		return nil, &Error{Op: op, Path: tgt.t.String(), Err: err}
	}
	if !o.hasNs {
		return names, nil
	}
	var keys []string
	for _, n := range names {
		if key, ok := matchName(o.ns, n); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Get returns the value of the attribute. The result is freshly
// allocated and owned by the caller. A missing attribute is reported
// with ENODATA (ENOATTR on MacOS).
func Get(item interface{}, name string, opts ...Option) ([]byte, error) {
	const op = "get"
	o, err := applyOpts(op, false, opts)
	if err != nil {
		return nil, err
	}
	fq, err := qualify(op, name, o)
	if err != nil {
		return nil, err
	}
	tgt, err := resolveFor(op, item, o.nofollow)
	if err != nil {
		return nil, err
	}
	val, err := sysx.Get(tgt.t, fq)
	if err != nil {
		return nil, &Error{Op: op, Path: tgt.t.String(), Name: fq, Err: err}
	}
	return val, nil
}

// Set stores value under the attribute name, creating or replacing it
// unless WithFlags narrows that down. The mutation is visible to other
// processes immediately; no atomicity with any other call is implied.
func Set(item interface{}, name string, value []byte, opts ...Option) error {
	const op = "set"
	o, err := applyOpts(op, true, opts)
	if err != nil {
		return err
	}
	fq, err := qualify(op, name, o)
	if err != nil {
		return err
	}
	tgt, err := resolveFor(op, item, o.nofollow)
	if err != nil {
		return err
	}
	if err := sysx.Set(tgt.t, fq, value, o.flags); err != nil {
		return &Error{Op: op, Path: tgt.t.String(), Name: fq, Err: err}
	}
	return nil
}

// Remove deletes the attribute. Removing a name that is not there is
// reported with ENODATA (ENOATTR on MacOS).
func Remove(item interface{}, name string, opts ...Option) error {
	const op = "remove"
	o, err := applyOpts(op, false, opts)
	if err != nil {
		return err
	}
	fq, err := qualify(op, name, o)
	if err != nil {
		return err
	}
	tgt, err := resolveFor(op, item, o.nofollow)
	if err != nil {
		return err
	}
	if err := sysx.Remove(tgt.t, fq); err != nil {
		return &Error{Op: op, Path: tgt.t.String(), Name: fq, Err: err}
	}
	return nil
}

// GetAll returns every attribute of item as (name, value) pairs. With
// InNamespace the result is filtered to that namespace and the names
// are bare keys.
//
// Listing the names and fetching the values are separate syscalls, so
// the snapshot is not atomic: an attribute removed by someone else in
// between is silently dropped from the result rather than failing the
// whole call. Any other per-attribute error aborts.
func GetAll(item interface{}, opts ...Option) ([]Attr, error) {
	const op = "get_all"
	o, err := applyOpts(op, false, opts)
	if err != nil {
		return nil, err
	}
	tgt, err := resolveFor(op, item, o.nofollow)
	if err != nil {
		return nil, err
	}
	names, err := sysx.List(tgt.t)
	if err != nil {
		return nil, &Error{Op: op, Path: tgt.t.String(), Err: err}
	}
	attrs := make([]Attr, 0, len(names))
	for _, n := range names {
		key := n
		if o.hasNs {
			k, ok := matchName(o.ns, n)
			if !ok {
				continue
			}
			key = k
		}
		val, err := sysx.Get(tgt.t, n)
		if err != nil {
			if errors.Is(err, sysx.ENOATTR) {
				// Gone since the listing. Benign race.
				continue
			}
			return nil, &Error{Op: op, Path: tgt.t.String(), Name: n, Err: err}
		}
		attrs = append(attrs, Attr{Name: key, Value: val})
	}
	return attrs, nil
}
