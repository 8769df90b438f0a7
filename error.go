package xattr

import "fmt"

// Error records a failed attribute operation together with the target
// and the attribute name involved. Err holds the error reported by the
// kernel unmodified, so the individual errno values stay inspectable
// through errors.Is.
type Error struct {
	Op   string
	Path string // path, or "fd N" for descriptor targets
	Name string // fully qualified attribute name; empty for List and GetAll
	Err  error
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Error() string {
	if e.Name == "" {
		return e.Op + " " + e.Path + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + " " + e.Name + ": " + e.Err.Error()
}

// ArgError reports arguments that violate the call contract: an
// unsupported target type, an empty attribute name, a nil namespace,
// flags on an operation that takes none. It is raised before any
// syscall is attempted and never wraps an errno.
type ArgError struct {
	Op  string
	Msg string
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("xattr %s: %s", e.Op, e.Msg)
}
