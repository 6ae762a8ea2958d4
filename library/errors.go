package library

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange = errors.New("index path out of range")
	ErrNotFound   = errors.New("plant not in organized sections")
	ErrInvalid    = errors.New("invalid value")
)

// IndexError carries the index path a lookup failed on.
type IndexError struct {
	Kind error
	Path IndexPath
	Msg  string
}

func (e *IndexError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Path)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind.Error(), e.Path, e.Msg)
}

func (e *IndexError) Unwrap() error { return e.Kind }

func outOfRangef(path IndexPath, format string, args ...any) error {
	return &IndexError{Kind: ErrOutOfRange, Path: path, Msg: fmt.Sprintf(format, args...)}
}
