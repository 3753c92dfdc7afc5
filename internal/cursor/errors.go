package cursor

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceLoad means a cursor or its bitmap information could not be read.
	ErrResourceLoad = errors.New("cursor resource load failed")
	// ErrResourceBuild means a drawing context, bitmap or cursor could not be created.
	ErrResourceBuild = errors.New("cursor resource build failed")
	// ErrUnsupported is returned where no system cursor registry exists.
	ErrUnsupported = errors.New("system cursor registry not supported on this platform")
	ErrInvalidSize = errors.New("invalid cursor size")
	ErrUnknownKind = errors.New("unknown cursor kind")
)

// ResourceError describes a failed native step while loading or assembling a cursor.
type ResourceError struct {
	Kind Kind
	Step string
	// Code is the last platform error code, zero when the platform reported none.
	Code uintptr
	Err  error
}

func (e *ResourceError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: %v: %s (error code %d)", e.Kind, e.Err, e.Step, e.Code)
	}
	return fmt.Sprintf("%s: %v: %s", e.Kind, e.Err, e.Step)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

func loadError(kind Kind, step string, code uintptr) error {
	return &ResourceError{Kind: kind, Step: step, Code: code, Err: ErrResourceLoad}
}

func buildError(kind Kind, step string, code uintptr) error {
	return &ResourceError{Kind: kind, Step: step, Code: code, Err: ErrResourceBuild}
}
