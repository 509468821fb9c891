package catalog

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by Service wraps exactly one of them.
var (
	// ErrNotFound covers both missing entities and entities owned by someone else.
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("storage failure")
	ErrUpload     = errors.New("upload failure")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Category returns the sentinel err belongs to, or nil for unknown errors.
func Category(err error) error {
	for _, c := range []error{ErrNotFound, ErrValidation, ErrUpload, ErrStorage} {
		if errors.Is(err, c) {
			return c
		}
	}
	return nil
}
