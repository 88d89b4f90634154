package texttest

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned when a required argument is nil.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrResourceNotFound is returned when a named resource does not exist.
	ErrResourceNotFound = errors.New("resource not found")
)

// invalidArgument reports a nil argument by name.
func invalidArgument(name string) error {
	return errors.Wrapf(ErrInvalidArgument, "%s must not be nil", name)
}
