package game

import "github.com/pkg/errors"

// ErrInvalidArgument is the cause of every precondition violation reported
// by this package. Compare against it with errors.Cause.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidArgument(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
