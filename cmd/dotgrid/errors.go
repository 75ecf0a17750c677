package dotgrid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports a malformed day payload: wrong-length series,
	// out-of-range tide hours or unusable values.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration reports a degenerate render configuration.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrDegenerateInterval reports two tide events sharing an hour, which
	// leaves a zero-width interpolation interval.
	ErrDegenerateInterval = fmt.Errorf("%w: degenerate tide interval", ErrInvalidInput)
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
