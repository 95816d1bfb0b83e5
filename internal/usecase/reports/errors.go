package reports

import (
	"errors"
	"fmt"
)

// ErrNoData marks an empty result that callers should report as absent
// rather than as a server failure. The wrapped message carries the
// endpoint-specific detail.
var ErrNoData = errors.New("no matching records")

// ValidationError reports malformed request input; no computation is
// performed when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func noDataf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNoData, fmt.Sprintf(format, args...))
}
