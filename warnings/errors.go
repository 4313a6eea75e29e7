package warnings

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by every *ConfigurationError.
	ErrConfiguration = errors.New("invalid warning configuration")

	// ErrEscalatedWarning is matched by every *WarningError.
	ErrEscalatedWarning = errors.New("warning escalated to error")
)

// ConfigurationError reports a malformed filter registration. It is always returned at the
// registration call site, never deferred to Warn.
type ConfigurationError struct {
	// Field is the offending part of the registration: "category", "module", "message" or "action".
	Field string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid warning filter %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrConfiguration) hold.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// WarningError is returned by Warn when the matching filter's action is ActionError.
type WarningError struct {
	Event Event
}

func (e *WarningError) Error() string {
	return fmt.Sprintf("%s: %s", e.Event.Category.Name(), e.Event.Message)
}

// Is makes errors.Is(err, ErrEscalatedWarning) hold.
func (e *WarningError) Is(target error) bool { return target == ErrEscalatedWarning }
