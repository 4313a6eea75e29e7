package facade

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingSymbol is matched by every *MissingSymbolError.
	ErrMissingSymbol = errors.New("canonical symbol missing")

	// ErrInvalidSpec is returned for manifests that fail validation.
	ErrInvalidSpec = errors.New("invalid facade spec")

	// ErrRemoved is returned when loading a namespace whose removal version has been reached.
	ErrRemoved = errors.New("legacy namespace removed")
)

// MissingSymbolError lists every canonical name a facade expected but did not find. A load
// that fails with it exposes no symbols.
type MissingSymbolError struct {
	Namespace string
	Canonical string
	Missing   []string
}

func (e *MissingSymbolError) Error() string {
	return fmt.Sprintf("cannot load %s: %d symbols missing from %s: %s",
		e.Namespace, len(e.Missing), e.Canonical, strings.Join(e.Missing, ", "))
}

func (e *MissingSymbolError) Is(target error) bool {
	return target == ErrMissingSymbol
}
