package bindings

import (
	"go/token"

	"github.com/safehold-dev/safehold/pkg/errors"
)

// ValidateName checks that name is a syntactically legal, non-reserved
// identifier for a binding.
func ValidateName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidName, "binding name cannot be empty")
	}
	if token.IsKeyword(name) {
		return errors.Newf(errors.ErrInvalidName, "binding name %q is a reserved word", name)
	}
	if !token.IsIdentifier(name) {
		return errors.Newf(errors.ErrInvalidName, "binding name %q is not a legal identifier", name)
	}
	return nil
}
