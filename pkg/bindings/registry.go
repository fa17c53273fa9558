package bindings

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/safehold-dev/safehold/pkg/errors"
	"github.com/safehold-dev/safehold/pkg/identity"
	"github.com/safehold-dev/safehold/pkg/logging"
	"github.com/safehold-dev/safehold/pkg/serialize"
)

// DefaultHouseName is the binding name used for a scope's Safehouse
// when the caller does not choose one.
const DefaultHouseName = "SAFEHOUSE"

// Notifier receives the human-readable notices the registry emits on
// displacement and forced overwrites.
type Notifier func(message string)

// Registry implements the guarded-assignment protocol. It owns no
// bindings itself: every Safehouse it creates lives inside the scope
// it protects, so the registry is just the protocol plus its notice
// and logging plumbing.
type Registry struct {
	logger   zerolog.Logger
	notifier Notifier
}

// New creates a Registry emitting notices through the component logger.
func New() *Registry {
	logger := logging.GetLogger("bindings")
	r := &Registry{logger: logger}
	r.notifier = func(message string) {
		logger.Info().Msg(message)
	}
	return r
}

// WithNotifier redirects the registry's notices
func (r *Registry) WithNotifier(n Notifier) *Registry {
	r.notifier = n
	return r
}

func (r *Registry) notify(format string, args ...interface{}) {
	if r.notifier != nil {
		r.notifier(fmt.Sprintf(format, args...))
	}
}

// GetOrCreateSafehouse returns the Safehouse bound to name in scope,
// creating and binding a fresh one if the name is free. If the name is
// bound to anything that is not a Safehouse for this scope, that value
// is displaced first: it is captured into the new house under a
// generated internal name, and a notice is emitted.
func (r *Registry) GetOrCreateSafehouse(scope Scope, name string) (*Safehouse, error) {
	existing, bound := scope.Get(name)
	if bound {
		if house, ok := existing.(*Safehouse); ok && house.Scope() == scope {
			return house, nil
		}

		// An unrelated value squats on the name. House it before the
		// binding is taken over.
		house := NewSafehouse(scope, internalHouseName(name))
		ref, err := house.House(name)
		if err != nil {
			return nil, err
		}
		scope.Set(name, house)
		r.notify("binding %s.%s held a non-safehouse value; captured as refugee %s before creating the safehouse",
			scope.Name(), name, ref.ID.Hex())
		return house, nil
	}

	house := NewSafehouse(scope, name)
	scope.Set(name, house)
	return house, nil
}

// internalHouseName generates the house's own identity name when the
// requested binding name was occupied.
func internalHouseName(name string) string {
	return fmt.Sprintf("%s_%s", name, identity.New().Hex())
}

// AssignOption adjusts a single Assign or ProtectedLoad call.
type AssignOption func(*assignConfig)

type assignConfig struct {
	houseName      string
	allowConstants bool
}

// WithHouseName selects the binding name of the Safehouse used for
// displaced values. Defaults to DefaultHouseName.
func WithHouseName(name string) AssignOption {
	return func(c *assignConfig) {
		c.houseName = name
	}
}

// AllowConstantOverwrite lets Assign replace an immutable binding,
// downgrading the refusal to a warning notice.
func AllowConstantOverwrite() AssignOption {
	return func(c *assignConfig) {
		c.allowConstants = true
	}
}

// Assign rebinds name to value in scope under the protection protocol:
// a currently bound value is deep-copied into the scope's Safehouse
// before the rebinding happens, so nothing is silently lost.
//
// Validation failures (InvalidName, ConstantBinding) are raised before
// any mutation occurs. Immutability intent survives the rebinding: a
// forced overwrite of an immutable binding leaves the new binding
// immutable too.
func (r *Registry) Assign(name string, value interface{}, scope Scope, opts ...AssignOption) (interface{}, error) {
	cfg := assignConfig{houseName: DefaultHouseName}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := ValidateName(name); err != nil {
		return nil, err
	}

	immutable := scope.IsImmutable(name)
	if immutable {
		if !cfg.allowConstants {
			return nil, errors.Newf(errors.ErrConstantBinding,
				"%s.%s is immutable; pass AllowConstantOverwrite to replace it", scope.Name(), name)
		}
		r.notify("overwriting immutable binding %s.%s (forced)", scope.Name(), name)
	}

	if scope.Exists(name) {
		house, err := r.houseFor(scope, name, cfg.houseName)
		if err != nil {
			return nil, err
		}
		ref, err := house.House(name)
		if err != nil {
			return nil, err
		}
		r.notify("displaced %s.%s into safehouse %s as refugee %s",
			scope.Name(), name, house.QualifiedName(), ref.ID.Hex())
	}

	if immutable {
		scope.SetImmutable(name, value)
	} else {
		scope.Set(name, value)
	}

	r.logger.Debug().
		Str("scope", scope.Name()).
		Str("name", name).
		Bool("immutable", immutable).
		Msg("Binding assigned")

	return value, nil
}

// houseFor picks the safehouse a displaced binding is captured into.
// Normally that is the scope's house under houseName. When name IS the
// house name, the house bound there is itself about to be unbound:
// capturing into it would append the refugee to a value that the
// rebinding then makes unreachable, losing it together with everything
// already housed. A fresh house under a generated internal name takes
// the capture instead, bound in the scope so it stays reachable.
func (r *Registry) houseFor(scope Scope, name, houseName string) (*Safehouse, error) {
	if name != houseName {
		return r.GetOrCreateSafehouse(scope, houseName)
	}
	house := NewSafehouse(scope, internalHouseName(houseName))
	scope.Set(house.Name(), house)
	return house, nil
}

// ProtectedLoad deserializes path and binds the loaded value to name
// in scope via Assign, returning the loaded value.
func (r *Registry) ProtectedLoad(name, path string, scope Scope, s serialize.Serializer, opts ...AssignOption) (interface{}, error) {
	value, err := s.Load(path)
	if err != nil {
		return nil, err
	}
	return r.Assign(name, value, scope, opts...)
}
