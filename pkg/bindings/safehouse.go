package bindings

import (
	"time"

	"github.com/mitchellh/copystructure"

	"github.com/safehold-dev/safehold/pkg/errors"
	"github.com/safehold-dev/safehold/pkg/identity"
)

// Refugee is one displaced value: the binding it came from, the ID and
// timestamp of its capture, and a deep copy of the value itself. A
// Refugee is created exactly once per displacement and never mutated.
type Refugee struct {
	ScopeName  string
	Name       string
	ID         identity.ID
	CapturedAt time.Time
	Value      interface{}
}

// Safehouse is a named registry of displaced values inside one scope.
// It keeps, per variable name, the ordered history of IDs (oldest
// first) and, per ID, the Refugee holding the captured value.
//
// A Safehouse is not safe for unsynchronized concurrent mutation; the
// design assumes a single writer per scope and name.
type Safehouse struct {
	scope     Scope
	name      string
	variables map[string][]identity.ID
	refugees  map[identity.ID]*Refugee
}

// NewSafehouse creates an empty Safehouse named name, protecting the
// given scope. Most callers want Registry.GetOrCreateSafehouse, which
// also binds the house inside the scope.
func NewSafehouse(scope Scope, name string) *Safehouse {
	return &Safehouse{
		scope:     scope,
		name:      name,
		variables: make(map[string][]identity.ID),
		refugees:  make(map[identity.ID]*Refugee),
	}
}

// Name returns the house's own binding name.
func (h *Safehouse) Name() string {
	return h.name
}

// Scope returns the scope this house protects.
func (h *Safehouse) Scope() Scope {
	return h.scope
}

// QualifiedName is the scope-qualified name used in notices.
func (h *Safehouse) QualifiedName() string {
	return h.scope.Name() + "." + h.name
}

// Count returns the number of housed Refugees.
func (h *Safehouse) Count() int {
	return len(h.refugees)
}

// House captures the value currently bound to name in the house's
// scope: a deep copy becomes a new Refugee, appended to the name's
// history. Housing a name with no bound value is a hard error; a
// silent no-op would defeat the component's purpose.
func (h *Safehouse) House(name string) (*Refugee, error) {
	value, ok := h.scope.Get(name)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound,
			"cannot house %q: no value bound in scope %s", name, h.scope.Name())
	}

	// Deep copy so the house never aliases the live binding.
	copied, err := deepCopy(value)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal,
			"failed to copy value of %q for housing", name)
	}

	ref := &Refugee{
		ScopeName:  h.scope.Name(),
		Name:       name,
		ID:         identity.New(),
		CapturedAt: time.Now(),
		Value:      copied,
	}

	h.variables[name] = append(h.variables[name], ref.ID)
	h.refugees[ref.ID] = ref
	return ref, nil
}

// Retrieve returns the single Refugee housed under id.
func (h *Safehouse) Retrieve(id identity.ID) (*Refugee, error) {
	ref, ok := h.refugees[id]
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound,
			"no refugee %s in safehouse %s", id.Hex(), h.QualifiedName())
	}
	return ref, nil
}

// RetrieveAll returns every Refugee ever housed under name, oldest
// first. A name that was never housed is an error.
func (h *Safehouse) RetrieveAll(name string) ([]*Refugee, error) {
	ids, ok := h.variables[name]
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound,
			"no refugees housed under %q in safehouse %s", name, h.QualifiedName())
	}

	refs := make([]*Refugee, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, h.refugees[id])
	}
	return refs, nil
}

// deepCopy captures a displaced value. Safehouses get their own clone
// path: the scope back-reference makes the value graph cyclic (scope ->
// house binding -> scope), which a reflective walk would never finish,
// and the house's maps are unexported anyway.
func deepCopy(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case *Safehouse:
		return v.clone(), nil
	case Safehouse:
		return *v.clone(), nil
	default:
		return copystructure.Copy(value)
	}
}

// clone copies the house's indexes so a housed house is independent of
// the live one. Refugees themselves are immutable and stay shared.
func (h *Safehouse) clone() *Safehouse {
	c := NewSafehouse(h.scope, h.name)
	for name, ids := range h.variables {
		c.variables[name] = append([]identity.ID(nil), ids...)
	}
	for id, ref := range h.refugees {
		c.refugees[id] = ref
	}
	return c
}
