package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Entity is an opaque identity owning named components. Two entities are
// equal iff their identities match. Components are attached at construction
// and the set does not drift afterwards.
type Entity struct {
	id         string
	components map[string]Component
}

func New() *Entity {
	return &Entity{
		id:         uuid.NewString(),
		components: map[string]Component{},
	}
}

func (e *Entity) ID() string { return e.id }

func (e *Entity) Equal(other *Entity) bool {
	return other != nil && e.id == other.id
}

func (e *Entity) Attach(name string, c Component) {
	e.components[name] = c
}

// TryAttach is a no-op when the name is already taken.
func (e *Entity) TryAttach(name string, c Component) {
	if _, ok := e.components[name]; !ok {
		e.components[name] = c
	}
}

func (e *Entity) Detach(name string) {
	delete(e.components, name)
}

func (e *Entity) Component(name string) (Component, bool) {
	c, ok := e.components[name]
	return c, ok
}

func (e *Entity) Has(name string) bool {
	_, ok := e.components[name]
	return ok
}

// SetComponent copies the values of src's fields into the stored component
// under name. Every field src declares must exist on the target; an extra
// field fails with ErrUnknownField and leaves no partial writes behind.
func (e *Entity) SetComponent(name string, src Component) error {
	dst, ok := e.components[name]
	if !ok {
		return fmt.Errorf("%w: no component %q", ErrUnknownField, name)
	}
	for _, f := range src.FieldNames() {
		if _, err := dst.Field(f); err != nil {
			return fmt.Errorf("set %q: %w", name, err)
		}
	}
	for _, f := range src.FieldNames() {
		v, err := src.Field(f)
		if err != nil {
			return fmt.Errorf("set %q: %w", name, err)
		}
		if err := dst.SetField(f, v); err != nil {
			return fmt.Errorf("set %q: %w", name, err)
		}
	}
	return nil
}
