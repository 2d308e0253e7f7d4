package entity

import (
	"fmt"
	"math"
)

// Position2D is a point in client world units (server cells x pixel scale).
type Position2D struct {
	X float64
	Y float64
}

func (p *Position2D) FieldNames() []string { return []string{"x", "y"} }

func (p *Position2D) Field(name string) (any, error) {
	switch name {
	case "x":
		return p.X, nil
	case "y":
		return p.Y, nil
	}
	return nil, fmt.Errorf("%w: position2d.%s", ErrUnknownField, name)
}

func (p *Position2D) SetField(name string, v any) error {
	f, ok := asFloat(v)
	if !ok {
		return fmt.Errorf("position2d.%s: not a number: %v", name, v)
	}
	switch name {
	case "x":
		p.X = f
	case "y":
		p.Y = f
	default:
		return fmt.Errorf("%w: position2d.%s", ErrUnknownField, name)
	}
	return nil
}

func (p *Position2D) Translate(dx, dy float64) {
	p.X += dx
	p.Y += dy
}

type Velocity2D struct {
	VX float64
	VY float64
}

func (v *Velocity2D) FieldNames() []string { return []string{"vx", "vy"} }

func (v *Velocity2D) Field(name string) (any, error) {
	switch name {
	case "vx":
		return v.VX, nil
	case "vy":
		return v.VY, nil
	}
	return nil, fmt.Errorf("%w: velocity2d.%s", ErrUnknownField, name)
}

func (v *Velocity2D) SetField(name string, val any) error {
	f, ok := asFloat(val)
	if !ok {
		return fmt.Errorf("velocity2d.%s: not a number: %v", name, val)
	}
	switch name {
	case "vx":
		v.VX = f
	case "vy":
		v.VY = f
	default:
		return fmt.Errorf("%w: velocity2d.%s", ErrUnknownField, name)
	}
	return nil
}

func (v *Velocity2D) Add(dx, dy float64) {
	v.VX += dx
	v.VY += dy
}

// Rotation2D holds an angle in degrees, always normalized to [0,360).
type Rotation2D struct {
	deg float64
}

func (r *Rotation2D) Degrees() float64 { return r.deg }

func (r *Rotation2D) SetDegrees(v float64) {
	m := math.Mod(v, 360)
	if m < 0 {
		m += 360
	}
	r.deg = m
}

func (r *Rotation2D) FieldNames() []string { return []string{"degrees"} }

func (r *Rotation2D) Field(name string) (any, error) {
	if name == "degrees" {
		return r.deg, nil
	}
	return nil, fmt.Errorf("%w: rotation2d.%s", ErrUnknownField, name)
}

func (r *Rotation2D) SetField(name string, v any) error {
	if name != "degrees" {
		return fmt.Errorf("%w: rotation2d.%s", ErrUnknownField, name)
	}
	f, ok := asFloat(v)
	if !ok {
		return fmt.Errorf("rotation2d.degrees: not a number: %v", v)
	}
	r.SetDegrees(f)
	return nil
}

type Health struct {
	Current int
	Maximum int
}

func NewHealth() *Health { return &Health{Current: 100, Maximum: 100} }

func (h *Health) FieldNames() []string { return []string{"current", "maximum"} }

func (h *Health) Field(name string) (any, error) {
	switch name {
	case "current":
		return h.Current, nil
	case "maximum":
		return h.Maximum, nil
	}
	return nil, fmt.Errorf("%w: health.%s", ErrUnknownField, name)
}

func (h *Health) SetField(name string, v any) error {
	n, ok := asInt(v)
	if !ok {
		return fmt.Errorf("health.%s: not an integer: %v", name, v)
	}
	switch name {
	case "current":
		h.Current = n
	case "maximum":
		h.Maximum = n
	default:
		return fmt.Errorf("%w: health.%s", ErrUnknownField, name)
	}
	return nil
}

// Slot is one inventory slot; item -1 means empty.
type Slot struct {
	Item  int
	Count int
}

const SlotCount = 9

type Inventory struct {
	Slots [SlotCount]Slot
}

func NewInventory() *Inventory {
	inv := &Inventory{}
	for i := range inv.Slots {
		inv.Slots[i] = Slot{Item: -1}
	}
	return inv
}

func (inv *Inventory) FieldNames() []string { return []string{"slots"} }

func (inv *Inventory) Field(name string) (any, error) {
	if name == "slots" {
		return inv.Slots, nil
	}
	return nil, fmt.Errorf("%w: inventory.%s", ErrUnknownField, name)
}

func (inv *Inventory) SetField(name string, v any) error {
	if name != "slots" {
		return fmt.Errorf("%w: inventory.%s", ErrUnknownField, name)
	}
	s, ok := v.([SlotCount]Slot)
	if !ok {
		return fmt.Errorf("inventory.slots: not a slot array: %T", v)
	}
	inv.Slots = s
	return nil
}

// Reset empties slot i (item -1, count 0).
func (inv *Inventory) Reset(i int) {
	if i >= 0 && i < SlotCount {
		inv.Slots[i] = Slot{Item: -1}
	}
}

type SelectedSlot struct {
	Slot int
}

func (s *SelectedSlot) FieldNames() []string { return []string{"slot"} }

func (s *SelectedSlot) Field(name string) (any, error) {
	if name == "slot" {
		return s.Slot, nil
	}
	return nil, fmt.Errorf("%w: selected_slot.%s", ErrUnknownField, name)
}

func (s *SelectedSlot) SetField(name string, v any) error {
	if name != "slot" {
		return fmt.Errorf("%w: selected_slot.%s", ErrUnknownField, name)
	}
	n, ok := asInt(v)
	if !ok {
		return fmt.Errorf("selected_slot.slot: not an integer: %v", v)
	}
	s.Slot = n
	return nil
}
