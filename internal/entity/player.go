package entity

// Component names of the standard player entity.
const (
	CompPosition     = "position"
	CompVelocity     = "velocity"
	CompRotation     = "rotation"
	CompHealth       = "health"
	CompInventory    = "inventory"
	CompSelectedSlot = "selected_slot"
)

// NewPlayer builds the local player entity with its full component set.
func NewPlayer() *Entity {
	e := New()
	e.Attach(CompPosition, &Position2D{})
	e.Attach(CompVelocity, &Velocity2D{})
	e.Attach(CompRotation, &Rotation2D{})
	e.Attach(CompHealth, NewHealth())
	e.Attach(CompInventory, NewInventory())
	e.Attach(CompSelectedSlot, &SelectedSlot{})
	return e
}

// Position returns the player's position component, which is always present
// on entities built by NewPlayer.
func (e *Entity) Position() *Position2D {
	c, _ := e.Component(CompPosition)
	p, _ := c.(*Position2D)
	return p
}

func (e *Entity) Velocity() *Velocity2D {
	c, _ := e.Component(CompVelocity)
	v, _ := c.(*Velocity2D)
	return v
}

func (e *Entity) Inventory() *Inventory {
	c, _ := e.Component(CompInventory)
	inv, _ := c.(*Inventory)
	return inv
}

func (e *Entity) SelectedSlot() *SelectedSlot {
	c, _ := e.Component(CompSelectedSlot)
	s, _ := c.(*SelectedSlot)
	return s
}
