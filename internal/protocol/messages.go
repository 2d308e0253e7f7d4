package protocol

import "fmt"

// Client -> server messages.

// HELLO opens the session; the server answers with WELCOME.
type HelloMsg struct {
	Envelope
	Name string `json:"name"`
}

func (m *HelloMsg) Tag() string { return TagHello }
func (m *HelloMsg) validate() error {
	if m.Name == "" {
		return fmt.Errorf("missing name")
	}
	return nil
}

type GoodbyeMsg struct {
	Envelope
}

func (m *GoodbyeMsg) Tag() string     { return TagGoodbye }
func (m *GoodbyeMsg) validate() error { return nil }

// HEARTBEAT answers a HEARTBEAT_PING; the server kicks silent clients.
type HeartbeatMsg struct {
	Envelope
}

func (m *HeartbeatMsg) Tag() string     { return TagHeartbeat }
func (m *HeartbeatMsg) validate() error { return nil }

type RequestChunkMsg struct {
	Envelope
	CX int `json:"cx"`
	CY int `json:"cy"`
}

func (m *RequestChunkMsg) Tag() string     { return TagRequestChunk }
func (m *RequestChunkMsg) validate() error { return validateChunkCoord(m.CX, m.CY) }

type UnloadChunkMsg struct {
	Envelope
	CX int `json:"cx"`
	CY int `json:"cy"`
}

func (m *UnloadChunkMsg) Tag() string     { return TagUnloadChunk }
func (m *UnloadChunkMsg) validate() error { return validateChunkCoord(m.CX, m.CY) }

type PlaceBlockMsg struct {
	Envelope
	X int `json:"x"`
	Y int `json:"y"`
}

func (m *PlaceBlockMsg) Tag() string     { return TagPlaceBlock }
func (m *PlaceBlockMsg) validate() error { return validateCellCoord(m.X, m.Y) }

type BreakBlockMsg struct {
	Envelope
	X int `json:"x"`
	Y int `json:"y"`
}

func (m *BreakBlockMsg) Tag() string     { return TagBreakBlock }
func (m *BreakBlockMsg) validate() error { return validateCellCoord(m.X, m.Y) }

// VELOCITY reports a change of the player's horizontal velocity, in server
// cells per second.
type VelocityMsg struct {
	Envelope
	VX float64 `json:"vx"`
}

func (m *VelocityMsg) Tag() string     { return TagVelocity }
func (m *VelocityMsg) validate() error { return nil }

type JumpMsg struct {
	Envelope
}

func (m *JumpMsg) Tag() string     { return TagJump }
func (m *JumpMsg) validate() error { return nil }

type ChangeSlotMsg struct {
	Envelope
	Slot int `json:"slot"`
}

func (m *ChangeSlotMsg) Tag() string { return TagChangeSlot }
func (m *ChangeSlotMsg) validate() error {
	if m.Slot < 0 || m.Slot >= InventorySlots {
		return fmt.Errorf("slot %d out of range", m.Slot)
	}
	return nil
}

type ChatMsg struct {
	Envelope
	Text string `json:"text"`
}

func (m *ChatMsg) Tag() string { return TagChat }
func (m *ChatMsg) validate() error {
	if m.Text == "" {
		return fmt.Errorf("missing text")
	}
	return nil
}

func validateChunkCoord(cx, cy int) error {
	if cx < 0 || cy < 0 {
		return fmt.Errorf("negative chunk coordinate (%d,%d)", cx, cy)
	}
	return nil
}

func validateCellCoord(x, y int) error {
	if x < 0 || y < 0 {
		return fmt.Errorf("negative cell coordinate (%d,%d)", x, y)
	}
	return nil
}
