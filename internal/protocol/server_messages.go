package protocol

import (
	"fmt"

	"gridfall.gg/internal/encoding"
)

// Wire-level world constants mirrored by the server.
const (
	ChunkSize      = 16
	ChunkArea      = ChunkSize * ChunkSize
	InventorySlots = 9
)

// Server -> client messages.

// WELCOME is the handshake reply to HELLO.
type WelcomeMsg struct {
	Envelope
	PlayerID   int64   `json:"player_id"`
	SpawnX     float64 `json:"spawn_x"`
	SpawnY     float64 `json:"spawn_y"`
	WorldWidth int     `json:"world_width"`
}

func (m *WelcomeMsg) Tag() string { return TagWelcome }
func (m *WelcomeMsg) validate() error {
	if m.PlayerID <= 0 {
		return fmt.Errorf("missing player_id")
	}
	if m.WorldWidth <= 0 {
		return fmt.Errorf("missing world_width")
	}
	return nil
}

type KickMsg struct {
	Envelope
	Reason string `json:"reason"`
}

func (m *KickMsg) Tag() string { return TagKick }
func (m *KickMsg) validate() error {
	if m.Reason == "" {
		return fmt.Errorf("missing reason")
	}
	return nil
}

type HeartbeatPingMsg struct {
	Envelope
}

func (m *HeartbeatPingMsg) Tag() string     { return TagHeartbeatPing }
func (m *HeartbeatPingMsg) validate() error { return nil }

// CHUNK_DATA carries one full 16x16 chunk. Blocks is an RLE run sequence
// (varint pairs, base64) that must expand to exactly ChunkArea ids, in the
// server's transmission order.
type ChunkDataMsg struct {
	Envelope
	CX       int    `json:"cx"`
	CY       int    `json:"cy"`
	Encoding string `json:"encoding"`
	Blocks   string `json:"blocks"`
}

func (m *ChunkDataMsg) Tag() string { return TagChunkData }
func (m *ChunkDataMsg) validate() error {
	if err := validateChunkCoord(m.CX, m.CY); err != nil {
		return err
	}
	if m.Encoding != "RLE" {
		return fmt.Errorf("unsupported encoding %q", m.Encoding)
	}
	if _, err := encoding.DecodeRLEN(m.Blocks, ChunkArea); err != nil {
		return fmt.Errorf("blocks: %v", err)
	}
	return nil
}

// BlockIDs expands the payload. Call only on validated messages.
func (m *ChunkDataMsg) BlockIDs() ([]uint16, error) {
	return encoding.DecodeRLEN(m.Blocks, ChunkArea)
}

func (m *ChunkDataMsg) SetBlockIDs(ids []uint16) {
	m.Encoding = "RLE"
	m.Blocks = encoding.EncodeRLE(ids)
}

type PlayerPosMsg struct {
	Envelope
	PlayerID int64   `json:"player_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

func (m *PlayerPosMsg) Tag() string     { return TagPlayerPos }
func (m *PlayerPosMsg) validate() error { return validatePlayerID(m.PlayerID) }

type PlayerEnterMsg struct {
	Envelope
	PlayerID int64   `json:"player_id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

func (m *PlayerEnterMsg) Tag() string     { return TagPlayerEnter }
func (m *PlayerEnterMsg) validate() error { return validatePlayerID(m.PlayerID) }

type PlayerLeaveMsg struct {
	Envelope
	PlayerID int64 `json:"player_id"`
}

func (m *PlayerLeaveMsg) Tag() string     { return TagPlayerLeave }
func (m *PlayerLeaveMsg) validate() error { return validatePlayerID(m.PlayerID) }

type BlockChangedMsg struct {
	Envelope
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Block uint16 `json:"block"`
}

func (m *BlockChangedMsg) Tag() string     { return TagBlockChanged }
func (m *BlockChangedMsg) validate() error { return validateCellCoord(m.X, m.Y) }

// BLOCK_CHANGED_BATCH sets every listed cell to the same block id.
type BlockBatchMsg struct {
	Envelope
	Batch [][2]int `json:"batch"`
	Block uint16   `json:"block"`
}

func (m *BlockBatchMsg) Tag() string { return TagBlockBatch }
func (m *BlockBatchMsg) validate() error {
	if len(m.Batch) == 0 {
		return fmt.Errorf("empty batch")
	}
	for _, p := range m.Batch {
		if err := validateCellCoord(p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}

// SlotUpdate is one inventory slot; a JSON null entry resets the slot to
// empty (item -1, count 0).
type SlotUpdate struct {
	Item  int `json:"item"`
	Count int `json:"count"`
}

type InventoryMsg struct {
	Envelope
	Slots []*SlotUpdate `json:"slots"`
}

func (m *InventoryMsg) Tag() string { return TagInventory }
func (m *InventoryMsg) validate() error {
	if len(m.Slots) > InventorySlots {
		return fmt.Errorf("%d slots, max %d", len(m.Slots), InventorySlots)
	}
	return nil
}

type ChatBroadcastMsg struct {
	Envelope
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

func (m *ChatBroadcastMsg) Tag() string { return TagChatBroadcast }
func (m *ChatBroadcastMsg) validate() error {
	if m.Sender == "" {
		return fmt.Errorf("missing sender")
	}
	return nil
}

func validatePlayerID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("missing player_id")
	}
	return nil
}
