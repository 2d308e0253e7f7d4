package protocol

import (
	"encoding/json"
	"fmt"
)

const Version = "1.0"

// Message tags. The tag selects the payload schema; each tag has exactly
// one struct below and the field lists are mirrored on the server.
const (
	// client -> server
	TagHello        = "HELLO"
	TagGoodbye      = "GOODBYE"
	TagHeartbeat    = "HEARTBEAT"
	TagRequestChunk = "REQUEST_CHUNK"
	TagUnloadChunk  = "UNLOAD_CHUNK"
	TagPlaceBlock   = "PLACE_BLOCK"
	TagBreakBlock   = "BREAK_BLOCK"
	TagVelocity     = "VELOCITY"
	TagJump         = "JUMP"
	TagChangeSlot   = "CHANGE_SLOT"
	TagChat         = "CHAT"

	// server -> client
	TagWelcome       = "WELCOME"
	TagKick          = "KICK"
	TagHeartbeatPing = "HEARTBEAT_PING"
	TagChunkData     = "CHUNK_DATA"
	TagPlayerPos     = "PLAYER_POS"
	TagPlayerEnter   = "PLAYER_ENTER"
	TagPlayerLeave   = "PLAYER_LEAVE"
	TagBlockChanged  = "BLOCK_CHANGED"
	TagBlockBatch    = "BLOCK_CHANGED_BATCH"
	TagInventory     = "INVENTORY"
	TagChatBroadcast = "CHAT_BCAST"
)

// Envelope is embedded in every message and routes unknown JSON by type.
type Envelope struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func (e *Envelope) envelope() *Envelope { return e }

// Message is a tagged wire variant. Implementations are pointer types.
type Message interface {
	Tag() string
	envelope() *Envelope
	validate() error
}

func DecodeBase(b []byte) (Envelope, error) {
	var e Envelope
	err := json.Unmarshal(b, &e)
	return e, err
}

// Encode stamps the envelope and marshals the message. Pure transform.
func Encode(m Message) ([]byte, error) {
	env := m.envelope()
	env.Type = m.Tag()
	env.ProtocolVersion = Version
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", m.Tag(), err)
	}
	return b, nil
}

// Decode parses a wire frame into its typed message. Unknown tags and
// payloads missing required fields fail with ErrMalformed; extra unknown
// fields are ignored.
func Decode(b []byte) (Message, error) {
	env, err := DecodeBase(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	m := newMessage(env.Type)
	if m == nil {
		return nil, fmt.Errorf("%w: unknown tag %q", ErrMalformed, env.Type)
	}
	if err := json.Unmarshal(b, m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, env.Type, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, env.Type, err)
	}
	return m, nil
}

func newMessage(tag string) Message {
	switch tag {
	case TagHello:
		return &HelloMsg{}
	case TagGoodbye:
		return &GoodbyeMsg{}
	case TagHeartbeat:
		return &HeartbeatMsg{}
	case TagRequestChunk:
		return &RequestChunkMsg{}
	case TagUnloadChunk:
		return &UnloadChunkMsg{}
	case TagPlaceBlock:
		return &PlaceBlockMsg{}
	case TagBreakBlock:
		return &BreakBlockMsg{}
	case TagVelocity:
		return &VelocityMsg{}
	case TagJump:
		return &JumpMsg{}
	case TagChangeSlot:
		return &ChangeSlotMsg{}
	case TagChat:
		return &ChatMsg{}
	case TagWelcome:
		return &WelcomeMsg{}
	case TagKick:
		return &KickMsg{}
	case TagHeartbeatPing:
		return &HeartbeatPingMsg{}
	case TagChunkData:
		return &ChunkDataMsg{}
	case TagPlayerPos:
		return &PlayerPosMsg{}
	case TagPlayerEnter:
		return &PlayerEnterMsg{}
	case TagPlayerLeave:
		return &PlayerLeaveMsg{}
	case TagBlockChanged:
		return &BlockChangedMsg{}
	case TagBlockBatch:
		return &BlockBatchMsg{}
	case TagInventory:
		return &InventoryMsg{}
	case TagChatBroadcast:
		return &ChatBroadcastMsg{}
	}
	return nil
}
