package game

import "sync"

// Kind discriminates mailbox updates. Every piece of cross-thread state the
// receiver produces flows through the mailbox, one discipline for all of it:
// the receiver posts, the simulation tick drains.
type Kind int

const (
	KindLocalPos Kind = iota + 1
	KindOtherPos
	KindPresence
	KindChunk
	KindBlock
	KindInventory
)

// Key addresses one last-write-wins cell: at most one queued value exists
// per (kind, target id) between drains.
type Key struct {
	Kind Kind
	ID   int64
}

// ChunkID packs a chunk coordinate into a mailbox target id.
func ChunkID(cx, cy int) int64 { return int64(cx)<<32 | int64(uint32(cy)) }

// CellID packs a world cell coordinate into a mailbox target id.
func CellID(x, y int) int64 { return int64(x)<<32 | int64(uint32(y)) }

type PosUpdate struct {
	X float64
	Y float64
}

// Presence collapses enter/leave: the last write decides whether the player
// is visible and where.
type Presence struct {
	Present bool
	X       float64
	Y       float64
}

type ChunkUpdate struct {
	CX     int
	CY     int
	Blocks []uint16
}

type BlockUpdate struct {
	X     int
	Y     int
	Block uint16
}

type InventoryUpdate struct {
	Slots []*SlotValue
}

// SlotValue mirrors one wire inventory slot; nil in InventoryUpdate.Slots
// resets the slot to empty.
type SlotValue struct {
	Item  int
	Count int
}

type ChatEntry struct {
	Sender string
	Text   string
}

type Update struct {
	Key   Key
	Value any
}

// Mailbox is the cross-thread handoff between the receiver task and the
// simulation tick. Posts overwrite any unconsumed value for the same key
// and move it to the back, so drains see each key once, carrying its latest
// value, in arrival order of that value. Chat is the exception: every
// broadcast is kept, in order.
type Mailbox struct {
	mu      sync.Mutex
	updates map[Key]any
	order   []Key
	chat    []ChatEntry
}

func NewMailbox() *Mailbox {
	return &Mailbox{updates: map[Key]any{}}
}

func (m *Mailbox) Post(k Kind, id int64, v any) {
	key := Key{Kind: k, ID: id}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.updates[key]; ok {
		for i, o := range m.order {
			if o == key {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
	m.updates[key] = v
	m.order = append(m.order, key)
}

func (m *Mailbox) PostChat(e ChatEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chat = append(m.chat, e)
}

// Drain atomically swaps out the mailbox contents. Consumed entries are
// gone for good; a second drain with no new posts returns nothing.
func (m *Mailbox) Drain() ([]Update, []ChatEntry) {
	m.mu.Lock()
	updates, order, chat := m.updates, m.order, m.chat
	m.updates = map[Key]any{}
	m.order = nil
	m.chat = nil
	m.mu.Unlock()

	out := make([]Update, 0, len(order))
	for _, key := range order {
		out = append(out, Update{Key: key, Value: updates[key]})
	}
	return out, chat
}
