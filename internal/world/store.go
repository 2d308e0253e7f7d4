package world

import (
	"fmt"
	"sort"
)

const (
	Size = 16
	Area = Size * Size

	// Air is never rendered; block ids are otherwise opaque to the store.
	Air uint16 = 0
)

type ChunkKey struct {
	CX int
	CY int
}

// Chunk is one 16x16 block grid. A chunk with a nil grid is a placeholder:
// the request is in flight and every cell reads as air until the server's
// CHUNK_DATA arrives.
type Chunk struct {
	Key    ChunkKey
	blocks []uint16 // len Area once populated, indexed x + y*Size
}

func (c *Chunk) Pending() bool { return c.blocks == nil }

func (c *Chunk) get(x, y int) uint16 {
	if c.blocks == nil {
		return Air
	}
	return c.blocks[x+y*Size]
}

func (c *Chunk) set(x, y int, b uint16) {
	if c.blocks == nil {
		c.blocks = make([]uint16, Area)
	}
	c.blocks[x+y*Size] = b
}

// Requester receives the chunk load/unload intents the viewport
// reconciliation derives. The game layer turns them into wire messages.
type Requester interface {
	RequestChunk(cx, cy int)
	UnloadChunk(cx, cy int)
}

// Store is the sparse viewport-driven chunk cache. It is owned by the
// simulation tick: all mutation happens there, so there is no lock. The
// receiver task hands arriving data over through the mailbox instead of
// touching the store.
type Store struct {
	chunks map[ChunkKey]*Chunk
}

func NewStore() *Store {
	return &Store{chunks: map[ChunkKey]*Chunk{}}
}

// Ingest replaces the chunk at (cx,cy) with a fully populated grid. The
// payload is stored index-reversed: flat index i lands at cell
// (i%16, i/16) with the value blocks[255-i]. This mirrors the order the
// server transmits in and is a wire-compatibility contract, not a bug.
func (s *Store) Ingest(cx, cy int, blocks []uint16) error {
	if len(blocks) != Area {
		return fmt.Errorf("chunk payload: expected %d blocks, got %d", Area, len(blocks))
	}
	ch := &Chunk{Key: ChunkKey{CX: cx, CY: cy}}
	for i := range blocks {
		ch.set(i%Size, i/Size, blocks[Area-1-i])
	}
	s.chunks[ch.Key] = ch
	return nil
}

// ApplyChange sets one block from world-space coordinates, using the same
// axis-reversed cell convention as ingestion. A change addressed to a chunk
// not in the store is a silent no-op: the server may still be flushing
// changes for chunks this client already unloaded.
func (s *Store) ApplyChange(x, y int, b uint16) {
	if x < 0 || y < 0 {
		return
	}
	ch, ok := s.chunks[ChunkKey{CX: x / Size, CY: y / Size}]
	if !ok {
		return
	}
	ch.set(Size-1-x%Size, Size-1-y%Size, b)
}

func (s *Store) ApplyBatch(points [][2]int, b uint16) {
	for _, p := range points {
		s.ApplyChange(p[0], p[1], b)
	}
}

// BlockAt reads the block at world-space coordinates. Negative coordinates
// and absent chunks read as air; it never fails.
func (s *Store) BlockAt(x, y int) uint16 {
	if x < 0 || y < 0 {
		return Air
	}
	ch, ok := s.chunks[ChunkKey{CX: x / Size, CY: y / Size}]
	if !ok {
		return Air
	}
	return ch.get(x%Size, y%Size)
}

// ReconcileViewport drives the streaming cache toward the window
// [center±rx]x[center±ry]: loaded chunks outside it are unloaded and
// reported, absent chunks inside it get a placeholder and a request.
// Coordinates with a negative component are never requested nor unloaded.
// Re-running with an unchanged center and store emits nothing, which is what
// makes a lost request retry itself on a later tick.
func (s *Store) ReconcileViewport(center ChunkKey, rx, ry int, out Requester) {
	for k := range s.chunks {
		if k.CX >= center.CX-rx && k.CX <= center.CX+rx &&
			k.CY >= center.CY-ry && k.CY <= center.CY+ry {
			continue
		}
		if k.CX >= 0 && k.CY >= 0 {
			out.UnloadChunk(k.CX, k.CY)
		}
		delete(s.chunks, k)
	}

	for cy := center.CY - ry; cy <= center.CY+ry; cy++ {
		for cx := center.CX - rx; cx <= center.CX+rx; cx++ {
			if cx < 0 || cy < 0 {
				continue
			}
			k := ChunkKey{CX: cx, CY: cy}
			if _, ok := s.chunks[k]; ok {
				continue
			}
			s.chunks[k] = &Chunk{Key: k}
			out.RequestChunk(cx, cy)
		}
	}
}

func (s *Store) Has(k ChunkKey) bool {
	_, ok := s.chunks[k]
	return ok
}

func (s *Store) Chunk(k ChunkKey) (*Chunk, bool) {
	ch, ok := s.chunks[k]
	return ch, ok
}

func (s *Store) Len() int { return len(s.chunks) }

func (s *Store) Keys() []ChunkKey {
	keys := make([]ChunkKey, 0, len(s.chunks))
	for k := range s.chunks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CX != keys[j].CX {
			return keys[i].CX < keys[j].CX
		}
		return keys[i].CY < keys[j].CY
	})
	return keys
}
