package game

import (
	"gridfall.gg/internal/entity"
	"gridfall.gg/internal/protocol"
	"gridfall.gg/internal/world"
)

// Tick runs once per simulation frame on the single owner goroutine: it
// drains the mailbox into client-visible state, then reconciles the chunk
// viewport around the player's current chunk. Both phases are
// O(viewport-chunk-count).
func (c *Client) Tick() {
	updates, chat := c.mailbox.Drain()
	for _, u := range updates {
		c.apply(u)
	}
	for _, e := range chat {
		c.chat.Append(e)
		if c.chatDB != nil {
			c.chatDB.RecordChat(e.Sender, e.Text)
		}
	}

	if c.terminated.Load() {
		return
	}
	c.store.ReconcileViewport(c.currentChunk(), c.radiusX, c.radiusY, c)
}

func (c *Client) apply(u Update) {
	switch v := u.Value.(type) {
	case PosUpdate:
		if u.Key.Kind == KindLocalPos {
			c.applyLocalPos(v)
			return
		}
		// Position updates only refresh players already in view; a stale
		// update for a departed player is dropped.
		if _, ok := c.others[u.Key.ID]; ok {
			c.others[u.Key.ID] = OtherPlayer{X: v.X, Y: v.Y}
		}

	case Presence:
		if v.Present {
			c.others[u.Key.ID] = OtherPlayer{X: v.X, Y: v.Y}
		} else {
			delete(c.others, u.Key.ID)
		}

	case ChunkUpdate:
		if err := c.store.Ingest(v.CX, v.CY, v.Blocks); err != nil {
			c.logger.Printf("tick: ingest (%d,%d): %v", v.CX, v.CY, err)
		}

	case BlockUpdate:
		c.store.ApplyChange(v.X, v.Y, v.Block)

	case InventoryUpdate:
		c.applyInventory(v)
	}
}

func (c *Client) applyLocalPos(v PosUpdate) {
	scale := float64(c.cfg.PixelScale)
	pos := c.local.Position()
	pos.X = v.X * scale
	pos.Y = v.Y * scale
	c.origin = entity.Position2D{X: -pos.X, Y: -pos.Y}
}

func (c *Client) applyInventory(v InventoryUpdate) {
	inv := c.local.Inventory()
	for i, s := range v.Slots {
		if i >= entity.SlotCount {
			break
		}
		if s == nil {
			inv.Reset(i)
			continue
		}
		inv.Slots[i] = entity.Slot{Item: s.Item, Count: s.Count}
	}
}

// currentChunk is the player's chunk coordinate, derived from the scaled
// position.
func (c *Client) currentChunk() world.ChunkKey {
	span := float64(world.Size * c.cfg.PixelScale)
	pos := c.local.Position()
	return world.ChunkKey{
		CX: int(pos.X / span),
		CY: int(pos.Y / span),
	}
}

// Requester implementation: the reconciliation's load/unload intents become
// wire messages. Suppressed once the connection is gone.

func (c *Client) RequestChunk(cx, cy int) {
	if err := c.send(&protocol.RequestChunkMsg{CX: cx, CY: cy}); err != nil {
		c.logger.Printf("tick: request chunk (%d,%d): %v", cx, cy, err)
	}
}

func (c *Client) UnloadChunk(cx, cy int) {
	if err := c.send(&protocol.UnloadChunkMsg{CX: cx, CY: cy}); err != nil {
		c.logger.Printf("tick: unload chunk (%d,%d): %v", cx, cy, err)
	}
}
