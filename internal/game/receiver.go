package game

import (
	"errors"
	"time"

	"gridfall.gg/internal/protocol"
	"gridfall.gg/internal/transport"
)

// RunReceiver is the network receiver task: a poll-throttled loop that
// decodes inbound frames and routes them into the mailbox. It runs for the
// lifetime of the connection and terminates on KICK or a closed transport;
// it never restarts. Malformed frames are dropped and the loop continues.
func (c *Client) RunReceiver() {
	interval := c.pollInterval()
	for !c.terminated.Load() {
		time.Sleep(interval)

		b, err := c.session.Recv()
		if err != nil {
			if !errors.Is(err, transport.ErrClosed) {
				c.logger.Printf("receiver: recv: %v", err)
			}
			c.terminate("")
			return
		}
		if c.trace != nil {
			c.trace.RecordIn(b)
		}

		m, err := protocol.Decode(b)
		if err != nil {
			c.logger.Printf("receiver: dropping frame: %v", err)
			continue
		}
		if !c.dispatch(m) {
			return
		}
	}
}

// dispatch routes one inbound message. It runs on the receiver goroutine
// and therefore only posts to the mailbox or replies on the session; all
// world state is applied later, in Tick. Returns false when the task must
// terminate.
func (c *Client) dispatch(m protocol.Message) bool {
	switch msg := m.(type) {
	case *protocol.KickMsg:
		c.logger.Printf("kicked: %s", msg.Reason)
		c.terminate(msg.Reason)
		return false

	case *protocol.HeartbeatPingMsg:
		if err := c.send(&protocol.HeartbeatMsg{}); err != nil {
			c.logger.Printf("receiver: heartbeat: %v", err)
		}

	case *protocol.ChunkDataMsg:
		ids, err := msg.BlockIDs()
		if err != nil {
			c.logger.Printf("receiver: chunk (%d,%d): %v", msg.CX, msg.CY, err)
			return true
		}
		c.mailbox.Post(KindChunk, ChunkID(msg.CX, msg.CY), ChunkUpdate{
			CX: msg.CX, CY: msg.CY, Blocks: ids,
		})

	case *protocol.PlayerPosMsg:
		if msg.PlayerID == c.playerID {
			c.mailbox.Post(KindLocalPos, msg.PlayerID, PosUpdate{X: msg.X, Y: msg.Y})
		} else {
			c.mailbox.Post(KindOtherPos, msg.PlayerID, PosUpdate{X: msg.X, Y: msg.Y})
		}

	case *protocol.PlayerEnterMsg:
		c.mailbox.Post(KindPresence, msg.PlayerID, Presence{Present: true, X: msg.X, Y: msg.Y})

	case *protocol.PlayerLeaveMsg:
		c.mailbox.Post(KindPresence, msg.PlayerID, Presence{})

	case *protocol.BlockChangedMsg:
		c.mailbox.Post(KindBlock, CellID(msg.X, msg.Y), BlockUpdate{
			X: msg.X, Y: msg.Y, Block: msg.Block,
		})

	case *protocol.BlockBatchMsg:
		for _, p := range msg.Batch {
			c.mailbox.Post(KindBlock, CellID(p[0], p[1]), BlockUpdate{
				X: p[0], Y: p[1], Block: msg.Block,
			})
		}

	case *protocol.InventoryMsg:
		up := InventoryUpdate{Slots: make([]*SlotValue, len(msg.Slots))}
		for i, s := range msg.Slots {
			if s != nil {
				up.Slots[i] = &SlotValue{Item: s.Item, Count: s.Count}
			}
		}
		c.mailbox.Post(KindInventory, 0, up)

	case *protocol.ChatBroadcastMsg:
		c.mailbox.PostChat(ChatEntry{Sender: msg.Sender, Text: msg.Text})

	default:
		c.logger.Printf("receiver: ignoring %s", m.Tag())
	}
	return true
}
