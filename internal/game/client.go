package game

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync/atomic"
	"time"

	"gridfall.gg/internal/config"
	"gridfall.gg/internal/entity"
	"gridfall.gg/internal/protocol"
	"gridfall.gg/internal/transport"
	"gridfall.gg/internal/world"
)

// KickError carries the server's human-readable termination reason.
type KickError struct {
	Reason string
}

func (e *KickError) Error() string { return "kicked: " + e.Reason }

// OtherPlayer is the last known state of a remote player, in server cells.
type OtherPlayer struct {
	X float64
	Y float64
}

// FrameRecorder observes raw wire frames (the optional trace).
type FrameRecorder interface {
	RecordIn(frame []byte)
	RecordOut(frame []byte)
}

// ChatRecorder observes delivered chat broadcasts (the optional session
// index).
type ChatRecorder interface {
	RecordChat(sender, text string)
}

// Client holds the network-synchronized view of the shared world. Two
// goroutines touch it: the receiver task, which only posts to the mailbox
// (and answers pings), and the simulation tick, which owns everything else.
type Client struct {
	cfg    config.Config
	logger *log.Logger

	session transport.Session
	trace   FrameRecorder
	chatDB  ChatRecorder

	mailbox *Mailbox

	// Tick-owned state.
	store      *world.Store
	local      *entity.Entity
	origin     entity.Position2D // world-origin offset: negated local position
	others     map[int64]OtherPlayer
	chat       *ChatLog
	playerID   int64
	worldWidth int

	radiusX int
	radiusY int

	terminated atomic.Bool
	kickReason atomic.Value // string
}

type Option func(*Client)

func WithTrace(r FrameRecorder) Option { return func(c *Client) { c.trace = r } }
func WithChatRecorder(r ChatRecorder) Option {
	return func(c *Client) { c.chatDB = r }
}

func NewClient(cfg config.Config, session transport.Session, logger *log.Logger, opts ...Option) *Client {
	c := &Client{
		cfg:     cfg,
		logger:  logger,
		session: session,
		mailbox: NewMailbox(),
		store:   world.NewStore(),
		local:   entity.NewPlayer(),
		others:  map[int64]OtherPlayer{},
		chat:    NewChatLog(cfg.ChatLogCap),
		radiusX: viewportRadius(cfg.ScreenW, cfg.PixelScale),
		radiusY: viewportRadius(cfg.ScreenH, cfg.PixelScale),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// viewportRadius is the chunk distance that keeps the screen covered: a
// chunk spans 16 cells of pixelScale units, and the window extends half a
// screen each way from the player.
func viewportRadius(screenPx, pixelScale int) int {
	return int(math.Ceil(float64(screenPx) / float64(2*world.Size*pixelScale)))
}

// Handshake sends HELLO and blocks until the server's WELCOME, seeding the
// local identity, spawn position and world width. Messages arriving before
// the WELCOME are dispatched normally.
func (c *Client) Handshake(name string) error {
	if err := c.send(&protocol.HelloMsg{Name: name}); err != nil {
		return fmt.Errorf("hello: %w", err)
	}
	for {
		b, err := c.session.Recv()
		if err != nil {
			c.terminate("")
			return fmt.Errorf("welcome: %w", err)
		}
		if c.trace != nil {
			c.trace.RecordIn(b)
		}
		m, err := protocol.Decode(b)
		if err != nil {
			c.logger.Printf("handshake: dropping frame: %v", err)
			continue
		}
		switch w := m.(type) {
		case *protocol.WelcomeMsg:
			c.applyWelcome(w)
			return nil
		case *protocol.KickMsg:
			c.terminate(w.Reason)
			return &KickError{Reason: w.Reason}
		default:
			c.dispatch(m)
		}
	}
}

func (c *Client) applyWelcome(w *protocol.WelcomeMsg) {
	scale := float64(c.cfg.PixelScale)
	c.playerID = w.PlayerID
	c.worldWidth = w.WorldWidth

	pos := c.local.Position()
	pos.X = w.SpawnX * scale
	pos.Y = w.SpawnY * scale
	c.origin = entity.Position2D{X: -pos.X, Y: -pos.Y}

	c.logger.Printf("connected: player_id=%d spawn=(%.0f,%.0f) world_width=%d",
		w.PlayerID, w.SpawnX, w.SpawnY, w.WorldWidth)
}

func (c *Client) send(m protocol.Message) error {
	if c.terminated.Load() {
		return transport.ErrClosed
	}
	b, err := protocol.Encode(m)
	if err != nil {
		return err
	}
	if c.trace != nil {
		c.trace.RecordOut(b)
	}
	return c.session.Send(b)
}

func (c *Client) terminate(kickReason string) {
	if kickReason != "" {
		c.kickReason.Store(kickReason)
	}
	c.terminated.Store(true)
}

// Terminated reports whether the connection is gone (kick or transport
// failure). The tick observes it and stops issuing network actions.
func (c *Client) Terminated() bool { return c.terminated.Load() }

func (c *Client) KickReason() string {
	if r, ok := c.kickReason.Load().(string); ok {
		return r
	}
	return ""
}

// Input intents, called by the input collaborator from the tick goroutine.

func (c *Client) PlaceBlock(x, y int) error {
	if x < 0 || y < 0 {
		return nil
	}
	return c.send(&protocol.PlaceBlockMsg{X: x, Y: y})
}

func (c *Client) BreakBlock(x, y int) error {
	if x < 0 || y < 0 {
		return nil
	}
	return c.send(&protocol.BreakBlockMsg{X: x, Y: y})
}

// SetVelocityX reports the player's horizontal velocity in server cells per
// second.
func (c *Client) SetVelocityX(vx float64) error {
	return c.send(&protocol.VelocityMsg{VX: vx})
}

func (c *Client) Jump() error {
	return c.send(&protocol.JumpMsg{})
}

func (c *Client) ChangeSlot(slot int) error {
	if slot < 0 || slot >= entity.SlotCount {
		return fmt.Errorf("slot %d out of range", slot)
	}
	c.local.SelectedSlot().Slot = slot
	return c.send(&protocol.ChangeSlotMsg{Slot: slot})
}

func (c *Client) Say(text string) error {
	if text == "" {
		return nil
	}
	return c.send(&protocol.ChatMsg{Text: text})
}

// Goodbye announces a clean shutdown and closes the session.
func (c *Client) Goodbye() {
	if err := c.send(&protocol.GoodbyeMsg{}); err != nil && !errors.Is(err, transport.ErrClosed) {
		c.logger.Printf("goodbye: %v", err)
	}
	c.terminate("")
	_ = c.session.Close()
}

// Read surface for the renderer (tick goroutine only).

func (c *Client) PlayerID() int64       { return c.playerID }
func (c *Client) WorldWidth() int       { return c.worldWidth }
func (c *Client) Local() *entity.Entity { return c.local }

// Origin is the world-origin offset, the negated scaled player position.
func (c *Client) Origin() entity.Position2D { return c.origin }

// BlockAt reads world state in client units (scaled pixels).
func (c *Client) BlockAt(px, py float64) uint16 {
	scale := float64(c.cfg.PixelScale)
	if px < 0 || py < 0 {
		return world.Air
	}
	return c.store.BlockAt(int(px/scale), int(py/scale))
}

func (c *Client) Store() *world.Store { return c.store }

func (c *Client) OtherPlayers() map[int64]OtherPlayer {
	out := make(map[int64]OtherPlayer, len(c.others))
	for id, p := range c.others {
		out[id] = p
	}
	return out
}

func (c *Client) ChatMessages() []ChatEntry { return c.chat.Messages() }

// InventorySlots is a copy of the local player's hotbar.
func (c *Client) InventorySlots() [entity.SlotCount]entity.Slot {
	return c.local.Inventory().Slots
}

func (c *Client) pollInterval() time.Duration {
	return time.Duration(c.cfg.PollIntervalMs) * time.Millisecond
}
