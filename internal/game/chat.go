package game

// ChatLog is a bounded message log: oldest entries drop when the capacity
// is exceeded. Owned by the simulation tick; the renderer reads it from the
// same goroutine.
type ChatLog struct {
	cap     int
	entries []ChatEntry
}

func NewChatLog(capacity int) *ChatLog {
	if capacity <= 0 {
		capacity = 50
	}
	return &ChatLog{cap: capacity}
}

func (l *ChatLog) Append(e ChatEntry) {
	if len(l.entries) == l.cap {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:l.cap-1]
	}
	l.entries = append(l.entries, e)
}

func (l *ChatLog) Len() int { return len(l.entries) }

// Messages returns the log oldest-first.
func (l *ChatLog) Messages() []ChatEntry {
	out := make([]ChatEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
