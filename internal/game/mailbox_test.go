package game

import "testing"

func TestMailbox_LastWriteWins(t *testing.T) {
	m := NewMailbox()
	m.Post(KindLocalPos, 7, PosUpdate{X: 1, Y: 1})
	m.Post(KindLocalPos, 7, PosUpdate{X: 2, Y: 2})

	ups, _ := m.Drain()
	if len(ups) != 1 {
		t.Fatalf("expected one collapsed update, got %d", len(ups))
	}
	if got := ups[0].Value.(PosUpdate); got.X != 2 || got.Y != 2 {
		t.Fatalf("stale value survived: %+v", got)
	}

	ups, _ = m.Drain()
	if len(ups) != 0 {
		t.Fatalf("drained entries reappeared: %v", ups)
	}
}

func TestMailbox_SeparateTargetsKept(t *testing.T) {
	m := NewMailbox()
	m.Post(KindOtherPos, 1, PosUpdate{X: 1})
	m.Post(KindOtherPos, 2, PosUpdate{X: 2})

	ups, _ := m.Drain()
	if len(ups) != 2 {
		t.Fatalf("distinct targets collapsed: %d", len(ups))
	}
}

func TestMailbox_RepostMovesToBack(t *testing.T) {
	m := NewMailbox()
	m.Post(KindChunk, ChunkID(0, 0), ChunkUpdate{CX: 0, CY: 0})
	m.Post(KindBlock, CellID(1, 1), BlockUpdate{X: 1, Y: 1, Block: 3})
	m.Post(KindChunk, ChunkID(0, 0), ChunkUpdate{CX: 0, CY: 0, Blocks: []uint16{1}})

	ups, _ := m.Drain()
	if len(ups) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(ups))
	}
	if ups[0].Key.Kind != KindBlock || ups[1].Key.Kind != KindChunk {
		t.Fatalf("repost did not move to back: %+v", ups)
	}
}

func TestMailbox_ChatKeepsEveryEntry(t *testing.T) {
	m := NewMailbox()
	m.PostChat(ChatEntry{Sender: "a", Text: "1"})
	m.PostChat(ChatEntry{Sender: "a", Text: "2"})

	_, chat := m.Drain()
	if len(chat) != 2 || chat[0].Text != "1" || chat[1].Text != "2" {
		t.Fatalf("chat order lost: %v", chat)
	}
}

func TestChunkCellIDs_Distinct(t *testing.T) {
	if ChunkID(1, 2) == ChunkID(2, 1) {
		t.Fatalf("chunk id collision")
	}
	if CellID(0, 1) == CellID(1, 0) {
		t.Fatalf("cell id collision")
	}
}

func TestChatLog_DropsOldest(t *testing.T) {
	l := NewChatLog(3)
	for i := 0; i < 5; i++ {
		l.Append(ChatEntry{Sender: "s", Text: string(rune('a' + i))})
	}
	got := l.Messages()
	if len(got) != 3 {
		t.Fatalf("cap not enforced: %d", len(got))
	}
	if got[0].Text != "c" || got[2].Text != "e" {
		t.Fatalf("wrong survivors: %v", got)
	}
}
