package protocol

import (
	"errors"
	"reflect"
	"testing"
)

func roundTrip(t *testing.T, in Message) Message {
	t.Helper()
	b, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode(%s): %v", in.Tag(), err)
	}
	out, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode(%s): %v", in.Tag(), err)
	}
	if out.Tag() != in.Tag() {
		t.Fatalf("tag changed: sent %s got %s", in.Tag(), out.Tag())
	}
	return out
}

func TestCodec_RoundTripAllKinds(t *testing.T) {
	chunk := &ChunkDataMsg{CX: 2, CY: 3}
	ids := make([]uint16, ChunkArea)
	for i := range ids {
		ids[i] = uint16(i % 7)
	}
	chunk.SetBlockIDs(ids)

	msgs := []Message{
		&HelloMsg{Name: "alice"},
		&GoodbyeMsg{},
		&HeartbeatMsg{},
		&RequestChunkMsg{CX: 1, CY: 2},
		&UnloadChunkMsg{CX: 5, CY: 5},
		&PlaceBlockMsg{X: 19, Y: 2},
		&BreakBlockMsg{X: 3, Y: 4},
		&VelocityMsg{VX: -5},
		&JumpMsg{},
		&ChangeSlotMsg{Slot: 8},
		&ChatMsg{Text: "hi"},
		&WelcomeMsg{PlayerID: 7, SpawnX: 3, SpawnY: 4, WorldWidth: 100},
		&KickMsg{Reason: "afk"},
		&HeartbeatPingMsg{},
		chunk,
		&PlayerPosMsg{PlayerID: 7, X: 1.5, Y: 2.5},
		&PlayerEnterMsg{PlayerID: 9, X: 10, Y: 20},
		&PlayerLeaveMsg{PlayerID: 9},
		&BlockChangedMsg{X: 19, Y: 2, Block: 3},
		&BlockBatchMsg{Batch: [][2]int{{1, 2}, {3, 4}}, Block: 5},
		&InventoryMsg{Slots: []*SlotUpdate{{Item: 2, Count: 10}, nil, {Item: -1}}},
		&ChatBroadcastMsg{Sender: "bob", Text: "yo"},
	}

	for _, in := range msgs {
		out := roundTrip(t, in)
		if !reflect.DeepEqual(in, out) {
			t.Fatalf("%s: round trip mismatch:\n sent %+v\n got  %+v", in.Tag(), in, out)
		}
	}
}

func TestCodec_ChunkPayloadExpands(t *testing.T) {
	in := &ChunkDataMsg{CX: 0, CY: 0}
	ids := make([]uint16, ChunkArea)
	ids[0] = 9
	ids[255] = 4
	in.SetBlockIDs(ids)

	out := roundTrip(t, in).(*ChunkDataMsg)
	got, err := out.BlockIDs()
	if err != nil {
		t.Fatalf("BlockIDs: %v", err)
	}
	if got[0] != 9 || got[255] != 4 {
		t.Fatalf("payload corrupted: %d %d", got[0], got[255])
	}
}

func TestDecode_UnknownTag(t *testing.T) {
	_, err := Decode([]byte(`{"type":"NO_SUCH"}`))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestDecode_BadJSON(t *testing.T) {
	_, err := Decode([]byte(`{"type":`))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestDecode_MissingRequiredField(t *testing.T) {
	cases := []string{
		`{"type":"HELLO"}`,
		`{"type":"WELCOME","spawn_x":1,"spawn_y":2}`,
		`{"type":"KICK"}`,
		`{"type":"CHUNK_DATA","cx":0,"cy":0,"encoding":"RLE","blocks":"AAAB"}`,
		`{"type":"CHUNK_DATA","cx":-1,"cy":0,"encoding":"RLE","blocks":""}`,
		`{"type":"PLAYER_POS","x":1,"y":2}`,
		`{"type":"BLOCK_CHANGED_BATCH","block":3}`,
		`{"type":"CHANGE_SLOT","slot":9}`,
	}
	for _, c := range cases {
		if _, err := Decode([]byte(c)); !errors.Is(err, ErrMalformed) {
			t.Fatalf("expected ErrMalformed for %s, got %v", c, err)
		}
	}
}

func TestDecode_IgnoresUnknownFields(t *testing.T) {
	m, err := Decode([]byte(`{"type":"KICK","reason":"bye","extra_field":true}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.(*KickMsg).Reason != "bye" {
		t.Fatalf("reason lost: %+v", m)
	}
}
