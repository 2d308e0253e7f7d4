package trace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRecorder_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	r := NewRecorder(dir, "wire")

	r.RecordOut([]byte(`{"type":"HELLO","name":"alice"}`))
	r.RecordIn([]byte(`{"type":"WELCOME","player_id":7}`))
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "wire-*.jsonl.zst"))
	if err != nil || len(files) != 1 {
		t.Fatalf("trace files: %v %v", files, err)
	}

	entries, err := ReadFile(files[0])
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Dir != "out" || entries[1].Dir != "in" {
		t.Fatalf("directions: %s %s", entries[0].Dir, entries[1].Dir)
	}
	if string(entries[1].Frame) != `{"type":"WELCOME","player_id":7}` {
		t.Fatalf("frame corrupted: %s", entries[1].Frame)
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.jsonl.zst")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist, got %v", err)
	}
}
