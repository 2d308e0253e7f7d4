package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Entry is one recorded wire frame.
type Entry struct {
	Dir   string          `json:"dir"` // "in" or "out"
	At    time.Time       `json:"at"`
	Frame json.RawMessage `json:"frame"`
}

// Recorder writes the client's wire traffic as zstd-compressed JSONL,
// rotated hourly. Both the receiver task and the simulation tick record
// through it, hence the lock.
type Recorder struct {
	baseDir string
	prefix  string

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

func NewRecorder(baseDir, prefix string) *Recorder {
	return &Recorder{baseDir: baseDir, prefix: prefix}
}

func (r *Recorder) RecordIn(frame []byte)  { r.record("in", frame) }
func (r *Recorder) RecordOut(frame []byte) { r.record("out", frame) }

func (r *Recorder) record(dir string, frame []byte) {
	e := Entry{Dir: dir, At: time.Now().UTC(), Frame: append(json.RawMessage(nil), frame...)}
	if err := r.write(e); err != nil {
		// The trace is best-effort diagnostics; losing an entry must never
		// disturb the connection.
		return
	}
}

func (r *Recorder) write(e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	hour := e.At.Format("2006-01-02-15")
	if hour != r.curHour {
		if err := r.rotateLocked(hour); err != nil {
			return err
		}
	}

	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := r.w.Write(b); err != nil {
		return err
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return err
	}
	return r.w.Flush()
}

func (r *Recorder) rotateLocked(hour string) error {
	if err := r.closeLocked(); err != nil {
		return err
	}
	path := r.pathForHour(hour)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	r.curHour = hour
	r.f = f
	r.enc = enc
	r.w = bufio.NewWriter(enc)
	return nil
}

func (r *Recorder) pathForHour(hour string) string {
	return filepath.Join(r.baseDir, fmt.Sprintf("%s-%s.jsonl.zst", r.prefix, hour))
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closeLocked()
}

func (r *Recorder) closeLocked() error {
	if r.w != nil {
		if err := r.w.Flush(); err != nil {
			return err
		}
	}
	if r.enc != nil {
		if err := r.enc.Close(); err != nil {
			return err
		}
	}
	if r.f != nil {
		if err := r.f.Close(); err != nil {
			return err
		}
	}
	r.curHour = ""
	r.f = nil
	r.enc = nil
	r.w = nil
	return nil
}

// ReadFile decodes every entry of one trace file.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []Entry
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
