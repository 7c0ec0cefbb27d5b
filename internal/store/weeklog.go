package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/tatianab/scout-career/internal/engine"
)

// WeekLog appends week summaries as compressed JSON lines, one file per
// season.
type WeekLog struct {
	dir string

	mu     sync.Mutex
	season int
	f      *os.File
	enc    *zstd.Encoder
	w      *bufio.Writer
}

// NewWeekLog writes under dir; files are created lazily.
func NewWeekLog(dir string) *WeekLog {
	return &WeekLog{dir: dir}
}

// Append writes one summary. Each season goes to its own file.
func (l *WeekLog) Append(s engine.WeekSummary) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if s.Season != l.season || l.w == nil {
		if err := l.rotateLocked(s.Season); err != nil {
			return err
		}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if _, err := l.w.Write(b); err != nil {
		return err
	}
	if err := l.w.WriteByte('\n'); err != nil {
		return err
	}
	return l.w.Flush()
}

// Close finishes the current compressed frame.
func (l *WeekLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closeLocked()
}

func (l *WeekLog) rotateLocked(season int) error {
	if err := l.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(seasonPath(l.dir, season), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	l.f, l.enc, l.w = f, enc, bufio.NewWriter(enc)
	l.season = season
	return nil
}

func (l *WeekLog) closeLocked() error {
	var err error
	if l.w != nil {
		err = l.w.Flush()
	}
	if l.enc != nil {
		err = errors.Join(err, l.enc.Close())
		l.enc = nil
	}
	if l.f != nil {
		err = errors.Join(err, l.f.Close())
		l.f = nil
	}
	l.w = nil
	return err
}

func seasonPath(dir string, season int) string {
	return filepath.Join(dir, fmt.Sprintf("season-%03d.jsonl.zst", season))
}

// ReadSeason returns every summary logged for a season, in write order.
// Files appended across sessions hold several frames; the decoder reads
// them back to back.
func ReadSeason(dir string, season int) ([]engine.WeekSummary, error) {
	data, err := os.ReadFile(seasonPath(dir, season))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", seasonPath(dir, season), err)
	}

	var out []engine.WeekSummary
	sc := bufio.NewScanner(bytes.NewReader(raw))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		var s engine.WeekSummary
		if err := json.Unmarshal(sc.Bytes(), &s); err != nil {
			return nil, fmt.Errorf("decode week summary: %w", err)
		}
		out = append(out, s)
	}
	return out, sc.Err()
}
