package store

import (
	"testing"

	"github.com/tatianab/scout-career/internal/engine"
)

func TestWeekLogRoundTrip(t *testing.T) {
	dir := t.TempDir()
	l := NewWeekLog(dir)
	for week := 1; week <= 3; week++ {
		if err := l.Append(engine.WeekSummary{Week: week, Season: 1, Discoveries: []string{}}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := l.Append(engine.WeekSummary{Week: 1, Season: 2, SeasonEnded: false}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	first, err := ReadSeason(dir, 1)
	if err != nil {
		t.Fatalf("ReadSeason(1): %v", err)
	}
	if len(first) != 3 || first[2].Week != 3 {
		t.Fatalf("season 1 = %+v", first)
	}
	second, err := ReadSeason(dir, 2)
	if err != nil {
		t.Fatalf("ReadSeason(2): %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("season 2 has %d entries, want 1", len(second))
	}
}

func TestWeekLogAppendsAcrossSessions(t *testing.T) {
	dir := t.TempDir()
	for week := 1; week <= 2; week++ {
		l := NewWeekLog(dir)
		if err := l.Append(engine.WeekSummary{Week: week, Season: 1}); err != nil {
			t.Fatalf("Append: %v", err)
		}
		if err := l.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}
	got, err := ReadSeason(dir, 1)
	if err != nil {
		t.Fatalf("ReadSeason: %v", err)
	}
	if len(got) != 2 || got[0].Week != 1 || got[1].Week != 2 {
		t.Fatalf("got %+v", got)
	}
}
