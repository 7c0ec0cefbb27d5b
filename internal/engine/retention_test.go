package engine

import (
	"fmt"
	"testing"

	"github.com/tatianab/scout-career/internal/models"
)

func inbox(n int, pinned func(i int) bool) []models.InboxMessage {
	out := make([]models.InboxMessage, n)
	for i := range out {
		out[i] = models.InboxMessage{ID: fmt.Sprintf("m%03d", i), ActionRequired: pinned(i)}
	}
	return out
}

func TestTrimInbox(t *testing.T) {
	msgs := inbox(250, func(i int) bool { return i%10 == 0 })
	got := TrimInbox(msgs, 200)
	if len(got) != 200 {
		t.Fatalf("len = %d, want 200", len(got))
	}
	pinned := 0
	for i, m := range got {
		if m.Pinned() {
			pinned++
		}
		if i > 0 && got[i-1].ID >= m.ID {
			t.Fatalf("order not preserved at %d: %s then %s", i, got[i-1].ID, m.ID)
		}
	}
	if pinned != 25 {
		t.Errorf("pinned kept = %d, want 25", pinned)
	}
	if got[len(got)-1].ID != "m249" {
		t.Errorf("newest message evicted, last = %s", got[len(got)-1].ID)
	}
}

func TestTrimInboxReadMessagesAreNotPinned(t *testing.T) {
	msgs := inbox(5, func(int) bool { return true })
	msgs[0].Read = true
	got := TrimInbox(msgs, 3)
	if len(got) != 4 || got[0].ID != "m001" {
		t.Fatalf("got %d messages starting at %s, want 4 starting at m001", len(got), got[0].ID)
	}
}

func TestTrimInboxMostlyPinned(t *testing.T) {
	msgs := inbox(230, func(i int) bool { return i < 210 })
	got := TrimInbox(msgs, 200)
	if len(got) != 210 {
		t.Fatalf("len = %d, want 210 pinned", len(got))
	}
	for _, m := range got {
		if !m.Pinned() {
			t.Fatalf("unpinned message %s kept over budget", m.ID)
		}
	}
}

func TestTrimInboxUnderLimit(t *testing.T) {
	msgs := inbox(10, func(int) bool { return false })
	if got := TrimInbox(msgs, 200); len(got) != 10 {
		t.Errorf("len = %d, want 10", len(got))
	}
}

func TestPruneNarrative(t *testing.T) {
	const wps = 38
	events := []models.NarrativeEvent{
		{ID: "old-ack", Season: 1, Week: 2, Acknowledged: true},
		{ID: "old-open", Season: 1, Week: 2},
		{ID: "recent-ack", Season: 1, Week: 30, Acknowledged: true},
		{ID: "boundary", Season: 1, Week: 28, Acknowledged: true},
	}
	now := models.AbsoluteWeek(1, 38, wps)
	got := PruneNarrative(events, now, wps, 10)

	var ids []string
	for _, ev := range got {
		ids = append(ids, ev.ID)
	}
	want := []string{"old-open", "recent-ack", "boundary"}
	if fmt.Sprint(ids) != fmt.Sprint(want) {
		t.Fatalf("kept %v, want %v", ids, want)
	}
	if len(events) != 4 || events[0].ID != "old-ack" {
		t.Error("input slice modified")
	}
}
