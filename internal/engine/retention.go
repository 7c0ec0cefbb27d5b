package engine

import (
	"github.com/tatianab/scout-career/internal/models"
)

// retention settles messages whose decision is gone, then bounds the inbox
// and prunes old narrative events.
func retention(t *tick, g models.GameState) (models.GameState, error) {
	if n := g.SettleStale(); n > 0 {
		t.e.log.Debug("settled inbox messages", "count", n)
	}
	g.Inbox = TrimInbox(g.Inbox, t.e.tuning.InboxCap)
	g.NarrativeEvents = PruneNarrative(g.NarrativeEvents, t.absNow(g), t.e.tuning.WeeksPerSeason, t.e.tuning.NarrativeRetentionWeeks)
	return g, nil
}

// TrimInbox bounds the inbox to limit messages. Unread action-required
// messages are always kept, even past the limit; the remaining budget goes to
// the newest other messages. Insertion order is preserved.
func TrimInbox(inbox []models.InboxMessage, limit int) []models.InboxMessage {
	if len(inbox) <= limit {
		return inbox
	}
	pinned := 0
	for _, m := range inbox {
		if m.Pinned() {
			pinned++
		}
	}
	budget := max(limit-pinned, 0)
	others := len(inbox) - pinned
	drop := others - budget

	out := make([]models.InboxMessage, 0, pinned+budget)
	for _, m := range inbox {
		if !m.Pinned() && drop > 0 {
			drop--
			continue
		}
		out = append(out, m)
	}
	return out
}

// PruneNarrative drops acknowledged events raised more than keepWeeks weeks
// before nowAbs. Unacknowledged events are never pruned.
func PruneNarrative(events []models.NarrativeEvent, nowAbs, weeksPerSeason, keepWeeks int) []models.NarrativeEvent {
	out := events[:0:0]
	for _, ev := range events {
		age := nowAbs - models.AbsoluteWeek(ev.Season, ev.Week, weeksPerSeason)
		if ev.Acknowledged && age > keepWeeks {
			continue
		}
		out = append(out, ev)
	}
	return out
}
