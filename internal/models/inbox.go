package models

import (
	"strconv"

	"github.com/google/uuid"
)

// Inbox message types.
const (
	MsgWelcome      = "welcome"
	MsgReport       = "report"
	MsgMeeting      = "meeting"
	MsgContact      = "contact"
	MsgTransfer     = "transfer"
	MsgAssignment   = "assignment"
	MsgFinance      = "finance"
	MsgMarket       = "market"
	MsgWindow       = "transfer_window"
	MsgPoachWarning = "poach_warning"
	MsgEvent        = "event"
	MsgTool         = "tool"
	MsgTrial        = "trial"
	MsgPlacement    = "placement"
	MsgAnalyst      = "analyst"
	MsgPrediction   = "prediction"
	MsgReview       = "season_review"
	MsgJobOffer     = "job_offer"
	MsgScenario     = "scenario"
	MsgDiscovery    = "discovery"
)

// idNamespace scopes deterministic ids generated from the world seed.
var idNamespace = uuid.MustParse("6f1c2b0e-3d5a-4c8e-9b7f-2a4d6e8f0c11")

// InboxMessage is an append-only notification.
type InboxMessage struct {
	ID             string `yaml:"id"`
	Week           int    `yaml:"week"`
	Season         int    `yaml:"season"`
	Type           string `yaml:"type"`
	Title          string `yaml:"title"`
	Body           string `yaml:"body,omitempty"`
	Read           bool   `yaml:"read,omitempty"`
	ActionRequired bool   `yaml:"action_required,omitempty"`
	RelatedID      string `yaml:"related_id,omitempty"`
}

// Pinned messages survive inbox trimming.
func (m InboxMessage) Pinned() bool {
	return !m.Read && m.ActionRequired
}

// NextID returns a fresh deterministic id for kind and bumps MessageSeq.
func (g *GameState) NextID(kind string) string {
	g.MessageSeq++
	name := g.WorldSeed + "-" + kind + "-" + strconv.Itoa(g.MessageSeq)
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}

// AddMessage stamps msg with an id and the current week, then appends it.
func (g *GameState) AddMessage(msg InboxMessage) InboxMessage {
	msg.ID = g.NextID("msg")
	msg.Week = g.CurrentWeek
	msg.Season = g.CurrentSeason
	g.Inbox = append(g.Inbox, msg)
	return msg
}

// MarkRead flags the message as read; it reports whether the id was found.
func (g *GameState) MarkRead(id string) bool {
	for i := range g.Inbox {
		if g.Inbox[i].ID == id {
			g.Inbox[i].Read = true
			return true
		}
	}
	return false
}

// SettleMessages marks read the action-required messages about relatedID,
// once the decision they ask for has been made or has lapsed.
func (g *GameState) SettleMessages(relatedID string) {
	for i := range g.Inbox {
		if g.Inbox[i].ActionRequired && g.Inbox[i].RelatedID == relatedID {
			g.Inbox[i].Read = true
		}
	}
}

// SettleStale marks read every pinned message whose decision is no longer
// open and returns how many it changed.
func (g *GameState) SettleStale() int {
	n := 0
	for i := range g.Inbox {
		m := &g.Inbox[i]
		if m.Pinned() && !g.awaitingDecision(m.RelatedID) {
			m.Read = true
			n++
		}
	}
	return n
}

// awaitingDecision reports whether id names an unacknowledged event, a live
// assignment or a standing job offer.
func (g *GameState) awaitingDecision(id string) bool {
	if id == "" {
		return false
	}
	for _, ev := range g.NarrativeEvents {
		if ev.ID == id {
			return !ev.Acknowledged
		}
	}
	for _, a := range g.Assignments {
		if a.ID == id {
			return !a.Completed && !a.Expired
		}
	}
	for _, o := range g.JobOffers {
		if o.ID == id {
			return true
		}
	}
	return false
}
