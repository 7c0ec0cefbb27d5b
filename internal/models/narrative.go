package models

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownEvent     = errors.New("unknown narrative event")
	ErrChoiceOutOfRange = errors.New("narrative choice out of range")
	ErrAlreadyResolved  = errors.New("narrative event already resolved")
	ErrChoiceRequired   = errors.New("narrative event needs a choice")
)

// Consequences are typed deltas applied when an event resolves.
type Consequences struct {
	Reputation   float64 `yaml:"reputation,omitempty"`
	ManagerTrust float64 `yaml:"manager_trust,omitempty"`
	Budget       float64 `yaml:"budget,omitempty"`
	Form         float64 `yaml:"form,omitempty"`
	MarketValue  float64 `yaml:"market_value,omitempty"`
	Relationship float64 `yaml:"relationship,omitempty"`
	PlayerID     string  `yaml:"player_id,omitempty"`
	ContactID    string  `yaml:"contact_id,omitempty"`
}

// NarrativeChoice is one option offered by an event.
type NarrativeChoice struct {
	Label        string       `yaml:"label"`
	Consequences Consequences `yaml:"consequences"`
}

// NarrativeEvent is a raised story beat. Chained events share ChainID and
// len(ChoiceHistory) always equals CurrentStep.
type NarrativeEvent struct {
	ID            string            `yaml:"id"`
	ChainID       string            `yaml:"chain_id,omitempty"`
	Kind          string            `yaml:"kind"`
	Title         string            `yaml:"title"`
	Body          string            `yaml:"body,omitempty"`
	Week          int               `yaml:"week"`
	Season        int               `yaml:"season"`
	CurrentStep   int               `yaml:"current_step"`
	ChoiceHistory []int             `yaml:"choice_history,omitempty"`
	Choices       []NarrativeChoice `yaml:"choices,omitempty"`
	Consequences  *Consequences     `yaml:"consequences,omitempty"`
	Acknowledged  bool              `yaml:"acknowledged,omitempty"`
}

// Storyline tracks one multi-step narrative chain.
type Storyline struct {
	ID         string `yaml:"id"`
	TemplateID string `yaml:"template_id"`
	Step       int    `yaml:"step"`
	NextAbs    int    `yaml:"next_abs_week"`
	Completed  bool   `yaml:"completed,omitempty"`
}

func (g *GameState) eventIndex(id string) int {
	for i := range g.NarrativeEvents {
		if g.NarrativeEvents[i].ID == id {
			return i
		}
	}
	return -1
}

// ApplyConsequences applies every delta whose target exists. Targets that
// are absent (no finances, no manager, unknown player) are skipped.
func (g *GameState) ApplyConsequences(c Consequences) {
	if c.Reputation != 0 {
		g.AdjustReputation(c.Reputation)
	}
	if c.ManagerTrust != 0 && g.Manager != nil {
		g.Manager.Trust = Clamp(g.Manager.Trust+c.ManagerTrust, 0, 100)
	}
	if c.Budget != 0 && g.Finances != nil {
		g.Finances.Balance += c.Budget
		g.Finances.Ledger = append(g.Finances.Ledger, LedgerEntry{
			Week: g.CurrentWeek, Season: g.CurrentSeason, Label: "event", Amount: c.Budget,
		})
	}
	if c.PlayerID != "" {
		if i := g.PlayerIndex(c.PlayerID); i >= 0 {
			p := &g.Players[i]
			p.Form = Clamp(p.Form+c.Form, 0, 10)
			p.MarketValue += p.MarketValue * c.MarketValue
			if p.MarketValue < 0 {
				p.MarketValue = 0
			}
		}
	}
	if c.ContactID != "" && c.Relationship != 0 {
		for i := range g.Contacts {
			if g.Contacts[i].ID == c.ContactID {
				g.Contacts[i].Relationship = Clamp(g.Contacts[i].Relationship+c.Relationship, 0, 100)
			}
		}
	}
}

// ResolveChoice records the choice on the event, applies its consequences
// and acknowledges the event.
func (g *GameState) ResolveChoice(eventID string, index int) error {
	i := g.eventIndex(eventID)
	if i < 0 {
		return fmt.Errorf("resolve %s: %w", eventID, ErrUnknownEvent)
	}
	ev := &g.NarrativeEvents[i]
	if ev.Acknowledged {
		return fmt.Errorf("resolve %s: %w", eventID, ErrAlreadyResolved)
	}
	if index < 0 || index >= len(ev.Choices) {
		return fmt.Errorf("resolve %s choice %d of %d: %w", eventID, index, len(ev.Choices), ErrChoiceOutOfRange)
	}
	ev.ChoiceHistory = append(ev.ChoiceHistory, index)
	ev.CurrentStep = len(ev.ChoiceHistory)
	ev.Acknowledged = true
	g.ApplyConsequences(ev.Choices[index].Consequences)
	g.SettleMessages(eventID)
	return nil
}

// Acknowledge marks an event as seen and applies its fixed consequences
// once. Events that still offer choices must be resolved instead.
func (g *GameState) Acknowledge(eventID string) error {
	i := g.eventIndex(eventID)
	if i < 0 {
		return fmt.Errorf("acknowledge %s: %w", eventID, ErrUnknownEvent)
	}
	ev := &g.NarrativeEvents[i]
	if ev.Acknowledged {
		return nil
	}
	if len(ev.Choices) > 0 {
		return fmt.Errorf("acknowledge %s: %w", eventID, ErrChoiceRequired)
	}
	ev.Acknowledged = true
	if ev.Consequences != nil {
		g.ApplyConsequences(*ev.Consequences)
	}
	g.SettleMessages(eventID)
	return nil
}

// QueueChoice records a decision to be resolved by the next tick. A later
// choice for the same event replaces the earlier one.
func (g *GameState) QueueChoice(eventID string, index int) error {
	i := g.eventIndex(eventID)
	if i < 0 {
		return fmt.Errorf("queue %s: %w", eventID, ErrUnknownEvent)
	}
	if g.NarrativeEvents[i].Acknowledged {
		return fmt.Errorf("queue %s: %w", eventID, ErrAlreadyResolved)
	}
	for j := range g.PendingChoices {
		if g.PendingChoices[j].EventID == eventID {
			g.PendingChoices[j].ChoiceIndex = index
			return nil
		}
	}
	g.PendingChoices = append(g.PendingChoices, PendingChoice{EventID: eventID, ChoiceIndex: index})
	return nil
}
