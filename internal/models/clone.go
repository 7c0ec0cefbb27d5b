package models

import (
	"maps"
	"slices"
)

// Clone returns a deep copy. Tick stages work on clones so a discarded stage
// never leaves its input half-modified.
func (g GameState) Clone() GameState {
	out := g

	out.Scout.Skills = maps.Clone(g.Scout.Skills)
	out.Scout.Attributes = maps.Clone(g.Scout.Attributes)
	out.Scout.Tools = slices.Clone(g.Scout.Tools)

	out.Countries = slices.Clone(g.Countries)
	out.Leagues = slices.Clone(g.Leagues)
	out.Clubs = slices.Clone(g.Clubs)
	out.Players = slices.Clone(g.Players)
	out.Fixtures = slices.Clone(g.Fixtures)
	out.PlayedFixtures = slices.Clone(g.PlayedFixtures)
	out.Schedule = g.Schedule.clone()
	if g.ActiveMatch != nil {
		m := *g.ActiveMatch
		out.ActiveMatch = &m
	}

	out.Observations = slices.Clone(g.Observations)
	out.Reports = make([]Report, len(g.Reports))
	for i, r := range g.Reports {
		if r.RetroScore != nil {
			v := *r.RetroScore
			r.RetroScore = &v
		}
		out.Reports[i] = r
	}
	if g.Reports == nil {
		out.Reports = nil
	}
	out.Discoveries = slices.Clone(g.Discoveries)
	out.NPCReports = slices.Clone(g.NPCReports)
	out.Contacts = slices.Clone(g.Contacts)

	if g.Finances != nil {
		f := *g.Finances
		f.Ledger = slices.Clone(g.Finances.Ledger)
		out.Finances = &f
	}

	out.Inbox = slices.Clone(g.Inbox)
	out.NarrativeEvents = make([]NarrativeEvent, len(g.NarrativeEvents))
	for i, ev := range g.NarrativeEvents {
		out.NarrativeEvents[i] = ev.clone()
	}
	if g.NarrativeEvents == nil {
		out.NarrativeEvents = nil
	}
	out.Storylines = slices.Clone(g.Storylines)
	out.PendingChoices = slices.Clone(g.PendingChoices)

	out.UnsignedYouth = slices.Clone(g.UnsignedYouth)
	out.AcademyIntakes = slices.Clone(g.AcademyIntakes)
	out.Placements = slices.Clone(g.Placements)

	if g.Manager != nil {
		m := *g.Manager
		out.Manager = &m
	}
	out.Directives = slices.Clone(g.Directives)
	out.Trials = slices.Clone(g.Trials)

	out.AnalystReports = slices.Clone(g.AnalystReports)
	out.Predictions = slices.Clone(g.Predictions)
	if g.AnalystOffer != nil {
		a := *g.AnalystOffer
		out.AnalystOffer = &a
	}
	out.Familiarity = slices.Clone(g.Familiarity)

	out.Rivals = slices.Clone(g.Rivals)
	out.Transfers = slices.Clone(g.Transfers)
	out.Assignments = slices.Clone(g.Assignments)

	if g.Market.Event != nil {
		e := *g.Market.Event
		out.Market.Event = &e
	}
	if g.Agency != nil {
		a := *g.Agency
		a.Employees = slices.Clone(g.Agency.Employees)
		out.Agency = &a
	}
	out.Listings = slices.Clone(g.Listings)
	out.Retainers = slices.Clone(g.Retainers)
	out.Consulting = slices.Clone(g.Consulting)

	out.SeasonEvents = slices.Clone(g.SeasonEvents)
	out.TransferWindows = slices.Clone(g.TransferWindows)
	out.JobOffers = slices.Clone(g.JobOffers)
	out.Snapshots = slices.Clone(g.Snapshots)
	out.Reviews = slices.Clone(g.Reviews)
	if g.Scenario != nil {
		s := *g.Scenario
		out.Scenario = &s
	}
	return out
}

func (ev NarrativeEvent) clone() NarrativeEvent {
	out := ev
	out.ChoiceHistory = slices.Clone(ev.ChoiceHistory)
	out.Choices = slices.Clone(ev.Choices)
	if ev.Consequences != nil {
		c := *ev.Consequences
		out.Consequences = &c
	}
	return out
}
