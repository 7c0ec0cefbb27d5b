package engine

import (
	"fmt"

	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/rng"
)

// generateContacts occasionally grows the scout's network.
func generateContacts(t *tick, g models.GameState) (models.GameState, error) {
	every := max(t.e.tuning.ContactEveryWeeks, 1)
	if t.abs%every != 0 {
		return g, nil
	}
	r := t.stream("contact")
	if !r.Chance(t.e.tuning.ContactChance) {
		return g, nil
	}
	c := t.e.gen.GenerateContact(r, g.Scout, g.Countries)
	c.ID = g.NextID("contact")
	g.Contacts = append(g.Contacts, c)
	t.message(&g, models.MsgContact, "New contact: "+c.Name,
		fmt.Sprintf("You met %s, %s in %s.", c.Name, c.Role, c.Country), c.ID, false)
	return g, nil
}

const maxTransfersPerWeek = 3

// worldTick resolves cross-country transfers and the international
// assignment lifecycle.
func worldTick(t *tick, g models.GameState) (models.GameState, error) {
	if len(g.Countries) > 1 && g.TransferWindowOpen {
		t.crossCountryTransfers(&g)
	}
	t.assignments(&g)
	return g, nil
}

func (t *tick) crossCountryTransfers(g *models.GameState) {
	r := t.stream("transfers")
	p := t.e.tuning.TransferChance * (0.5 + g.Market.Temperature)
	moved := 0
	for i := range g.Players {
		if moved == maxTransfersPerWeek {
			return
		}
		pl := &g.Players[i]
		if pl.ClubID == "" || !r.Chance(p) {
			continue
		}
		var buyers []models.Club
		for _, c := range g.Clubs {
			if c.Country != pl.Country && c.Budget >= pl.MarketValue {
				buyers = append(buyers, c)
			}
		}
		buyer, ok := rng.Pick(r, buyers)
		if !ok {
			continue
		}
		fee := pl.MarketValue * (0.8 + 0.4*g.Market.Temperature)
		rec := models.TransferRecord{
			ID:           g.NextID("transfer"),
			PlayerID:     pl.ID,
			FromClubID:   pl.ClubID,
			ToClubID:     buyer.ID,
			Fee:          fee,
			Week:         t.week,
			Season:       t.season,
			CrossCountry: true,
		}
		adjustBudget(g, buyer.ID, -fee)
		adjustBudget(g, pl.ClubID, fee)
		pl.ClubID = buyer.ID
		g.Transfers = append(g.Transfers, rec)
		moved++
		if g.HasReportOn(pl.ID) {
			t.message(g, models.MsgTransfer, pl.Name+" moves to "+buyer.Name,
				fmt.Sprintf("A player you reported on moved abroad for %.0f.", fee), rec.ID, false)
		}
	}
}

func adjustBudget(g *models.GameState, clubID string, delta float64) {
	for i := range g.Clubs {
		if g.Clubs[i].ID == clubID {
			g.Clubs[i].Budget += delta
			return
		}
	}
}

func (t *tick) assignments(g *models.GameState) {
	traveled := map[string]bool{}
	for _, c := range t.res.Traveled {
		traveled[c] = true
	}
	for i := range g.Assignments {
		a := &g.Assignments[i]
		if a.Expired || a.Completed {
			continue
		}
		switch {
		case traveled[a.Country]:
			a.Completed = true
			g.AdjustReputation(2)
			raiseFamiliarity(g, a.Country, 5)
			g.SettleMessages(a.ID)
			t.message(g, models.MsgAssignment, "Assignment in "+a.Country+" completed", "", a.ID, false)
		case a.ExpiresAbs <= t.abs:
			a.Expired = true
			g.SettleMessages(a.ID)
			t.message(g, models.MsgAssignment, "Assignment in "+a.Country+" expired", "", a.ID, false)
		}
	}

	every := max(t.e.tuning.AssignmentEveryWeeks, 1)
	if t.abs%every != 0 {
		return
	}
	var abroad []string
	for _, c := range g.Countries {
		if c != g.Scout.HomeCountry {
			abroad = append(abroad, c)
		}
	}
	country, ok := rng.Pick(t.stream("assignment"), abroad)
	if !ok {
		return
	}
	a := models.Assignment{
		ID:         g.NextID("assignment"),
		Country:    country,
		OfferedAbs: t.abs,
		ExpiresAbs: t.abs + t.e.tuning.AssignmentLifetimeWeeks,
	}
	g.Assignments = append(g.Assignments, a)
	t.message(g, models.MsgAssignment, "International assignment: "+country,
		fmt.Sprintf("Travel to %s within %d weeks.", country, t.e.tuning.AssignmentLifetimeWeeks), a.ID, true)
}

// transferWindowUrgency warns ahead of window openings and closings.
func transferWindowUrgency(t *tick, g models.GameState) (models.GameState, error) {
	for _, w := range g.TransferWindows {
		switch {
		case t.week+1 == w.StartWeek:
			t.message(&g, models.MsgWindow, w.Name+" opens next week", "", w.ID, false)
		case t.week+t.e.tuning.TransferUrgencyWeeks == w.EndWeek:
			t.message(&g, models.MsgWindow, w.Name+fmt.Sprintf(" closes in %d weeks", t.e.tuning.TransferUrgencyWeeks),
				"Get your recommendations in before the deadline.", w.ID, false)
		}
	}
	return g, nil
}

const poachWarningProgress = 0.6

// rivalTick moves rival scouts towards players the scout is watching.
func rivalTick(t *tick, g models.GameState) (models.GameState, error) {
	candidates := observedPlayers(g)
	if len(candidates) == 0 {
		return g, nil
	}
	for i := range g.Rivals {
		rv := &g.Rivals[i]
		d := t.e.gen.RivalMove(t.stream("rival", rv.ID), *rv, candidates)
		if d.TargetPlayerID == "" {
			continue
		}
		p, ok := g.Player(d.TargetPlayerID)
		if !ok {
			continue
		}
		crossed := d.TargetPlayerID == rv.TargetPlayerID && rv.Progress < poachWarningProgress && d.Progress >= poachWarningProgress
		rv.TargetPlayerID, rv.Progress = d.TargetPlayerID, d.Progress
		if crossed && !d.Signed {
			t.message(&g, models.MsgPoachWarning, rv.Name+" is circling "+p.Name,
				"A rival scout is close to securing a player you have been watching.", p.ID, false)
		}
		if !d.Signed {
			continue
		}
		rv.TargetPlayerID, rv.Progress = "", 0
		idx := g.PlayerIndex(p.ID)
		if idx < 0 || g.Players[idx].ClubID == rv.ClubID {
			continue
		}
		from := g.Players[idx].ClubID
		g.Players[idx].ClubID = rv.ClubID
		rec := models.TransferRecord{
			ID: g.NextID("transfer"), PlayerID: p.ID, FromClubID: from, ToClubID: rv.ClubID,
			Fee: p.MarketValue, Week: t.week, Season: t.season,
		}
		if club, ok := g.Club(rv.ClubID); ok {
			rec.CrossCountry = club.Country != p.Country
		}
		g.Transfers = append(g.Transfers, rec)
		t.message(&g, models.MsgPoachWarning, rv.Name+" signed "+p.Name,
			"A rival beat you to it.", p.ID, false)
	}
	return g, nil
}
