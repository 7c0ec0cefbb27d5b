package engine

import (
	"fmt"

	"github.com/tatianab/scout-career/internal/content"
	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/rng"
)

// economyTick runs the money side of the week. Every part is guarded on the
// state it needs: club scouts without finances only see the market move.
func economyTick(t *tick, g models.GameState) (models.GameState, error) {
	t.marketTick(&g)
	t.agencyTick(&g)
	if g.Scout.CareerPath == models.PathIndependent {
		t.listReports(&g)
		t.marketplace(&g)
		t.retainers(&g)
		t.consulting(&g)
		t.independentTier(&g)
	}
	t.payday(&g)
	return g, nil
}

var economicEvents = []models.EconomicEvent{
	{Kind: "tv_deal", Modifier: 0.15},
	{Kind: "financial_crash", Modifier: -0.2},
	{Kind: "investor_boom", Modifier: 0.1},
}

func (t *tick) marketTick(g *models.GameState) {
	r := t.stream("market")
	m := &g.Market
	m.Temperature = models.Clamp(m.Temperature+(0.5-m.Temperature)*0.1+r.Normal(0, 0.03), 0, 1)
	if m.Event != nil {
		if t.abs >= m.Event.EndAbs {
			t.message(g, models.MsgMarket, "Market settles after "+m.Event.Kind, "", m.Event.ID, false)
			m.Event = nil
		}
		return
	}
	if !r.Chance(0.03) {
		return
	}
	ev, _ := rng.Pick(r, economicEvents)
	ev.ID = g.NextID("econ")
	ev.StartAbs = t.abs
	ev.EndAbs = t.abs + r.Int(4, 8)
	m.Event = &ev
	t.message(g, models.MsgMarket, "Market news: "+ev.Kind,
		fmt.Sprintf("Expect prices to move %+.0f%% for a while.", ev.Modifier*100), ev.ID, false)
}

// agencyTick lets staff scouts file reports for review.
func (t *tick) agencyTick(g *models.GameState) {
	if g.Agency == nil {
		return
	}
	for _, emp := range g.Agency.Employees {
		if emp.Role != "scout" {
			continue
		}
		r := t.stream("agency", emp.ID)
		if !r.Chance(models.Clamp(emp.Skill/20, 0, 1)) {
			continue
		}
		p, ok := rng.Pick(r, seniorPlayers(*g))
		if !ok {
			continue
		}
		g.NPCReports = append(g.NPCReports, models.NPCReport{
			ID: g.NextID("npc"), PlayerID: p.ID, AuthorID: emp.ID,
			Quality: models.Clamp(40+emp.Skill*2+r.Normal(0, 8), 0, 100),
			Week:    t.week, Season: t.season,
		})
	}
}

// listReports puts this week's reports on the marketplace.
func (t *tick) listReports(g *models.GameState) {
	for _, id := range t.res.NewReports {
		for _, rep := range g.Reports {
			if rep.ID != id {
				continue
			}
			g.Listings = append(g.Listings, models.Listing{
				ID: g.NextID("listing"), ReportID: rep.ID, PlayerID: rep.PlayerID,
				AskingPrice: 500 + rep.Quality*20, ListedAbs: t.abs,
			})
		}
	}
}

func (t *tick) marketplace(g *models.GameState) {
	for i := range g.Listings {
		l := &g.Listings[i]
		if l.Sold || l.ListedAbs >= t.abs {
			continue
		}
		r := t.stream("negotiation", l.ID)
		buyer, ok := rng.Pick(r, g.Clubs)
		if !ok {
			return
		}
		offer := l.AskingPrice * r.Float(0.7, 1.1)
		out := t.e.gen.ResolveNegotiationStep(r, *l, offer, g.Market)
		if !out.Accepted {
			continue
		}
		l.Sold = true
		l.BuyerClubID = buyer.ID
		t.book(g, "report sale", out.Price)
		t.message(g, models.MsgFinance, "Report sold to "+buyer.Name,
			fmt.Sprintf("Sold for %.0f.", out.Price), l.ID, false)
	}
}

func (t *tick) retainers(g *models.GameState) {
	active := false
	for i := range g.Retainers {
		rt := &g.Retainers[i]
		if !rt.Active {
			continue
		}
		if t.abs >= rt.EndAbs {
			rt.Active = false
			t.message(g, models.MsgFinance, "Retainer ended", "", rt.ID, false)
			continue
		}
		active = true
	}
	if active || g.Scout.Reputation < 40 {
		return
	}
	r := t.stream("retainer")
	if !r.Chance(0.05) {
		return
	}
	club, ok := rng.Pick(r, g.Clubs)
	if !ok {
		return
	}
	rt := models.Retainer{
		ID: g.NextID("retainer"), ClubID: club.ID, MonthlyFee: 800 + g.Scout.Reputation*10,
		EndAbs: t.abs + 6*t.e.tuning.WeeksPerMonth, Active: true,
	}
	g.Retainers = append(g.Retainers, rt)
	t.message(g, models.MsgFinance, club.Name+" puts you on retainer",
		fmt.Sprintf("%.0f per month for six months.", rt.MonthlyFee), rt.ID, false)
}

func (t *tick) consulting(g *models.GameState) {
	for i := range g.Consulting {
		c := &g.Consulting[i]
		if c.Completed || c.DueAbs > t.abs {
			continue
		}
		c.Completed = true
		t.book(g, "consulting", c.Fee)
		t.message(g, models.MsgFinance, "Consulting fee paid", fmt.Sprintf("%.0f received.", c.Fee), c.ID, false)
	}
	if g.Scout.IndependentTier < 2 {
		return
	}
	r := t.stream("consulting")
	if !r.Chance(0.04) {
		return
	}
	club, ok := rng.Pick(r, g.Clubs)
	if !ok {
		return
	}
	c := models.ConsultingContract{
		ID: g.NextID("consulting"), ClubID: club.ID, Fee: 1500 + r.Float(0, 1500), DueAbs: t.abs + r.Int(2, 6),
	}
	g.Consulting = append(g.Consulting, c)
	t.message(g, models.MsgFinance, "Consulting job from "+club.Name, "", c.ID, false)
}

// independentTier promotes independent scouts through their own ladder.
// The second tier founds an agency.
func (t *tick) independentTier(g *models.GameState) {
	tier := g.Scout.IndependentTier
	if tier < 1 || tier >= t.e.tuning.MaxIndependentTier {
		return
	}
	if g.Scout.Reputation < float64(25*tier) || len(g.Reports) < 5*tier {
		return
	}
	g.Scout.IndependentTier++
	t.res.Promoted = true
	t.message(g, models.MsgFinance, fmt.Sprintf("Your practice grows: tier %d", g.Scout.IndependentTier), "", "", false)
	if g.Agency == nil && g.Scout.IndependentTier >= 2 {
		r := t.stream("agency-founding")
		g.Agency = &models.Agency{
			Name: g.Scout.Name + " Scouting",
			Employees: []models.Employee{{
				ID: g.NextID("employee"), Name: "Junior scout", Role: "scout", Wage: 900, Skill: r.Float(6, 12),
			}},
		}
	}
}

// payday books salary, expenses, retainers and wages once a month.
func (t *tick) payday(g *models.GameState) {
	if g.Finances == nil || t.abs%max(t.e.tuning.WeeksPerMonth, 1) != 0 {
		return
	}
	entries := []models.LedgerEntry{
		{Label: "salary", Amount: g.Finances.MonthlySalary},
		{Label: "expenses", Amount: -g.Finances.MonthlyExpenses},
	}
	for _, rt := range g.Retainers {
		if rt.Active {
			entries = append(entries, models.LedgerEntry{Label: "retainer", Amount: rt.MonthlyFee})
		}
	}
	if g.Agency != nil {
		for _, emp := range g.Agency.Employees {
			entries = append(entries, models.LedgerEntry{Label: "wage " + emp.Name, Amount: -emp.Wage})
		}
	}
	for _, e := range entries {
		if e.Amount > 0 {
			t.res.Income += e.Amount
		} else {
			t.res.Expenses -= e.Amount
		}
	}
	f := t.e.gen.FinanceTick(*g.Finances, content.LedgerInput{Week: t.week, Season: t.season, Entries: entries})
	g.Finances = &f
	t.res.PayWeek = true
}

// book records a one-off amount when the scout keeps a ledger.
func (t *tick) book(g *models.GameState, label string, amount float64) {
	if g.Finances == nil {
		return
	}
	f := t.e.gen.FinanceTick(*g.Finances, content.LedgerInput{
		Week: t.week, Season: t.season,
		Entries: []models.LedgerEntry{{Label: label, Amount: amount}},
	})
	g.Finances = &f
	if amount > 0 {
		t.res.Income += amount
	} else {
		t.res.Expenses -= amount
	}
}
