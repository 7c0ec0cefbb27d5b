package engine

import (
	"fmt"

	"github.com/tatianab/scout-career/internal/models"
)

// seasonStep is one state of the season transition, run in order.
type seasonStep struct {
	name string
	run  func(t *tick, g *models.GameState)
}

var seasonSteps = []seasonStep{
	{"finalize_discoveries", finalizeDiscoveries},
	{"performance_review", performanceReview},
	{"reputation", applyReviewReputation},
	{"career_tier", advanceCareerTier},
	{"job_offers", jobOffers},
	{"retro_scoring", retroScoreReports},
	{"fixtures", regenerateFixtures},
	{"calendar", regenerateCalendar},
	{"youth", regenerateYouth},
	{"specialization", seasonSpecialization},
}

// seasonTransition runs once, on the tick that crossed a season boundary.
func seasonTransition(t *tick, g models.GameState) (models.GameState, error) {
	if !t.res.SeasonBoundary {
		return g, nil
	}
	for _, st := range seasonSteps {
		st.run(t, &g)
	}
	t.e.log.Info("season transition", "season", t.season, "next", g.CurrentSeason, "outcome", t.res.Review.Outcome)
	return g, nil
}

func finalizeDiscoveries(t *tick, g *models.GameState) {
	for i := range g.Discoveries {
		if g.Discoveries[i].Season == t.season {
			g.Discoveries[i].Finalized = true
		}
	}
}

func performanceReview(t *tick, g *models.GameState) {
	rv := models.PerformanceReview{Season: t.season}
	total := 0.0
	for _, r := range g.Reports {
		if r.Season != t.season {
			continue
		}
		rv.ReportsSubmitted++
		total += r.Quality
		if r.Successful {
			rv.SuccessfulRecommendations++
		}
	}
	if rv.ReportsSubmitted > 0 {
		rv.AverageQuality = total / float64(rv.ReportsSubmitted)
	}
	tn := t.e.tuning
	switch {
	case rv.ReportsSubmitted >= tn.PromotionReports && rv.AverageQuality >= tn.PromotionQuality:
		rv.Outcome, rv.ReputationDelta = models.OutcomePromoted, 5
	case rv.ReportsSubmitted < tn.DemotionReports:
		rv.Outcome, rv.ReputationDelta = models.OutcomeDemoted, -5
	default:
		rv.Outcome, rv.ReputationDelta = models.OutcomeRetained, 1
	}
	g.Reviews = append(g.Reviews, rv)
	t.res.Review = &rv
	t.message(g, models.MsgReview, fmt.Sprintf("Season %d review: %s", t.season, rv.Outcome),
		fmt.Sprintf("%d reports, average quality %.0f, %d successful recommendations.",
			rv.ReportsSubmitted, rv.AverageQuality, rv.SuccessfulRecommendations), "", false)
}

func applyReviewReputation(t *tick, g *models.GameState) {
	g.AdjustReputation(t.res.Review.ReputationDelta)
}

func advanceCareerTier(t *tick, g *models.GameState) {
	if t.res.Review.Outcome != models.OutcomePromoted || g.Scout.CareerPath != models.PathClub {
		return
	}
	if g.Scout.CareerTier >= t.e.tuning.MaxCareerTier {
		return
	}
	g.Scout.CareerTier++
	t.res.Promoted = true
}

func jobOffers(t *tick, g *models.GameState) {
	kept := g.JobOffers[:0]
	for _, o := range g.JobOffers {
		if o.ExpiresSeason >= g.CurrentSeason {
			kept = append(kept, o)
			continue
		}
		g.SettleMessages(o.ID)
	}
	g.JobOffers = kept
	offers := t.e.gen.GenerateJobOffers(t.stream("job-offers"), g.Clubs, g.Scout.CurrentClubID, *t.res.Review, g.Scout.CareerTier)
	for _, o := range offers {
		g.JobOffers = append(g.JobOffers, o)
		club, _ := g.Club(o.ClubID)
		t.message(g, models.MsgJobOffer, "Job offer from "+club.Name,
			fmt.Sprintf("Tier %d, salary %.0f. Expires after season %d.", o.Tier, o.Salary, o.ExpiresSeason), o.ID, true)
	}
}

// retroScoreReports grades reports on players who moved at least
// RetroScoreMinSeasons seasons after the report was written.
func retroScoreReports(t *tick, g *models.GameState) {
	for i := range g.Reports {
		rep := &g.Reports[i]
		if rep.RetroScore != nil {
			continue
		}
		moved := false
		for _, tr := range g.Transfers {
			if tr.PlayerID == rep.PlayerID && tr.Season-rep.Season >= t.e.tuning.RetroScoreMinSeasons {
				moved = true
				break
			}
		}
		if !moved {
			continue
		}
		p, ok := g.Player(rep.PlayerID)
		if !ok {
			continue
		}
		score := t.e.gen.ScoreReport(*rep, p, 0)
		rep.RetroScore = &score
		if score >= 60 && rep.Recommendation == models.RecommendSign {
			rep.Successful = true
		}
	}
}

// regenerateFixtures replaces primary-league fixtures and keeps the rest.
func regenerateFixtures(t *tick, g *models.GameState) {
	primary := map[string]bool{}
	for _, l := range g.Leagues {
		if !l.Secondary {
			primary[l.ID] = true
		}
	}
	var kept []models.Fixture
	for _, f := range g.Fixtures {
		if !primary[f.LeagueID] {
			kept = append(kept, f)
		}
	}
	for _, l := range g.Leagues {
		if !primary[l.ID] {
			continue
		}
		kept = append(kept, t.e.gen.GenerateFixtures(t.stream("fixtures", l.ID), l, g.Clubs, g.CurrentSeason, t.e.tuning.WeeksPerSeason)...)
	}
	g.Fixtures = kept
	g.PlayedFixtures = []string{}
}

func regenerateCalendar(t *tick, g *models.GameState) {
	g.SeasonEvents, g.TransferWindows = t.e.gen.SeasonCalendar(t.stream("calendar"), g.CurrentSeason, t.e.tuning.WeeksPerSeason)
	g.TransferWindowOpen = windowOpen(*g)
}

const youthLeaveAge = 19

// regenerateYouth ages the pool, releases those too old for it, tops it up
// per active country and rolls academy intakes.
func regenerateYouth(t *tick, g *models.GameState) {
	for i := range g.Players {
		g.Players[i].Age++
	}
	var pool []models.Player
	for _, p := range g.UnsignedYouth {
		p.Age++
		if p.Age < youthLeaveAge {
			pool = append(pool, p)
		}
	}
	for _, country := range g.Countries {
		pool = append(pool, t.e.gen.GenerateYouth(t.stream("youth", country), country, g.CurrentSeason, t.e.tuning.YouthPoolPerCountry)...)
	}
	g.UnsignedYouth = pool

	for _, c := range g.Clubs {
		if !contains(g.Countries, c.Country) {
			continue
		}
		r := t.stream("intake", c.ID)
		g.AcademyIntakes = append(g.AcademyIntakes, models.AcademyIntake{ClubID: c.ID, Season: g.CurrentSeason, Count: r.Int(1, 4)})
	}
}

func seasonSpecialization(t *tick, g *models.GameState) {
	switch g.Scout.Specialization {
	case models.SpecFirstTeam:
		var kept []models.Directive
		for _, d := range g.Directives {
			if d.Fulfilled {
				kept = append(kept, d)
			}
		}
		g.Directives = append(kept, t.e.gen.GenerateDirectives(t.stream("directives"), g.CurrentSeason)...)
		for i := range g.Transfers {
			tr := &g.Transfers[i]
			if tr.Outcome != "" {
				continue
			}
			if p, ok := g.Player(tr.PlayerID); ok && p.CurrentAbility >= 65 {
				tr.Outcome = "hit"
			} else {
				tr.Outcome = "miss"
			}
		}
	case models.SpecData:
		t.resolvePredictions(g, true)
		offer := t.e.gen.GenerateAnalystCandidate(t.stream("analyst-offer"), g.CurrentSeason)
		g.AnalystOffer = &offer
		t.message(g, models.MsgAnalyst, "Analyst available: "+offer.Name,
			fmt.Sprintf("Skill %.0f, wage %.0f.", offer.Skill, offer.Wage), offer.ID, false)
	}
}
