package engine

import (
	"fmt"

	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/rng"
)

// routeObservation generates the observations an activity yields, which
// depends on the scout's specialization.
func (t *tick) routeObservation(g *models.GameState, a models.Activity, r *rng.Stream, mult float64) {
	var handled bool
	switch g.Scout.Specialization {
	case models.SpecYouth:
		handled = t.youthObservation(g, a, r)
	case models.SpecData:
		handled = t.dataObservation(g, a, r)
	case models.SpecFirstTeam:
		handled = t.firstTeamObservation(g, a, r)
	case models.SpecRegional:
		handled = t.regionalObservation(g, a, r, mult)
	}
	if handled {
		return
	}
	switch a.Type {
	case models.ActWatchVideo:
		t.watchVideo(g, r)
	case models.ActTravel:
	default:
		t.e.log.Debug("activity has no effect for specialization", "type", a.Type, "specialization", g.Scout.Specialization)
	}
}

func (t *tick) watchVideo(g *models.GameState, r *rng.Stream) {
	p, ok := rng.Pick(r, seniorPlayers(*g))
	if !ok {
		return
	}
	ctx := t.observationContext(*g, "video", p.Country)
	t.observe(g, t.e.gen.GenerateObservation(r, p, g.Scout, ctx, g.ObservationsOf(p.ID)))
}

// venueCountry is the activity target when it names an active country.
func venueCountry(g models.GameState, a models.Activity) string {
	if contains(g.Countries, a.TargetID) {
		return a.TargetID
	}
	return g.Scout.HomeCountry
}

func (t *tick) youthObservation(g *models.GameState, a models.Activity, r *rng.Stream) bool {
	if a.Type != models.ActAcademyVisit && a.Type != models.ActYouthTournament {
		return false
	}
	t.res.VenueVisits++
	t.visitVenue(g, a, r, venueCountry(*g, a))
	return true
}

func (t *tick) visitVenue(g *models.GameState, a models.Activity, r *rng.Stream, country string) {
	pool := t.e.gen.YouthVenuePool(r, g.UnsignedYouth, a.Type, country)
	for _, p := range pool {
		ctx := t.observationContext(*g, string(a.Type), p.Country)
		obs := t.e.gen.ProcessVenueObservation(r, p, g.Scout, a.Type, ctx, g.ObservationsOf(p.ID))
		t.observe(g, obs)
		t.discover(g, p, string(a.Type))
	}
}

func (t *tick) dataObservation(g *models.GameState, a models.Activity, r *rng.Stream) bool {
	if a.Type != models.ActDatabaseQuery {
		return false
	}
	t.res.DatabaseQueries++
	n := 2 + int(g.Scout.Skills[models.SkillDataLiteracy]/5)
	picks := rng.Shuffle(r, seniorPlayers(*g))
	if len(picks) > n {
		picks = picks[:n]
	}
	for _, p := range picks {
		ctx := t.observationContext(*g, "database", p.Country)
		ctx.ConfidenceBonus += g.Scout.Skills[models.SkillDataLiteracy] / 40
		t.observe(g, t.e.gen.GenerateObservation(r, p, g.Scout, ctx, g.ObservationsOf(p.ID)))
	}
	return true
}

func (t *tick) firstTeamObservation(g *models.GameState, a models.Activity, r *rng.Stream) bool {
	switch a.Type {
	case models.ActTrialSession:
		t.res.TrialSessions++
		seen := 0
		for _, tr := range g.Trials {
			if tr.Resolved {
				continue
			}
			p, ok := g.Player(tr.PlayerID)
			if !ok {
				continue
			}
			ctx := t.observationContext(*g, "trial", p.Country)
			ctx.ConfidenceBonus += 0.1
			t.observe(g, t.e.gen.GenerateObservation(r, p, g.Scout, ctx, g.ObservationsOf(p.ID)))
			seen++
		}
		if seen == 0 {
			t.watchVideo(g, r)
		}
		return true
	case models.ActTrainingVisit:
		t.trainingVisit(g, a, r, g.Scout.HomeCountry)
		return true
	}
	return false
}

// trainingVisit watches two players at the target club, or at a random club
// in country.
func (t *tick) trainingVisit(g *models.GameState, a models.Activity, r *rng.Stream, country string) {
	club, ok := g.Club(a.TargetID)
	if !ok {
		var local []models.Club
		for _, c := range g.Clubs {
			if c.Country == country {
				local = append(local, c)
			}
		}
		if club, ok = rng.Pick(r, local); !ok {
			return
		}
	}
	var squad []models.Player
	for _, p := range g.Players {
		if p.ClubID == club.ID {
			squad = append(squad, p)
		}
	}
	picks := rng.Shuffle(r, squad)
	if len(picks) > 2 {
		picks = picks[:2]
	}
	for _, p := range picks {
		ctx := t.observationContext(*g, "training", p.Country)
		t.observe(g, t.e.gen.GenerateObservation(r, p, g.Scout, ctx, g.ObservationsOf(p.ID)))
	}
}

func (t *tick) regionalObservation(g *models.GameState, a models.Activity, r *rng.Stream, mult float64) bool {
	switch a.Type {
	case models.ActTrainingVisit, models.ActAcademyVisit:
		country := a.TargetID
		if !contains(g.Countries, country) {
			country = leastFamiliar(*g)
		}
		if a.Type == models.ActAcademyVisit {
			t.res.VenueVisits++
			t.visitVenue(g, a, r, country)
		} else {
			t.trainingVisit(g, a, r, country)
		}
		raiseFamiliarity(g, country, 3*mult)
		return true
	case models.ActTravel:
		if contains(g.Countries, a.TargetID) {
			raiseFamiliarity(g, a.TargetID, 8*mult)
		}
		return true
	}
	return false
}

func leastFamiliar(g models.GameState) string {
	best, level := g.Scout.HomeCountry, 101.0
	for _, f := range g.Familiarity {
		if f.Level < level {
			best, level = f.Country, f.Level
		}
	}
	return best
}

func raiseFamiliarity(g *models.GameState, country string, delta float64) {
	for i := range g.Familiarity {
		if g.Familiarity[i].Country == country {
			g.Familiarity[i].Level = models.Clamp(g.Familiarity[i].Level+delta, 0, 100)
			return
		}
	}
	g.Familiarity = append(g.Familiarity, models.Familiarity{Country: country, Level: models.Clamp(delta, 0, 100)})
}

// pitchPlacement proposes an unsigned youngster the scout has watched to a
// club. The answer comes the following week.
func (t *tick) pitchPlacement(g *models.GameState, a models.Activity, r *rng.Stream) {
	var target models.Player
	found := false
	for _, p := range g.UnsignedYouth {
		if (a.TargetID != "" && p.ID == a.TargetID) || (a.TargetID == "" && len(g.ObservationsOf(p.ID)) > 0 && !hasPendingPlacement(*g, p.ID)) {
			target, found = p, true
			break
		}
	}
	if !found || hasPendingPlacement(*g, target.ID) {
		return
	}
	club, ok := g.Club(g.Scout.CurrentClubID)
	if !ok {
		var local []models.Club
		for _, c := range g.Clubs {
			if c.Country == target.Country {
				local = append(local, c)
			}
		}
		if club, ok = rng.Pick(r, local); !ok {
			return
		}
	}
	g.Placements = append(g.Placements, models.Placement{
		ID:       g.NextID("placement"),
		PlayerID: target.ID,
		ClubID:   club.ID,
		Week:     t.week,
		Season:   t.season,
	})
	t.res.PlacementsPitched++
}

func hasPendingPlacement(g models.GameState, playerID string) bool {
	for _, pl := range g.Placements {
		if pl.PlayerID == playerID && !pl.Resolved {
			return true
		}
	}
	return false
}

// resolvePlacements answers pitches made in earlier weeks.
func (t *tick) resolvePlacements(g *models.GameState) {
	wps := t.e.tuning.WeeksPerSeason
	for i := range g.Placements {
		pl := &g.Placements[i]
		if pl.Resolved || models.AbsoluteWeek(pl.Season, pl.Week, wps) >= t.abs {
			continue
		}
		pl.Resolved = true
		idx := -1
		for j, p := range g.UnsignedYouth {
			if p.ID == pl.PlayerID {
				idx = j
				break
			}
		}
		club, clubOK := g.Club(pl.ClubID)
		if idx < 0 || !clubOK {
			continue
		}
		p := g.UnsignedYouth[idx]
		r := t.stream("placement", pl.ID)
		if !r.Chance(models.Clamp(0.2+p.PotentialAbility/200+g.Scout.Reputation/200, 0, 0.95)) {
			t.message(g, models.MsgPlacement, club.Name+" passed on "+p.Name,
				"The academy staff were not convinced this time.", pl.ID, false)
			continue
		}
		pl.Accepted = true
		p.ClubID = club.ID
		g.UnsignedYouth = append(g.UnsignedYouth[:idx], g.UnsignedYouth[idx+1:]...)
		g.Players = append(g.Players, p)
		addIntake(g, club.ID, t.season)
		g.AdjustReputation(2)
		t.message(g, models.MsgPlacement, p.Name+" joins "+club.Name,
			fmt.Sprintf("Your pitch worked: %s signs academy terms.", p.Name), pl.ID, false)
	}
}

func addIntake(g *models.GameState, clubID string, season int) {
	for i := range g.AcademyIntakes {
		if g.AcademyIntakes[i].ClubID == clubID && g.AcademyIntakes[i].Season == season {
			g.AcademyIntakes[i].Count++
			return
		}
	}
	g.AcademyIntakes = append(g.AcademyIntakes, models.AcademyIntake{ClubID: clubID, Season: season, Count: 1})
}

// specializationWeekly runs the passive weekly systems of each path.
func specializationWeekly(t *tick, g models.GameState) (models.GameState, error) {
	switch g.Scout.Specialization {
	case models.SpecFirstTeam:
		t.resolveTrials(&g)
		t.matchDirectives(&g)
	case models.SpecData:
		t.analystReports(&g)
		t.makePrediction(&g)
		t.resolvePredictions(&g, false)
	case models.SpecRegional:
		t.decayFamiliarity(&g)
	}
	return g, nil
}

const trialWeeks = 2

func (t *tick) resolveTrials(g *models.GameState) {
	for i := range g.Trials {
		tr := &g.Trials[i]
		if tr.Resolved || tr.DueAbs > t.abs {
			continue
		}
		tr.Resolved = true
		idx := g.PlayerIndex(tr.PlayerID)
		if idx < 0 {
			continue
		}
		p := &g.Players[idx]
		r := t.stream("trial", tr.ID)
		if g.Scout.CurrentClubID == "" || !r.Chance(models.Clamp(p.CurrentAbility/100+0.1, 0, 0.9)) {
			t.message(g, models.MsgTrial, p.Name+" trial ends without a deal", "", tr.ID, false)
			continue
		}
		tr.Signed = true
		from := p.ClubID
		p.ClubID = g.Scout.CurrentClubID
		g.Transfers = append(g.Transfers, models.TransferRecord{
			ID: g.NextID("transfer"), PlayerID: p.ID, FromClubID: from, ToClubID: p.ClubID,
			Fee: p.MarketValue, Week: t.week, Season: t.season,
		})
		for j := range g.Reports {
			if g.Reports[j].PlayerID == p.ID && g.Reports[j].Recommendation == models.RecommendSign {
				g.Reports[j].Successful = true
			}
		}
		if g.Manager != nil {
			g.Manager.Trust = models.Clamp(g.Manager.Trust+5, 0, 100)
		}
		t.message(g, models.MsgTrial, p.Name+" signs after a successful trial", "", tr.ID, false)
	}
}

// matchDirectives pairs open directives with players the scout recommended
// and starts a trial for the match.
func (t *tick) matchDirectives(g *models.GameState) {
	for i := range g.Directives {
		d := &g.Directives[i]
		if d.Fulfilled || d.Season != t.season {
			continue
		}
		for _, rep := range g.Reports {
			if rep.Recommendation != models.RecommendSign || hasTrial(*g, rep.PlayerID) {
				continue
			}
			p, ok := g.Player(rep.PlayerID)
			if !ok || p.Position != d.Position || p.Age > d.MaxAge || p.CurrentAbility < d.MinAbility {
				continue
			}
			d.Fulfilled = true
			d.MatchedPlayerID = p.ID
			tr := models.Trial{ID: g.NextID("trial"), PlayerID: p.ID, Season: t.season, DueAbs: t.abs + trialWeeks}
			g.Trials = append(g.Trials, tr)
			if g.Manager != nil {
				g.Manager.Trust = models.Clamp(g.Manager.Trust+3, 0, 100)
			}
			t.message(g, models.MsgTrial, "Trial arranged for "+p.Name,
				fmt.Sprintf("The manager wants a closer look at your %s recommendation.", d.Position), tr.ID, false)
			break
		}
	}
}

func hasTrial(g models.GameState, playerID string) bool {
	for _, tr := range g.Trials {
		if tr.PlayerID == playerID {
			return true
		}
	}
	return false
}

// analystReports are the data scout's passive weekly output. They count as
// auto-generated reports and can discover players.
func (t *tick) analystReports(g *models.GameState) {
	r := t.stream("analyst")
	n := 1 + int(g.Scout.Skills[models.SkillDataLiteracy]/10)
	picks := rng.Shuffle(r, seniorPlayers(*g))
	if len(picks) > n {
		picks = picks[:n]
	}
	for _, p := range picks {
		rating := models.Clamp(p.CurrentAbility+r.Normal(0, 6), 1, 99)
		g.AnalystReports = append(g.AnalystReports, models.AnalystReport{
			ID: g.NextID("analyst"), PlayerID: p.ID, Week: t.week, Season: t.season, Rating: rating,
		})
		if rating >= 70 {
			t.discover(g, p, "analyst")
		}
	}
}

const (
	predictionEveryWeeks   = 4
	predictionHorizonWeeks = 12
)

func (t *tick) makePrediction(g *models.GameState) {
	if t.abs%predictionEveryWeeks != 0 {
		return
	}
	var young []models.Player
	for _, p := range seniorPlayers(*g) {
		if p.Age <= 23 {
			young = append(young, p)
		}
	}
	r := t.stream("prediction")
	p, ok := rng.Pick(r, young)
	if !ok {
		return
	}
	claim := "decline"
	if p.PotentialAbility-p.CurrentAbility+r.Normal(0, 5) > 8 {
		claim = "breakout"
	}
	g.Predictions = append(g.Predictions, models.Prediction{
		ID: g.NextID("prediction"), PlayerID: p.ID, Claim: claim, MadeSeason: t.season,
		ResolveAbs: t.abs + predictionHorizonWeeks, BaselineValue: p.MarketValue,
	})
}

// resolvePredictions settles due predictions; force settles every open one.
func (t *tick) resolvePredictions(g *models.GameState, force bool) {
	now := t.absNow(*g)
	for i := range g.Predictions {
		pr := &g.Predictions[i]
		if pr.Resolved || (!force && pr.ResolveAbs > now) {
			continue
		}
		pr.Resolved = true
		p, ok := g.Player(pr.PlayerID)
		if !ok {
			continue
		}
		switch pr.Claim {
		case "breakout":
			pr.Correct = p.MarketValue > pr.BaselineValue*1.05
		default:
			pr.Correct = p.MarketValue < pr.BaselineValue
		}
		delta, verdict := -1.0, "missed"
		if pr.Correct {
			delta, verdict = 2, "called it"
		}
		g.AdjustReputation(delta)
		t.message(g, models.MsgPrediction, fmt.Sprintf("Prediction on %s: you %s", p.Name, verdict), "", pr.ID, false)
	}
}

func (t *tick) decayFamiliarity(g *models.GameState) {
	visited := map[string]bool{}
	for _, c := range t.res.Traveled {
		visited[c] = true
	}
	for i := range g.Familiarity {
		f := &g.Familiarity[i]
		if f.Country == g.Scout.HomeCountry || visited[f.Country] {
			continue
		}
		f.Level = models.Clamp(f.Level-0.5, 0, 100)
	}
}
