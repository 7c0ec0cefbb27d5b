package content

import (
	"fmt"

	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/rng"
)

var contactRoles = []string{"agent", "journalist", "academy coach", "club secretary", "former player"}

// GenerateContact creates a new acquaintance in one of the active countries.
func (Default) GenerateContact(r *rng.Stream, scout models.Scout, countries []string) models.Contact {
	country, ok := rng.Pick(r, countries)
	if !ok {
		country = scout.HomeCountry
	}
	role, _ := rng.Pick(r, contactRoles)
	return models.Contact{
		Name:         personName(r),
		Role:         role,
		Country:      country,
		Relationship: models.Clamp(20+r.Float(0, 20)+scout.Skills[models.SkillNetworking], 0, 100),
	}
}

// GenerateFixtures builds a double round-robin and repeats it until every
// week of the season has a round.
func (Default) GenerateFixtures(r *rng.Stream, league models.League, clubs []models.Club, season, weeks int) []models.Fixture {
	var ids []string
	for _, c := range clubs {
		if c.LeagueID == league.ID {
			ids = append(ids, c.ID)
		}
	}
	if len(ids) < 2 {
		return nil
	}
	ids = rng.Shuffle(r, ids)
	if len(ids)%2 == 1 {
		ids = append(ids, "")
	}
	n := len(ids)
	rounds := make([][][2]string, 0, 2*(n-1))
	rot := append([]string(nil), ids...)
	for round := 0; round < n-1; round++ {
		var pairs [][2]string
		for i := 0; i < n/2; i++ {
			home, away := rot[i], rot[n-1-i]
			if round%2 == 1 {
				home, away = away, home
			}
			pairs = append(pairs, [2]string{home, away})
		}
		rounds = append(rounds, pairs)
		// Circle method: keep the first club fixed, rotate the rest.
		last := rot[n-1]
		copy(rot[2:], rot[1:n-1])
		rot[1] = last
	}
	for i := 0; i < n-1; i++ {
		var rev [][2]string
		for _, p := range rounds[i] {
			rev = append(rev, [2]string{p[1], p[0]})
		}
		rounds = append(rounds, rev)
	}

	var out []models.Fixture
	for week := 1; week <= weeks; week++ {
		k := 0
		for _, p := range rounds[(week-1)%len(rounds)] {
			if p[0] == "" || p[1] == "" {
				continue
			}
			k++
			out = append(out, models.Fixture{
				ID:         fmt.Sprintf("F-%s-S%d-W%d-%d", league.ID, season, week, k),
				LeagueID:   league.ID,
				HomeClubID: p[0],
				AwayClubID: p[1],
				Week:       week,
				Season:     season,
			})
		}
	}
	return out
}

// SeasonCalendar returns the season's marker events and its two transfer
// windows: one at the start and one at mid-season.
func (Default) SeasonCalendar(r *rng.Stream, season, weeks int) ([]models.SeasonEvent, []models.TransferWindow) {
	mid := weeks / 2
	windows := []models.TransferWindow{
		{ID: fmt.Sprintf("TW-S%d-summer", season), Name: "Summer window", StartWeek: 1, EndWeek: 4},
		{ID: fmt.Sprintf("TW-S%d-winter", season), Name: "Winter window", StartWeek: mid, EndWeek: mid + 3},
	}
	events := []models.SeasonEvent{
		{ID: fmt.Sprintf("SE-S%d-draw", season), Name: "Cup draw", Week: r.Int(3, 8)},
		{ID: fmt.Sprintf("SE-S%d-derby", season), Name: "Derby week", Week: r.Int(mid-4, mid+4)},
		{ID: fmt.Sprintf("SE-S%d-awards", season), Name: "Awards night", Week: weeks},
	}
	return events, windows
}

// GenerateDirectives returns the manager's wishlist for the season.
func (Default) GenerateDirectives(r *rng.Stream, season int) []models.Directive {
	n := r.Int(1, 3)
	positions := rng.Shuffle(r, Positions)
	out := make([]models.Directive, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Directive{
			ID:         fmt.Sprintf("D-S%d-%d", season, i+1),
			Season:     season,
			Position:   positions[i],
			MaxAge:     r.Int(21, 29),
			MinAbility: float64(r.Int(55, 75)),
		})
	}
	return out
}

// GenerateAnalystCandidate offers a data analyst for hire.
func (Default) GenerateAnalystCandidate(r *rng.Stream, season int) models.AnalystCandidate {
	skill := r.Float(5, 15)
	return models.AnalystCandidate{
		ID:     fmt.Sprintf("AC-S%d", season),
		Name:   personName(r),
		Skill:  skill,
		Wage:   800 + skill*120,
		Season: season,
	}
}

// GenerateJobOffers produces offers from other clubs; better reviews bring
// more and better offers.
func (Default) GenerateJobOffers(r *rng.Stream, clubs []models.Club, currentClubID string, review models.PerformanceReview, tier int) []models.JobOffer {
	var candidates []models.Club
	for _, c := range clubs {
		if c.ID != currentClubID {
			candidates = append(candidates, c)
		}
	}
	n := 0
	offerTier := tier
	switch review.Outcome {
	case models.OutcomePromoted:
		n = 2
		offerTier = tier + 1
	case models.OutcomeRetained:
		if r.Chance(0.5) {
			n = 1
		}
	case models.OutcomeDemoted:
		if r.Chance(0.3) {
			n = 1
			offerTier = max(1, tier-1)
		}
	}
	candidates = rng.Shuffle(r, candidates)
	if n > len(candidates) {
		n = len(candidates)
	}
	out := make([]models.JobOffer, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.JobOffer{
			ID:            fmt.Sprintf("JO-S%d-%s", review.Season, candidates[i].ID),
			ClubID:        candidates[i].ID,
			Tier:          offerTier,
			Salary:        float64(1500+offerTier*750) * r.Float(0.9, 1.2),
			ExpiresSeason: review.Season + 1,
		})
	}
	return out
}

// RivalMove advances or retargets a rival scout.
func (Default) RivalMove(r *rng.Stream, rival models.RivalScout, candidates []models.Player) RivalDecision {
	d := RivalDecision{TargetPlayerID: rival.TargetPlayerID, Progress: rival.Progress}
	if d.TargetPlayerID == "" || !containsPlayer(candidates, d.TargetPlayerID) {
		p, ok := rng.Pick(r, candidates)
		if !ok {
			return RivalDecision{}
		}
		d.TargetPlayerID = p.ID
		d.Progress = 0
	}
	d.Progress = models.Clamp(d.Progress+r.Float(0.05, 0.2)*(0.5+rival.Aggression), 0, 1)
	if d.Progress >= 1 {
		d.Signed = true
	}
	return d
}

func containsPlayer(ps []models.Player, id string) bool {
	for _, p := range ps {
		if p.ID == id {
			return true
		}
	}
	return false
}
