package engine

import (
	"sort"

	"github.com/tatianab/scout-career/internal/content"
	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/rng"
)

// rngFor keys a stream on the state's current week, for flows that run
// outside a tick.
func rngFor(g models.GameState, purpose string, entityIDs ...string) *rng.Stream {
	return rng.For(g.WorldSeed, purpose, g.CurrentWeek, g.CurrentSeason, entityIDs...)
}

func familiarity(g models.GameState, country string) float64 {
	for _, f := range g.Familiarity {
		if f.Country == country {
			return f.Level
		}
	}
	return 0
}

func (t *tick) isWonderkid(p models.Player) bool {
	return p.PotentialAbility >= t.e.tuning.WonderkidPotential && p.Age <= t.e.tuning.WonderkidMaxAge
}

// observe stores an observation generated this tick.
func (t *tick) observe(g *models.GameState, o models.Observation) {
	o.ID = g.NextID("obs")
	g.Observations = append(g.Observations, o)
	t.res.ObservationsGenerated++
}

// discover records a first contact with p. It is the only path that appends
// discovery records during a tick.
func (t *tick) discover(g *models.GameState, p models.Player, source string) bool {
	if g.HasDiscovered(p.ID) {
		return false
	}
	rec := models.DiscoveryRecord{
		ID:        g.NextID("discovery"),
		PlayerID:  p.ID,
		Week:      t.week,
		Season:    t.season,
		Source:    source,
		Wonderkid: t.isWonderkid(p),
	}
	if !g.RecordDiscovery(rec) {
		return false
	}
	t.res.NewDiscoveries = append(t.res.NewDiscoveries, rec.ID)
	if rec.Wonderkid {
		t.res.Wonderkids = append(t.res.Wonderkids, p.ID)
		t.message(g, models.MsgDiscovery, "Wonderkid spotted: "+p.Name,
			"Your notes suggest a rare talent. Keep a close eye on this one.", p.ID, false)
	}
	return true
}

func (t *tick) observationContext(g models.GameState, source, country string) content.ObservationContext {
	return content.ObservationContext{
		Source:          source,
		Week:            t.week,
		Season:          t.season,
		ConfidenceBonus: t.res.ConfidenceBonus,
		Familiarity:     familiarity(g, country),
	}
}

// seniorPlayers returns signed players from the given countries, or from
// every country when none are given.
func seniorPlayers(g models.GameState, countries ...string) []models.Player {
	var out []models.Player
	for _, p := range g.Players {
		if p.ClubID == "" {
			continue
		}
		if len(countries) > 0 && !contains(countries, p.Country) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// observedPlayers returns the distinct players the scout has watched, by id.
func observedPlayers(g models.GameState) []models.Player {
	seen := map[string]bool{}
	var out []models.Player
	for _, o := range g.Observations {
		if seen[o.PlayerID] {
			continue
		}
		seen[o.PlayerID] = true
		if p, ok := g.Player(o.PlayerID); ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func (t *tick) absNow(g models.GameState) int {
	return models.AbsoluteWeek(g.CurrentSeason, g.CurrentWeek, t.e.tuning.WeeksPerSeason)
}
