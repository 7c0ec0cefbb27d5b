package engine

import (
	"errors"
	"fmt"

	"github.com/tatianab/scout-career/internal/content"
	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/rng"
)

// ErrUnknownFixture is returned by CompleteMatch for ids not in the world.
var ErrUnknownFixture = errors.New("unknown fixture")

// PendingFixtures lists, in schedule order, the target fixtures of attend
// match activities that have not been played yet. Targets that name no
// fixture in the world are skipped.
func PendingFixtures(g models.GameState) []string {
	var out []string
	for _, a := range g.Schedule.Ordered() {
		if a.Type != models.ActAttendMatch || a.TargetID == "" {
			continue
		}
		if _, ok := g.Fixture(a.TargetID); !ok {
			continue
		}
		if !g.FixturePlayed(a.TargetID) {
			out = append(out, a.TargetID)
		}
	}
	return out
}

// gate reports the fixture the tick must wait for. Scouts who do not attend
// first-team fixtures are never gated.
func (e *Engine) gate(g models.GameState) (string, bool) {
	if !g.Scout.Specialization.CanAttendFirstTeam() {
		return "", false
	}
	pending := PendingFixtures(g)
	if len(pending) == 0 {
		return "", false
	}
	return pending[0], true
}

// matchSample is how many players the live flow gets a look at.
const matchSample = 3

// CompleteMatch finishes the interactive match flow: it observes a few
// players from both sides, marks the fixture played and clears ActiveMatch.
func (e *Engine) CompleteMatch(g models.GameState, fixtureID string) (models.GameState, error) {
	f, ok := g.Fixture(fixtureID)
	if !ok {
		return g, fmt.Errorf("complete match %s: %w", fixtureID, ErrUnknownFixture)
	}
	out := g.Clone()
	if out.FixturePlayed(fixtureID) {
		out.ActiveMatch = nil
		return out, nil
	}

	var squad []models.Player
	for _, p := range out.Players {
		if p.ClubID == f.HomeClubID || p.ClubID == f.AwayClubID {
			squad = append(squad, p)
		}
	}
	r := rngFor(out, "match", fixtureID)
	picks := rng.Shuffle(r, squad)
	if len(picks) > matchSample {
		picks = picks[:matchSample]
	}
	for _, p := range picks {
		obs := e.gen.GenerateObservation(r, p, out.Scout, content.ObservationContext{
			Source:      "match",
			Week:        out.CurrentWeek,
			Season:      out.CurrentSeason,
			Familiarity: familiarity(out, p.Country),
		}, out.ObservationsOf(p.ID))
		obs.ID = out.NextID("obs")
		out.Observations = append(out.Observations, obs)
	}
	out.PlayedFixtures = append(out.PlayedFixtures, fixtureID)
	out.ActiveMatch = nil
	e.log.Info("match completed", "fixture", fixtureID, "observed", len(picks))
	return out, nil
}
