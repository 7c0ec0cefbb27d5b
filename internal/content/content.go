// Package content holds the generators the weekly engine consumes: pure
// functions that take a slice of state plus an rng.Stream and return a value.
// The engine merges their results back into the game state; generators never
// see or modify the aggregate themselves.
package content

import (
	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/rng"
)

// QualityRoll is the outcome of rolling how well an activity went.
type QualityRoll struct {
	Tier              string  `json:"tier" yaml:"tier"`
	Multiplier        float64 `json:"multiplier" yaml:"multiplier"`
	DiscoveryModifier float64 `json:"discovery_modifier" yaml:"discovery_modifier"`
	Narrative         string  `json:"narrative" yaml:"narrative"`
}

// ObservationContext describes where and how a player was watched.
type ObservationContext struct {
	Source          string
	Week            int
	Season          int
	ConfidenceBonus float64
	Familiarity     float64
}

// NegotiationOutcome is one step of a marketplace negotiation.
type NegotiationOutcome struct {
	Accepted bool
	Price    float64
}

// RivalDecision is what a rival scout did this week.
type RivalDecision struct {
	TargetPlayerID string
	Progress       float64
	Signed         bool
}

// LedgerInput is everything the finance tick needs to book a period.
type LedgerInput struct {
	Week    int
	Season  int
	Entries []models.LedgerEntry
}

// StoryStep is one beat of a storyline template.
type StoryStep struct {
	Title        string
	Body         string
	Choices      []models.NarrativeChoice
	Consequences *models.Consequences
}

// StorylineTemplate is a multi-step narrative chain.
type StorylineTemplate struct {
	ID              string
	Specializations []models.Specialization
	Steps           []StoryStep
}

// Allows reports whether the storyline can trigger for the specialization.
func (t StorylineTemplate) Allows(s models.Specialization) bool {
	if len(t.Specializations) == 0 {
		return true
	}
	for _, v := range t.Specializations {
		if v == s {
			return true
		}
	}
	return false
}

// Scouting covers observation, report and activity-quality formulas.
type Scouting interface {
	RollActivityQuality(r *rng.Stream, activity models.ActivityType, scout models.Scout) QualityRoll
	GenerateObservation(r *rng.Stream, player models.Player, scout models.Scout, ctx ObservationContext, existing []models.Observation) models.Observation
	ScoreReport(report models.Report, player models.Player, qualityBonus float64) float64
}

// Youth covers the youth scouting venues and pools.
type Youth interface {
	YouthVenuePool(r *rng.Stream, pool []models.Player, venue models.ActivityType, country string) []models.Player
	ProcessVenueObservation(r *rng.Stream, player models.Player, scout models.Scout, venue models.ActivityType, ctx ObservationContext, existing []models.Observation) models.Observation
	GenerateYouth(r *rng.Stream, country string, season, n int) []models.Player
}

// Market covers money: negotiations and the ledger.
type Market interface {
	ResolveNegotiationStep(r *rng.Stream, listing models.Listing, offer float64, market models.MarketState) NegotiationOutcome
	FinanceTick(f models.Finances, in LedgerInput) models.Finances
}

// World covers procedural world content.
type World interface {
	GenerateContact(r *rng.Stream, scout models.Scout, countries []string) models.Contact
	GenerateFixtures(r *rng.Stream, league models.League, clubs []models.Club, season, weeks int) []models.Fixture
	SeasonCalendar(r *rng.Stream, season, weeks int) ([]models.SeasonEvent, []models.TransferWindow)
	GenerateDirectives(r *rng.Stream, season int) []models.Directive
	GenerateAnalystCandidate(r *rng.Stream, season int) models.AnalystCandidate
	GenerateJobOffers(r *rng.Stream, clubs []models.Club, currentClubID string, review models.PerformanceReview, tier int) []models.JobOffer
	RivalMove(r *rng.Stream, rival models.RivalScout, candidates []models.Player) RivalDecision
}

// Story covers narrative content.
type Story interface {
	WeeklyEvent(r *rng.Stream, g models.GameState) (models.NarrativeEvent, bool)
	StorylineTemplates() []StorylineTemplate
}

// Generators is the full collaborator surface the engine calls.
type Generators interface {
	Scouting
	Youth
	Market
	World
	Story
}

// Default is the built-in implementation of Generators.
type Default struct{}

var _ Generators = Default{}
