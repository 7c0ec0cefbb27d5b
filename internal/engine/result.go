package engine

import (
	"maps"
	"slices"
	"sort"

	"github.com/tatianab/scout-career/internal/content"
	"github.com/tatianab/scout-career/internal/models"
)

// WeekResult carries per-tick counts and deltas from the schedule stages to
// everything downstream. It lives for one tick and is never persisted.
type WeekResult struct {
	FatigueChange float64
	SkillXP       map[string]float64
	AttributeXP   map[string]float64

	Counts    map[models.ActivityType]int
	Qualities map[models.ActivityType]content.QualityRoll
	// baseXP is the unblended experience per activity type.
	baseXP map[models.ActivityType]xpDelta

	ConfidenceBonus float64

	MatchesAttended       int
	ReportsWritten        int
	MeetingsHeld          int
	NPCReportsReviewed    int
	VenueVisits           int
	PlacementsPitched     int
	TrialSessions         int
	DatabaseQueries       int
	ObservationsGenerated int

	NewReports     []string
	NewDiscoveries []string
	Wonderkids     []string
	Traveled       []string
	ToolsUnlocked  []string

	PayWeek  bool
	Income   float64
	Expenses float64

	SeasonBoundary bool
	Review         *models.PerformanceReview
	Promoted       bool
	ScenarioWon    bool
}

type xpDelta struct {
	skills     map[string]float64
	attributes map[string]float64
}

func newWeekResult() WeekResult {
	return WeekResult{
		SkillXP:     map[string]float64{},
		AttributeXP: map[string]float64{},
		Counts:      map[models.ActivityType]int{},
		Qualities:   map[models.ActivityType]content.QualityRoll{},
		baseXP:      map[models.ActivityType]xpDelta{},
	}
}

// ActivityTypes returns the distinct activity types of the week, sorted.
func (r WeekResult) ActivityTypes() []models.ActivityType {
	out := make([]models.ActivityType, 0, len(r.Counts))
	for t := range r.Counts {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r WeekResult) clone() WeekResult {
	out := r
	out.SkillXP = maps.Clone(r.SkillXP)
	out.AttributeXP = maps.Clone(r.AttributeXP)
	out.Counts = maps.Clone(r.Counts)
	out.Qualities = maps.Clone(r.Qualities)
	out.baseXP = make(map[models.ActivityType]xpDelta, len(r.baseXP))
	for k, v := range r.baseXP {
		out.baseXP[k] = xpDelta{skills: maps.Clone(v.skills), attributes: maps.Clone(v.attributes)}
	}
	out.NewReports = slices.Clone(r.NewReports)
	out.NewDiscoveries = slices.Clone(r.NewDiscoveries)
	out.Wonderkids = slices.Clone(r.Wonderkids)
	out.Traveled = slices.Clone(r.Traveled)
	out.ToolsUnlocked = slices.Clone(r.ToolsUnlocked)
	if r.Review != nil {
		rv := *r.Review
		out.Review = &rv
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
