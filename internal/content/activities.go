package content

import (
	"github.com/tatianab/scout-career/internal/models"
)

// ActivitySpec is the static definition of an activity type.
type ActivitySpec struct {
	Type            models.ActivityType
	Label           string
	SlotCost        int
	Fatigue         float64
	Skills          map[string]float64
	Attributes      map[string]float64
	NeedsTarget     bool
	Specializations []models.Specialization
}

var catalog = []ActivitySpec{
	{Type: models.ActAttendMatch, Label: "Attend match", SlotCost: 1, Fatigue: 8, NeedsTarget: true,
		Skills: map[string]float64{models.SkillTalentSpotting: 0.4, models.SkillPlayerJudgment: 0.3},
		Specializations: []models.Specialization{models.SpecFirstTeam, models.SpecRegional, models.SpecData}},
	{Type: models.ActWatchVideo, Label: "Watch video", SlotCost: 1, Fatigue: 3,
		Skills: map[string]float64{models.SkillPlayerJudgment: 0.3, models.SkillDataLiteracy: 0.1}},
	{Type: models.ActWriteReport, Label: "Write report", SlotCost: 1, Fatigue: 4,
		Skills:     map[string]float64{models.SkillPlayerJudgment: 0.2},
		Attributes: map[string]float64{models.AttrCommunication: 0.2}},
	{Type: models.ActNetworkMeeting, Label: "Network meeting", SlotCost: 1, Fatigue: 5, NeedsTarget: true,
		Skills:     map[string]float64{models.SkillNetworking: 0.4},
		Attributes: map[string]float64{models.AttrCommunication: 0.1}},
	{Type: models.ActRest, Label: "Rest", SlotCost: 1, Fatigue: -20,
		Attributes: map[string]float64{models.AttrStamina: 0.1}},
	{Type: models.ActStudy, Label: "Study", SlotCost: 1, Fatigue: 3,
		Skills: map[string]float64{models.SkillPlayerJudgment: 0.2, models.SkillDataLiteracy: 0.2}},
	{Type: models.ActTravel, Label: "Travel", SlotCost: 2, Fatigue: 12, NeedsTarget: true,
		Attributes: map[string]float64{models.AttrStamina: 0.2}},
	{Type: models.ActReviewNPC, Label: "Review staff reports", SlotCost: 1, Fatigue: 3,
		Skills: map[string]float64{models.SkillPlayerJudgment: 0.2}},
	{Type: models.ActManagerMeeting, Label: "Manager meeting", SlotCost: 1, Fatigue: 4,
		Attributes: map[string]float64{models.AttrCommunication: 0.3}},
	{Type: models.ActBoardMeeting, Label: "Board meeting", SlotCost: 1, Fatigue: 5,
		Skills:     map[string]float64{models.SkillNegotiation: 0.2},
		Attributes: map[string]float64{models.AttrCommunication: 0.2}},
	{Type: models.ActAcademyVisit, Label: "Academy visit", SlotCost: 1, Fatigue: 6,
		Skills:          map[string]float64{models.SkillYouthAssessment: 0.4},
		Specializations: []models.Specialization{models.SpecYouth, models.SpecRegional}},
	{Type: models.ActYouthTournament, Label: "Youth tournament", SlotCost: 2, Fatigue: 10,
		Skills:          map[string]float64{models.SkillYouthAssessment: 0.6, models.SkillTalentSpotting: 0.2},
		Specializations: []models.Specialization{models.SpecYouth}},
	{Type: models.ActPlacementPitch, Label: "Placement pitch", SlotCost: 1, Fatigue: 4, NeedsTarget: true,
		Skills:          map[string]float64{models.SkillNegotiation: 0.3},
		Specializations: []models.Specialization{models.SpecYouth}},
	{Type: models.ActTrialSession, Label: "Trial session", SlotCost: 1, Fatigue: 6,
		Skills:          map[string]float64{models.SkillPlayerJudgment: 0.4},
		Specializations: []models.Specialization{models.SpecFirstTeam}},
	{Type: models.ActDatabaseQuery, Label: "Database query", SlotCost: 1, Fatigue: 2,
		Skills:          map[string]float64{models.SkillDataLiteracy: 0.5},
		Specializations: []models.Specialization{models.SpecData}},
	{Type: models.ActTrainingVisit, Label: "Training ground visit", SlotCost: 1, Fatigue: 6,
		Skills:          map[string]float64{models.SkillTalentSpotting: 0.3},
		Specializations: []models.Specialization{models.SpecRegional, models.SpecFirstTeam}},
}

// Catalog returns every activity definition.
func Catalog() []ActivitySpec {
	out := make([]ActivitySpec, len(catalog))
	copy(out, catalog)
	return out
}

// Activity returns the definition for t.
func Activity(t models.ActivityType) (ActivitySpec, bool) {
	for _, spec := range catalog {
		if spec.Type == t {
			return spec, true
		}
	}
	return ActivitySpec{}, false
}

// Available reports whether the specialization may schedule the activity.
func (a ActivitySpec) Available(s models.Specialization) bool {
	if len(a.Specializations) == 0 {
		return true
	}
	for _, v := range a.Specializations {
		if v == s {
			return true
		}
	}
	return false
}

// NewActivity builds a schedulable activity with its declared slot cost.
func NewActivity(id string, t models.ActivityType, startSlot int, targetID string) models.Activity {
	spec, ok := Activity(t)
	cost := 1
	label := string(t)
	if ok {
		cost = spec.SlotCost
		label = spec.Label
	}
	return models.Activity{
		ID:          id,
		Type:        t,
		StartSlot:   startSlot,
		SlotCost:    cost,
		TargetID:    targetID,
		Description: label,
	}
}
