package engine

import (
	"github.com/tatianab/scout-career/internal/content"
	"github.com/tatianab/scout-career/internal/models"
)

type planned struct {
	typ    models.ActivityType
	target string
}

// AutoPlan fills the free slots of the week with a sensible default for the
// scout's specialization. Existing activities are kept.
func AutoPlan(g models.GameState) models.GameState {
	out := g.Clone()
	var week []planned
	switch out.Scout.Specialization {
	case models.SpecYouth:
		week = []planned{
			{typ: models.ActAcademyVisit}, {typ: models.ActWriteReport}, {typ: models.ActYouthTournament},
			{typ: models.ActPlacementPitch}, {typ: models.ActRest}, {typ: models.ActRest},
		}
	case models.SpecFirstTeam:
		match := planned{typ: models.ActWatchVideo}
		if id := WeekFixture(out); id != "" {
			match = planned{typ: models.ActAttendMatch, target: id}
		}
		meeting := planned{typ: models.ActStudy}
		if out.Manager != nil {
			meeting = planned{typ: models.ActManagerMeeting}
		}
		week = []planned{
			{typ: models.ActWatchVideo}, {typ: models.ActTrainingVisit}, {typ: models.ActWriteReport},
			{typ: models.ActTrialSession}, meeting, match, {typ: models.ActRest},
		}
	case models.SpecRegional:
		country := leastFamiliar(out)
		week = []planned{
			{typ: models.ActTravel, target: country}, {typ: models.ActTrainingVisit, target: country},
			{typ: models.ActAcademyVisit, target: country}, {typ: models.ActWriteReport},
			{typ: models.ActNetworkMeeting}, {typ: models.ActRest},
		}
	default:
		week = []planned{
			{typ: models.ActDatabaseQuery}, {typ: models.ActDatabaseQuery}, {typ: models.ActWatchVideo},
			{typ: models.ActWriteReport}, {typ: models.ActStudy}, {typ: models.ActNetworkMeeting}, {typ: models.ActRest},
		}
	}

	slot := 0
	for _, p := range week {
		for slot < models.DaysPerWeek && out.Schedule.Slots[slot] != "" {
			slot++
		}
		if slot >= models.DaysPerWeek {
			break
		}
		a := content.NewActivity("", p.typ, slot, p.target)
		if out.Schedule.CanAddActivity(a) != nil {
			continue
		}
		a.ID = out.NextID("activity")
		if s, err := out.Schedule.AddActivity(a); err == nil {
			out.Schedule = s
			slot += a.SlotCost
		}
	}
	return out
}

// WeekFixture returns an unplayed fixture this week involving the scout's
// club, or any primary-league fixture in the home country.
func WeekFixture(g models.GameState) string {
	fallback := ""
	for _, f := range g.Fixtures {
		if f.Week != g.CurrentWeek || f.Season != g.CurrentSeason || g.FixturePlayed(f.ID) {
			continue
		}
		if f.HomeClubID == g.Scout.CurrentClubID || f.AwayClubID == g.Scout.CurrentClubID {
			return f.ID
		}
		if l, ok := g.League(f.LeagueID); ok && fallback == "" && !l.Secondary && l.Country == g.Scout.HomeCountry {
			fallback = f.ID
		}
	}
	return fallback
}
