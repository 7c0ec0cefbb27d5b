package engine

import (
	"fmt"
	"sort"

	"github.com/tatianab/scout-career/internal/content"
	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/rng"
)

// resolveSchedule expands the week's slots into counts, fatigue and base
// experience. Matches count only once their fixture has been played.
func resolveSchedule(t *tick, g models.GameState) (models.GameState, error) {
	for _, a := range g.Schedule.Ordered() {
		spec, ok := content.Activity(a.Type)
		if !ok {
			t.e.log.Warn("unknown activity skipped", "type", a.Type, "id", a.ID)
			continue
		}
		if a.Type == models.ActAttendMatch && (a.TargetID == "" || !g.FixturePlayed(a.TargetID)) {
			continue
		}
		cost := float64(max(a.SlotCost, 1))
		t.res.Counts[a.Type]++
		t.res.FatigueChange += spec.Fatigue

		d, ok := t.res.baseXP[a.Type]
		if !ok {
			d = xpDelta{skills: map[string]float64{}, attributes: map[string]float64{}}
		}
		for skill, v := range spec.Skills {
			d.skills[skill] += v * cost
			t.res.SkillXP[skill] += v * cost
		}
		for attr, v := range spec.Attributes {
			d.attributes[attr] += v * cost
			t.res.AttributeXP[attr] += v * cost
		}
		t.res.baseXP[a.Type] = d

		switch a.Type {
		case models.ActAttendMatch:
			t.res.MatchesAttended++
		case models.ActTravel:
			if a.TargetID != "" {
				t.res.Traveled = append(t.res.Traveled, a.TargetID)
			}
		}
	}
	return g, nil
}

// rollQuality rolls once per distinct activity type and blends the
// multiplier into that type's experience.
func rollQuality(t *tick, g models.GameState) (models.GameState, error) {
	for _, typ := range t.res.ActivityTypes() {
		roll := t.e.gen.RollActivityQuality(t.stream("quality", string(typ)), typ, g.Scout)
		t.res.Qualities[typ] = roll
		d := t.res.baseXP[typ]
		for _, skill := range sortedKeys(d.skills) {
			t.res.SkillXP[skill] += d.skills[skill] * (roll.Multiplier - 1)
		}
		for _, attr := range sortedKeys(d.attributes) {
			t.res.AttributeXP[attr] += d.attributes[attr] * (roll.Multiplier - 1)
		}
	}
	return g, nil
}

func (t *tick) multiplier(typ models.ActivityType) float64 {
	if q, ok := t.res.Qualities[typ]; ok && q.Multiplier > 0 {
		return q.Multiplier
	}
	return 1
}

// resolveActivities turns each scheduled activity into side effects.
func resolveActivities(t *tick, g models.GameState) (models.GameState, error) {
	for _, a := range g.Schedule.Ordered() {
		if t.res.Counts[a.Type] == 0 {
			continue
		}
		r := t.stream("activity", a.ID)
		mult := t.multiplier(a.Type)
		switch a.Type {
		case models.ActReviewNPC:
			t.reviewNPCReports(&g)
		case models.ActManagerMeeting:
			t.managerMeeting(&g, mult)
		case models.ActBoardMeeting:
			t.boardMeeting(&g, mult)
		case models.ActNetworkMeeting:
			t.networkMeeting(&g, a, r, mult)
		case models.ActWriteReport:
			t.writeReport(&g, mult)
		case models.ActPlacementPitch:
			t.pitchPlacement(&g, a, r)
		case models.ActRest, models.ActStudy, models.ActAttendMatch:
		default:
			t.routeObservation(&g, a, r, mult)
		}
	}
	if g.Scout.Specialization == models.SpecYouth {
		t.resolvePlacements(&g)
	}
	return g, nil
}

const npcReviewsPerSession = 3

func (t *tick) reviewNPCReports(g *models.GameState) {
	n := 0
	for i := range g.NPCReports {
		if n == npcReviewsPerSession {
			break
		}
		nr := &g.NPCReports[i]
		if nr.Reviewed {
			continue
		}
		nr.Reviewed = true
		n++
		t.res.NPCReportsReviewed++
		if p, ok := g.Player(nr.PlayerID); ok && nr.Quality >= 60 {
			t.discover(g, p, "staff_report")
		}
	}
}

func (t *tick) managerMeeting(g *models.GameState, mult float64) {
	if g.Manager == nil {
		return
	}
	g.Manager.Trust = models.Clamp(g.Manager.Trust+3*mult, 0, 100)
	g.Manager.LastMeetingWeek = t.week
	t.res.MeetingsHeld++
}

func (t *tick) boardMeeting(g *models.GameState, mult float64) {
	if g.Scout.CurrentClubID == "" {
		return
	}
	g.AdjustReputation(0.5 * mult)
	t.res.MeetingsHeld++
}

func (t *tick) networkMeeting(g *models.GameState, a models.Activity, r *rng.Stream, mult float64) {
	idx := -1
	for i, c := range g.Contacts {
		if a.TargetID != "" && c.ID == a.TargetID {
			idx = i
			break
		}
		if a.TargetID == "" && (idx < 0 || c.Relationship < g.Contacts[idx].Relationship) {
			idx = i
		}
	}
	if idx < 0 {
		return
	}
	c := &g.Contacts[idx]
	c.Relationship = models.Clamp(c.Relationship+4*mult+g.Scout.Attributes[models.AttrCommunication]/10, 0, 100)
	c.IntelShared++
	t.res.MeetingsHeld++

	if !r.Chance(c.Relationship / 150) {
		return
	}
	p, ok := rng.Pick(r, seniorPlayers(*g, c.Country))
	if !ok {
		return
	}
	ctx := t.observationContext(*g, "contact", p.Country)
	ctx.ConfidenceBonus -= 0.1
	t.observe(g, t.e.gen.GenerateObservation(r, p, g.Scout, ctx, g.ObservationsOf(p.ID)))
	t.message(g, models.MsgContact, c.Name+" passed on a tip",
		fmt.Sprintf("%s thinks %s (%s) deserves a look.", c.Name, p.Name, p.Position), p.ID, false)
}

// writeReport files a report on the most-watched player without one.
func (t *tick) writeReport(g *models.GameState, mult float64) {
	counts := map[string]int{}
	for _, o := range g.Observations {
		counts[o.PlayerID]++
	}
	var ids []string
	for id := range counts {
		if !g.HasReportOn(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})
	p, ok := g.Player(ids[0])
	if !ok {
		return
	}
	obs := g.ObservationsOf(p.ID)
	potential := 0.0
	for _, o := range obs {
		potential += o.PotentialEstimate
	}
	potential /= float64(len(obs))

	report := models.Report{
		ID:             g.NextID("report"),
		PlayerID:       p.ID,
		Week:           t.week,
		Season:         t.season,
		Recommendation: content.Recommend(potential),
	}
	report.Quality = t.e.gen.ScoreReport(report, p, mult-1+t.res.ConfidenceBonus)
	g.Reports = append(g.Reports, report)
	t.res.NewReports = append(t.res.NewReports, report.ID)
	t.res.ReportsWritten++
	t.discover(g, p, "report")
	t.message(g, models.MsgReport, "Report filed: "+p.Name,
		fmt.Sprintf("Recommendation: %s. Quality %.0f.", report.Recommendation, report.Quality), report.ID, false)
}
