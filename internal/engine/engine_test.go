package engine

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/tatianab/scout-career/internal/config"
	"github.com/tatianab/scout-career/internal/content"
	"github.com/tatianab/scout-career/internal/models"
)

func newGame(t *testing.T, seed string, spec models.Specialization, tn config.Tuning) models.GameState {
	t.Helper()
	return content.NewGame(content.Default{}, content.NewGameOptions{
		Seed:                seed,
		ScoutName:           "Alex Doe",
		Specialization:      spec,
		WeeksPerSeason:      tn.WeeksPerSeason,
		YouthPoolPerCountry: tn.YouthPoolPerCountry,
	})
}

func schedule(t *testing.T, g models.GameState, typ models.ActivityType, slot int, target string) models.GameState {
	t.Helper()
	a := content.NewActivity(g.NextID("activity"), typ, slot, target)
	s, err := g.Schedule.AddActivity(a)
	if err != nil {
		t.Fatalf("schedule %s on slot %d: %v", typ, slot, err)
	}
	g.Schedule = s
	return g
}

// withFixtures adds named fixtures between the first two clubs this week.
func withFixtures(g models.GameState, ids ...string) models.GameState {
	for _, id := range ids {
		g.Fixtures = append(g.Fixtures, models.Fixture{
			ID: id, LeagueID: g.Clubs[0].LeagueID, HomeClubID: g.Clubs[0].ID, AwayClubID: g.Clubs[1].ID,
			Week: g.CurrentWeek, Season: g.CurrentSeason,
		})
	}
	return g
}

func digest(t *testing.T, g models.GameState) []byte {
	t.Helper()
	b, err := yaml.Marshal(g)
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	return b
}

func advance(t *testing.T, e *Engine, g models.GameState) Outcome {
	t.Helper()
	out := e.AdvanceWeek(context.Background(), g)
	if !out.Advanced {
		t.Fatalf("week %d season %d: tick gated on %v", g.CurrentWeek, g.CurrentSeason, out.Match)
	}
	return out
}

func TestAdvanceWeekIsDeterministic(t *testing.T) {
	tn := config.Defaults()
	e := New(tn)
	g := AutoPlan(newGame(t, "det", models.SpecYouth, tn))
	before := digest(t, g)

	a := advance(t, e, g)
	b := advance(t, e, g)
	if !bytes.Equal(digest(t, a.State), digest(t, b.State)) {
		t.Fatal("two ticks from the same state diverged")
	}
	if !bytes.Equal(before, digest(t, g)) {
		t.Fatal("AdvanceWeek modified its input")
	}
}

func TestAdvanceManyWeeksDeterministic(t *testing.T) {
	tn := config.Defaults()
	for _, spec := range []models.Specialization{models.SpecYouth, models.SpecRegional, models.SpecData} {
		e1, e2 := New(tn), New(tn)
		g1 := newGame(t, "many", spec, tn)
		g2 := newGame(t, "many", spec, tn)
		for week := 0; week < 12; week++ {
			g1 = advance(t, e1, AutoPlan(g1)).State
			g2 = advance(t, e2, AutoPlan(g2)).State
			if !bytes.Equal(digest(t, g1), digest(t, g2)) {
				t.Fatalf("%s: states diverged after %d weeks", spec, week+1)
			}
		}
	}
}

func TestRestWeekScenario(t *testing.T) {
	tn := config.Defaults()
	e := New(tn)
	g := newGame(t, "abc", models.SpecData, tn)
	g = schedule(t, g, models.ActRest, 0, "")

	out := advance(t, e, g)
	s := out.Summary
	if s.FatigueChange != -20 {
		t.Errorf("fatigue change = %v, want -20 from rest only", s.FatigueChange)
	}
	if s.MatchesAttended != 0 || s.ReportsWritten != 0 || s.MeetingsHeld != 0 {
		t.Errorf("matches/reports/meetings = %d/%d/%d, want zeros", s.MatchesAttended, s.ReportsWritten, s.MeetingsHeld)
	}
	if s.ActivityCounts["rest"] != 1 || len(s.ActivityCounts) != 1 {
		t.Errorf("activity counts = %v", s.ActivityCounts)
	}
	if out.State.CurrentWeek != 2 {
		t.Errorf("current week = %d, want 2", out.State.CurrentWeek)
	}
	if got := len(out.State.Inbox) - len(g.Inbox); got != s.NewMessages {
		t.Errorf("inbox grew by %d, summary reports %d", got, s.NewMessages)
	}
	for _, m := range out.State.Inbox[len(g.Inbox):] {
		if m.Type == models.MsgReport || m.Type == models.MsgMeeting {
			t.Errorf("unexpected %s message %q in a rest week", m.Type, m.Title)
		}
	}

	again := advance(t, e, g)
	if len(again.State.Inbox) != len(out.State.Inbox) {
		t.Errorf("inbox length differs between runs: %d vs %d", len(again.State.Inbox), len(out.State.Inbox))
	}
}

func TestGateDefersTickForUnplayedFixture(t *testing.T) {
	tn := config.Defaults()
	e := New(tn)
	g := withFixtures(newGame(t, "gate", models.SpecFirstTeam, tn), "F1")
	g = schedule(t, g, models.ActAttendMatch, 0, "F1")

	out := e.AdvanceWeek(context.Background(), g)
	if out.Advanced {
		t.Fatal("tick advanced with an unplayed fixture")
	}
	if out.State.ActiveMatch == nil || out.State.ActiveMatch.FixtureID != "F1" {
		t.Fatalf("active match = %+v, want F1", out.State.ActiveMatch)
	}
	if out.State.CurrentWeek != g.CurrentWeek {
		t.Errorf("week moved from %d to %d", g.CurrentWeek, out.State.CurrentWeek)
	}
	if out.Summary != nil {
		t.Error("gated tick produced a summary")
	}
	if g.ActiveMatch != nil {
		t.Error("gate modified its input")
	}
}

func TestGateSkippedForYouthScouts(t *testing.T) {
	tn := config.Defaults()
	e := New(tn)
	g := withFixtures(newGame(t, "gate", models.SpecYouth, tn), "F1")
	g = schedule(t, g, models.ActAttendMatch, 0, "F1")

	out := advance(t, e, g)
	if out.State.ActiveMatch != nil {
		t.Errorf("youth scout gated on %v", out.State.ActiveMatch)
	}
	if out.Summary.MatchesAttended != 0 {
		t.Errorf("matches attended = %d, want 0", out.Summary.MatchesAttended)
	}
}

func TestGateFirstPendingFixtureWins(t *testing.T) {
	tn := config.Defaults()
	e := New(tn)
	g := withFixtures(newGame(t, "gate", models.SpecRegional, tn), "F1", "F2")
	g = schedule(t, g, models.ActAttendMatch, 4, "F2")
	g = schedule(t, g, models.ActAttendMatch, 1, "F1")
	g.PlayedFixtures = []string{"F1"}

	out := e.AdvanceWeek(context.Background(), g)
	if out.Advanced || out.Match == nil || out.Match.FixtureID != "F2" {
		t.Fatalf("outcome = advanced %v match %+v, want gate on F2", out.Advanced, out.Match)
	}
}

func TestCompleteMatchClearsGate(t *testing.T) {
	tn := config.Defaults()
	e := New(tn)
	g := newGame(t, "match", models.SpecFirstTeam, tn)
	fixture := g.Fixtures[0]
	g = schedule(t, g, models.ActAttendMatch, 0, fixture.ID)

	gated := e.AdvanceWeek(context.Background(), g)
	if gated.Advanced {
		t.Fatal("expected gate")
	}
	played, err := e.CompleteMatch(gated.State, fixture.ID)
	if err != nil {
		t.Fatalf("CompleteMatch: %v", err)
	}
	if played.ActiveMatch != nil {
		t.Error("active match not cleared")
	}
	if !played.FixturePlayed(fixture.ID) {
		t.Error("fixture not recorded as played")
	}
	if got := len(played.Observations) - len(g.Observations); got != matchSample {
		t.Errorf("match produced %d observations, want %d", got, matchSample)
	}

	out := advance(t, e, played)
	if out.Summary.MatchesAttended != 1 {
		t.Errorf("matches attended = %d, want 1", out.Summary.MatchesAttended)
	}
	if out.State.CurrentWeek != 2 {
		t.Errorf("week = %d, want 2", out.State.CurrentWeek)
	}
}

func TestCompleteMatchUnknownFixture(t *testing.T) {
	tn := config.Defaults()
	e := New(tn)
	g := newGame(t, "match", models.SpecFirstTeam, tn)
	if _, err := e.CompleteMatch(g, "nope"); !errors.Is(err, ErrUnknownFixture) {
		t.Fatalf("err = %v, want ErrUnknownFixture", err)
	}
}

func TestIdenticalCallsYieldIdenticalDiscoveries(t *testing.T) {
	tn := config.Defaults()
	e := New(tn)
	g := AutoPlan(newGame(t, "repeat", models.SpecYouth, tn))

	a := advance(t, e, g)
	b := advance(t, e, g)
	if a.Summary.ObservationsGenerated == 0 {
		t.Fatal("expected venue observations")
	}
	if a.Summary.ObservationsGenerated != b.Summary.ObservationsGenerated {
		t.Errorf("observations generated %d vs %d", a.Summary.ObservationsGenerated, b.Summary.ObservationsGenerated)
	}
	if len(a.Summary.Discoveries) == 0 {
		t.Fatal("expected discoveries from venue visits")
	}
	if !slices.Equal(a.Summary.Discoveries, b.Summary.Discoveries) {
		t.Errorf("discovery ids differ: %v vs %v", a.Summary.Discoveries, b.Summary.Discoveries)
	}
}

func TestDiscoveriesStayUnique(t *testing.T) {
	tn := config.Defaults()
	for _, spec := range []models.Specialization{models.SpecYouth, models.SpecData, models.SpecRegional} {
		e := New(tn)
		g := newGame(t, "unique", spec, tn)
		for week := 0; week < 20; week++ {
			g = advance(t, e, AutoPlan(g)).State
		}
		seen := map[string]bool{}
		for _, d := range g.Discoveries {
			if seen[d.PlayerID] {
				t.Fatalf("%s: player %s discovered twice", spec, d.PlayerID)
			}
			seen[d.PlayerID] = true
		}
	}
}

func TestSeasonBoundaryRunsOnce(t *testing.T) {
	tn := config.Defaults()
	tn.WeeksPerSeason = 6
	e := New(tn)
	g := newGame(t, "season", models.SpecData, tn)

	transitions := 0
	for week := 0; week < tn.WeeksPerSeason; week++ {
		if week == tn.WeeksPerSeason-1 {
			g.PlayedFixtures = append(g.PlayedFixtures, "F-played")
		}
		out := advance(t, e, AutoPlan(g))
		if out.Summary.SeasonEnded {
			transitions++
		}
		g = out.State
	}
	if transitions != 1 {
		t.Fatalf("transitions = %d, want 1", transitions)
	}
	if g.CurrentSeason != 2 || g.CurrentWeek != 1 {
		t.Fatalf("season/week = %d/%d, want 2/1", g.CurrentSeason, g.CurrentWeek)
	}
	if len(g.PlayedFixtures) != 0 {
		t.Errorf("played fixtures = %v, want empty", g.PlayedFixtures)
	}
	if len(g.Reviews) != 1 || g.Reviews[0].Season != 1 {
		t.Errorf("reviews = %+v", g.Reviews)
	}
	for _, f := range g.Fixtures {
		if l, _ := g.League(f.LeagueID); !l.Secondary && f.Season != 2 {
			t.Fatalf("primary fixture %s still from season %d", f.ID, f.Season)
		}
	}

	for week := 0; week < tn.WeeksPerSeason-1; week++ {
		out := advance(t, e, AutoPlan(g))
		if out.Summary.SeasonEnded {
			t.Fatalf("second transition at week %d", g.CurrentWeek)
		}
		g = out.State
	}
	if g.CurrentSeason != 2 || len(g.Reviews) != 1 {
		t.Errorf("season %d with %d reviews, want 2 and 1", g.CurrentSeason, len(g.Reviews))
	}
}

func TestOutOfRangeChoiceIsDropped(t *testing.T) {
	tn := config.Defaults()
	e := New(tn)
	g := newGame(t, "choice", models.SpecData, tn)
	g.NarrativeEvents = append(g.NarrativeEvents, models.NarrativeEvent{
		ID: "ev-1", Title: "Offer", Week: 1, Season: 1,
		Choices: []models.NarrativeChoice{
			{Label: "yes", Consequences: models.Consequences{Reputation: 5}},
			{Label: "no"},
		},
	})
	if err := g.QueueChoice("ev-1", 5); err != nil {
		t.Fatalf("QueueChoice: %v", err)
	}

	out := advance(t, e, g)
	if len(out.State.PendingChoices) != 0 {
		t.Errorf("pending choices = %v, want none", out.State.PendingChoices)
	}
	ev := findEvent(t, out.State, "ev-1")
	if ev.Acknowledged || len(ev.ChoiceHistory) != 0 {
		t.Errorf("invalid choice was applied: %+v", ev)
	}

	next := out.State
	if err := next.QueueChoice("ev-1", 0); err != nil {
		t.Fatalf("QueueChoice: %v", err)
	}
	out = advance(t, e, next)
	ev = findEvent(t, out.State, "ev-1")
	if !ev.Acknowledged || !slices.Equal(ev.ChoiceHistory, []int{0}) || ev.CurrentStep != 1 {
		t.Errorf("valid choice not applied: %+v", ev)
	}
}

func findEvent(t *testing.T, g models.GameState, id string) models.NarrativeEvent {
	t.Helper()
	for _, ev := range g.NarrativeEvents {
		if ev.ID == id {
			return ev
		}
	}
	t.Fatalf("event %s not found", id)
	return models.NarrativeEvent{}
}

func TestAbsentOptionalStateIsNoop(t *testing.T) {
	tn := config.Defaults()
	e := New(tn)
	g := newGame(t, "bare", models.SpecYouth, tn)
	g.Manager = nil
	g.Finances = nil
	g.Scout.CurrentClubID = ""
	g.Contacts = nil
	g = schedule(t, g, models.ActManagerMeeting, 0, "")
	g = schedule(t, g, models.ActBoardMeeting, 1, "")
	g = schedule(t, g, models.ActNetworkMeeting, 2, "")
	g = schedule(t, g, models.ActReviewNPC, 3, "")

	out := advance(t, e, g)
	if out.Summary.MeetingsHeld != 0 {
		t.Errorf("meetings held = %d, want 0", out.Summary.MeetingsHeld)
	}
	if out.State.Finances != nil || out.State.Manager != nil {
		t.Error("optional state was created")
	}
}

func TestFailedStageIsDiscarded(t *testing.T) {
	tn := config.Defaults()
	e := New(tn)
	g := newGame(t, "discard", models.SpecData, tn)
	tk := e.newTick(context.Background(), g)

	stages := []stage{
		{"fails", func(t *tick, g models.GameState) (models.GameState, error) {
			g.AddMessage(models.InboxMessage{Title: "half applied"})
			g.Scout.Reputation = 99
			t.res.MeetingsHeld = 5
			return g, errors.New("boom")
		}},
		{"succeeds", func(t *tick, g models.GameState) (models.GameState, error) {
			t.res.ReportsWritten = 1
			g.CurrentWeek = 7
			return g, nil
		}},
	}
	out := e.runStages(tk, g, stages)
	if out.Scout.Reputation != g.Scout.Reputation || len(out.Inbox) != len(g.Inbox) {
		t.Error("failed stage leaked into the state")
	}
	if tk.res.MeetingsHeld != 0 {
		t.Errorf("failed stage leaked into the week result: %d meetings", tk.res.MeetingsHeld)
	}
	if tk.res.ReportsWritten != 1 || out.CurrentWeek != 7 {
		t.Error("stage after the failure did not run")
	}
	if g.CurrentWeek != 1 {
		t.Error("input state modified")
	}
}

func TestPipelineOrder(t *testing.T) {
	want := []string{
		"resolve_schedule", "quality_rolls", "tool_modifiers", "activity_effects", "contacts",
		"world", "economy", "transfer_window_urgency", "rivals", "narrative", "tool_unlocks",
		"specialization_weekly", "core", "performance_snapshot", "season_transition",
		"transfer_window_flag", "retention", "week_summary", "scenario_and_celebration", "commit",
	}
	var got []string
	for _, st := range pipeline {
		got = append(got, st.name)
	}
	if !slices.Equal(got, want) {
		t.Fatalf("pipeline = %v\nwant %v", got, want)
	}
}

func TestInboxBoundKeepsActionRequired(t *testing.T) {
	tn := config.Defaults()
	e := New(tn)
	g := newGame(t, "inbox", models.SpecData, tn)
	var pinned []string
	for i := 0; i < 260; i++ {
		msg := models.InboxMessage{Type: models.MsgEvent, Title: "old"}
		if i%8 == 0 {
			ev := models.NarrativeEvent{
				ID: g.NextID("event"), Title: "open", Week: 1, Season: 1,
				Choices: []models.NarrativeChoice{{Label: "ok"}},
			}
			g.NarrativeEvents = append(g.NarrativeEvents, ev)
			msg.ActionRequired, msg.RelatedID = true, ev.ID
		}
		m := g.AddMessage(msg)
		if m.Pinned() {
			pinned = append(pinned, m.ID)
		}
	}

	out := advance(t, e, g)
	if len(out.State.Inbox) > tn.InboxCap+len(pinned) {
		t.Fatalf("inbox length %d exceeds %d", len(out.State.Inbox), tn.InboxCap+len(pinned))
	}
	ids := map[string]bool{}
	for _, m := range out.State.Inbox {
		ids[m.ID] = true
	}
	for _, id := range pinned {
		if !ids[id] {
			t.Fatalf("action-required message %s was evicted", id)
		}
	}
}

func TestPickCelebrationPriority(t *testing.T) {
	g := models.GameState{
		Players:  []models.Player{{ID: "p1", Name: "Kid", Age: 16, Position: "W"}},
		Scenario: &models.Scenario{Name: "Rebuild"},
	}
	cases := []struct {
		name string
		res  WeekResult
		want string
	}{
		{"all", WeekResult{Wonderkids: []string{"p1"}, Promoted: true, ScenarioWon: true, ToolsUnlocked: []string{"notebook_app"}}, CelebrateWonderkid},
		{"no wonderkid", WeekResult{Promoted: true, ScenarioWon: true, ToolsUnlocked: []string{"notebook_app"}}, CelebratePromotion},
		{"scenario", WeekResult{ScenarioWon: true, ToolsUnlocked: []string{"notebook_app"}}, CelebrateScenario},
		{"tool", WeekResult{ToolsUnlocked: []string{"notebook_app"}}, CelebrateTool},
	}
	for _, tc := range cases {
		c := pickCelebration(g, tc.res)
		if c == nil || c.Kind != tc.want {
			t.Errorf("%s: celebration = %+v, want %s", tc.name, c, tc.want)
		}
	}
	if c := pickCelebration(g, WeekResult{}); c != nil {
		t.Errorf("quiet week celebrated %+v", c)
	}
}

func TestRepeatedChoiceAppliesOnce(t *testing.T) {
	tn := config.Defaults()
	e := New(tn)
	g := newGame(t, "twice", models.SpecData, tn)
	g.NarrativeEvents = append(g.NarrativeEvents, models.NarrativeEvent{
		ID: "ev-1", Title: "Offer", Week: 1, Season: 1,
		Choices: []models.NarrativeChoice{
			{Label: "yes", Consequences: models.Consequences{Reputation: 5}},
			{Label: "no"},
		},
	})
	for i := 0; i < 2; i++ {
		if err := g.QueueChoice("ev-1", 0); err != nil {
			t.Fatalf("QueueChoice: %v", err)
		}
	}
	if len(g.PendingChoices) != 1 {
		t.Fatalf("pending choices = %v, want one", g.PendingChoices)
	}
	// A stale duplicate, as an older save could carry.
	g.PendingChoices = append(g.PendingChoices, models.PendingChoice{EventID: "ev-1", ChoiceIndex: 0})

	out := advance(t, e, g)
	ev := findEvent(t, out.State, "ev-1")
	if !slices.Equal(ev.ChoiceHistory, []int{0}) || ev.CurrentStep != 1 {
		t.Errorf("event = %+v, want a single recorded choice", ev)
	}
	if next := out.State; next.QueueChoice("ev-1", 1) == nil {
		t.Error("queued a choice on a resolved event")
	}
}

// openDecision mirrors what keeps an inbox message pinned.
func openDecision(g models.GameState, id string) bool {
	for _, ev := range g.NarrativeEvents {
		if ev.ID == id {
			return !ev.Acknowledged
		}
	}
	for _, a := range g.Assignments {
		if a.ID == id {
			return !a.Completed && !a.Expired
		}
	}
	for _, o := range g.JobOffers {
		if o.ID == id {
			return true
		}
	}
	return false
}

func TestSettledDecisionsLeaveTheInbox(t *testing.T) {
	tn := config.Defaults()
	tn.WeeksPerSeason = 6
	tn.AssignmentEveryWeeks = 2
	tn.AssignmentLifetimeWeeks = 1
	tn.WeeklyEventChance = 1
	e := New(tn)
	g := newGame(t, "settle", models.SpecRegional, tn)

	for week := 0; week < 3*tn.WeeksPerSeason; week++ {
		for _, ev := range g.NarrativeEvents {
			if ev.Acknowledged {
				continue
			}
			if len(ev.Choices) > 0 {
				if err := g.QueueChoice(ev.ID, 0); err != nil {
					t.Fatalf("QueueChoice %s: %v", ev.ID, err)
				}
			} else if err := g.Acknowledge(ev.ID); err != nil {
				t.Fatalf("Acknowledge %s: %v", ev.ID, err)
			}
		}
		g = advance(t, e, AutoPlan(g)).State
	}
	if g.CurrentSeason != 4 {
		t.Fatalf("season = %d, want 4", g.CurrentSeason)
	}
	settled := 0
	for _, m := range g.Inbox {
		if m.Pinned() && !openDecision(g, m.RelatedID) {
			t.Errorf("message %q (%s) still pinned after its decision closed", m.Title, m.RelatedID)
		}
		if m.ActionRequired && m.Read {
			settled++
		}
	}
	if settled == 0 {
		t.Error("no action-required message was ever settled")
	}
}

func TestUnknownFixtureDoesNotGate(t *testing.T) {
	tn := config.Defaults()
	e := New(tn)
	g := newGame(t, "ghost", models.SpecFirstTeam, tn)
	g = schedule(t, g, models.ActAttendMatch, 0, "F-nowhere")
	if got := PendingFixtures(g); len(got) != 0 {
		t.Fatalf("pending fixtures = %v, want none", got)
	}
	out := advance(t, e, g)
	if out.State.CurrentWeek != 2 || out.Summary.MatchesAttended != 0 {
		t.Errorf("week %d with %d matches, want 2 and 0", out.State.CurrentWeek, out.Summary.MatchesAttended)
	}
}
