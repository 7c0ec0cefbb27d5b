package content

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/rng"
)

func TestCatalogCoversEveryActivity(t *testing.T) {
	all := []models.ActivityType{
		models.ActAttendMatch, models.ActWatchVideo, models.ActWriteReport, models.ActNetworkMeeting,
		models.ActRest, models.ActStudy, models.ActTravel, models.ActReviewNPC, models.ActManagerMeeting,
		models.ActBoardMeeting, models.ActAcademyVisit, models.ActYouthTournament, models.ActPlacementPitch,
		models.ActTrialSession, models.ActDatabaseQuery, models.ActTrainingVisit,
	}
	for _, typ := range all {
		spec, ok := Activity(typ)
		if !ok {
			t.Errorf("no catalog entry for %s", typ)
			continue
		}
		if spec.SlotCost < 1 || spec.SlotCost > models.DaysPerWeek {
			t.Errorf("%s: slot cost %d", typ, spec.SlotCost)
		}
	}
	if len(Catalog()) != len(all) {
		t.Errorf("catalog has %d entries, want %d", len(Catalog()), len(all))
	}

	rest, _ := Activity(models.ActRest)
	if rest.Fatigue != -20 {
		t.Errorf("rest fatigue = %v, want -20", rest.Fatigue)
	}
	travel := NewActivity("a1", models.ActTravel, 2, "Spain")
	if travel.SlotCost != 2 || travel.Description != "Travel" {
		t.Errorf("travel activity = %+v", travel)
	}
	attend, _ := Activity(models.ActAttendMatch)
	if attend.Available(models.SpecYouth) || !attend.Available(models.SpecData) {
		t.Error("attend_match availability is wrong")
	}
}

func TestGenerateFixtures(t *testing.T) {
	league := models.League{ID: "L-Eng-1"}
	var clubs []models.Club
	for i := 1; i <= 4; i++ {
		clubs = append(clubs, models.Club{ID: fmt.Sprintf("C-%d", i), LeagueID: league.ID})
	}
	clubs = append(clubs, models.Club{ID: "other", LeagueID: "L-Spa-1"})

	fixtures := Default{}.GenerateFixtures(rng.New("fixtures"), league, clubs, 2, 38)
	if len(fixtures) != 38*2 {
		t.Fatalf("len = %d, want %d", len(fixtures), 38*2)
	}
	ids := map[string]bool{}
	perWeek := map[int]map[string]int{}
	for _, f := range fixtures {
		if ids[f.ID] {
			t.Fatalf("duplicate fixture id %s", f.ID)
		}
		ids[f.ID] = true
		if f.HomeClubID == f.AwayClubID {
			t.Fatalf("%s: club plays itself", f.ID)
		}
		if f.HomeClubID == "other" || f.AwayClubID == "other" {
			t.Fatalf("%s: club from another league", f.ID)
		}
		if f.Season != 2 || !strings.HasPrefix(f.ID, "F-L-Eng-1-S2-") {
			t.Fatalf("fixture %+v not stamped with season 2", f)
		}
		if perWeek[f.Week] == nil {
			perWeek[f.Week] = map[string]int{}
		}
		perWeek[f.Week][f.HomeClubID]++
		perWeek[f.Week][f.AwayClubID]++
	}
	for week := 1; week <= 38; week++ {
		for club, n := range perWeek[week] {
			if n != 1 {
				t.Fatalf("week %d: %s plays %d times", week, club, n)
			}
		}
		if len(perWeek[week]) != 4 {
			t.Fatalf("week %d: %d clubs play, want 4", week, len(perWeek[week]))
		}
	}
}

func TestGenerateFixturesOddLeague(t *testing.T) {
	league := models.League{ID: "L"}
	clubs := []models.Club{{ID: "a", LeagueID: "L"}, {ID: "b", LeagueID: "L"}, {ID: "c", LeagueID: "L"}}
	for _, f := range (Default{}).GenerateFixtures(rng.New("odd"), league, clubs, 1, 6) {
		if f.HomeClubID == "" || f.AwayClubID == "" {
			t.Fatalf("bye leaked into fixture %+v", f)
		}
	}
	if got := (Default{}).GenerateFixtures(rng.New("odd"), league, clubs[:1], 1, 6); got != nil {
		t.Errorf("single-club league produced %d fixtures", len(got))
	}
}

func newTestGame(spec models.Specialization, path models.CareerPath) models.GameState {
	return NewGame(Default{}, NewGameOptions{
		Seed: "world", ScoutName: "Alex Doe", Specialization: spec, CareerPath: path,
		WeeksPerSeason: 38, YouthPoolPerCountry: 8,
	})
}

func TestNewGameIsDeterministic(t *testing.T) {
	a, err := yaml.Marshal(newTestGame(models.SpecYouth, models.PathClub))
	if err != nil {
		t.Fatal(err)
	}
	b, err := yaml.Marshal(newTestGame(models.SpecYouth, models.PathClub))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("same options produced different worlds")
	}
}

func TestNewGameShape(t *testing.T) {
	g := newTestGame(models.SpecFirstTeam, models.PathClub)
	if g.CurrentWeek != 1 || g.CurrentSeason != 1 {
		t.Errorf("clock = week %d season %d", g.CurrentWeek, g.CurrentSeason)
	}
	if len(g.Countries) != 2 || len(g.Leagues) != 4 || len(g.Clubs) != 12 {
		t.Errorf("countries/leagues/clubs = %d/%d/%d, want 2/4/12", len(g.Countries), len(g.Leagues), len(g.Clubs))
	}
	if len(g.Players) != 12*squadSize {
		t.Errorf("players = %d, want %d", len(g.Players), 12*squadSize)
	}
	if len(g.UnsignedYouth) != 16 {
		t.Errorf("unsigned youth = %d, want 16", len(g.UnsignedYouth))
	}
	if g.Scout.CurrentClubID != g.Clubs[0].ID || g.Manager == nil || len(g.Directives) == 0 {
		t.Error("first-team club scout is missing club, manager or directives")
	}
	if g.Finances != nil {
		t.Error("club scout should start without finances")
	}
	if len(g.Inbox) != 1 || g.Inbox[0].Type != models.MsgWelcome {
		t.Errorf("inbox = %+v, want one welcome message", g.Inbox)
	}
	if !g.TransferWindowOpen {
		t.Error("summer window should be open in week 1")
	}

	ind := newTestGame(models.SpecData, models.PathIndependent)
	if ind.Finances == nil || ind.Scout.IndependentTier != 1 || ind.Scout.CurrentClubID != "" {
		t.Errorf("independent scout = %+v finances %v", ind.Scout, ind.Finances)
	}
	if ind.AnalystOffer == nil {
		t.Error("data scout without an analyst offer")
	}

	reg := newTestGame(models.SpecRegional, models.PathClub)
	if len(reg.Countries) != 3 || len(reg.Familiarity) != 3 || reg.Familiarity[0].Level != 40 {
		t.Errorf("regional world: countries %v familiarity %+v", reg.Countries, reg.Familiarity)
	}
}

func TestGenerateYouthIDs(t *testing.T) {
	youth := Default{}.GenerateYouth(rng.New("youth"), "England", 3, 5)
	for i, p := range youth {
		want := fmt.Sprintf("Y3-Eng-%d", i+1)
		if p.ID != want {
			t.Errorf("youth %d id = %s, want %s", i, p.ID, want)
		}
		if !p.Youth || p.Age < 14 || p.Age > 17 || p.PotentialAbility < p.CurrentAbility {
			t.Errorf("implausible youngster %+v", p)
		}
	}
}

func TestYouthVenuePool(t *testing.T) {
	pool := append(Default{}.GenerateYouth(rng.New("a"), "England", 1, 8), Default{}.GenerateYouth(rng.New("b"), "Spain", 1, 8)...)
	academy := Default{}.YouthVenuePool(rng.New("venue"), pool, models.ActAcademyVisit, "Spain")
	if len(academy) != 2 {
		t.Fatalf("academy pool = %d, want 2", len(academy))
	}
	for _, p := range academy {
		if p.Country != "Spain" {
			t.Errorf("academy in Spain showed %s from %s", p.ID, p.Country)
		}
	}
	if got := (Default{}).YouthVenuePool(rng.New("venue"), pool, models.ActYouthTournament, ""); len(got) != 4 {
		t.Errorf("tournament pool = %d, want 4", len(got))
	}
}

func TestRecommend(t *testing.T) {
	cases := map[float64]string{
		80: models.RecommendSign,
		70: models.RecommendSign,
		60: models.RecommendMonitor,
		40: models.RecommendPass,
	}
	for potential, want := range cases {
		if got := Recommend(potential); got != want {
			t.Errorf("Recommend(%v) = %s, want %s", potential, got, want)
		}
	}
}

func TestFinanceTickCopiesLedger(t *testing.T) {
	f := models.Finances{Balance: 100, Ledger: make([]models.LedgerEntry, 1, 8)}
	out := Default{}.FinanceTick(f, LedgerInput{Week: 4, Season: 1, Entries: []models.LedgerEntry{
		{Label: "salary", Amount: 50}, {Label: "nothing"}, {Label: "rent", Amount: -30},
	}})
	if out.Balance != 120 {
		t.Errorf("balance = %v, want 120", out.Balance)
	}
	if len(out.Ledger) != 3 || out.Ledger[1].Week != 4 {
		t.Errorf("ledger = %+v", out.Ledger)
	}
	if len(f.Ledger) != 1 || f.Ledger[:2][1].Label != "" {
		t.Error("input ledger modified")
	}
}

func TestStorylineTemplates(t *testing.T) {
	for _, tpl := range (Default{}).StorylineTemplates() {
		if len(tpl.Steps) == 0 {
			t.Errorf("%s has no steps", tpl.ID)
		}
		for i, st := range tpl.Steps {
			if st.Title == "" {
				t.Errorf("%s step %d has no title", tpl.ID, i)
			}
		}
	}
}
