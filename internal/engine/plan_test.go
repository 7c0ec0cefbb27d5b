package engine

import (
	"bytes"
	"testing"

	"github.com/tatianab/scout-career/internal/config"
	"github.com/tatianab/scout-career/internal/models"
)

func TestAutoPlanFillsWeek(t *testing.T) {
	tn := config.Defaults()
	for _, spec := range []models.Specialization{models.SpecYouth, models.SpecFirstTeam, models.SpecRegional, models.SpecData} {
		g := newGame(t, "plan", spec, tn)
		planned := AutoPlan(g)
		if free := planned.Schedule.FreeSlots(); free != 0 {
			t.Errorf("%s: %d free slots after AutoPlan", spec, free)
		}
		if g.Schedule.FreeSlots() != models.DaysPerWeek {
			t.Errorf("%s: AutoPlan modified its input", spec)
		}
	}
}

func TestAutoPlanKeepsExistingActivities(t *testing.T) {
	tn := config.Defaults()
	g := newGame(t, "plan", models.SpecData, tn)
	g = schedule(t, g, models.ActRest, 3, "")
	id := g.Schedule.Slots[3]

	planned := AutoPlan(g)
	if planned.Schedule.Slots[3] != id {
		t.Errorf("slot 3 = %q, want existing %q", planned.Schedule.Slots[3], id)
	}
}

func TestAutoPlanFirstTeamAttendsClubFixture(t *testing.T) {
	tn := config.Defaults()
	g := newGame(t, "plan", models.SpecFirstTeam, tn)
	planned := AutoPlan(g)
	pending := PendingFixtures(planned)
	if len(pending) != 1 {
		t.Fatalf("pending fixtures = %v, want one club fixture", pending)
	}
	f, ok := planned.Fixture(pending[0])
	if !ok {
		t.Fatalf("fixture %s not in world", pending[0])
	}
	club := planned.Scout.CurrentClubID
	if f.HomeClubID != club && f.AwayClubID != club {
		t.Errorf("fixture %s does not involve %s", f.ID, club)
	}
}

func TestPreviewWeek(t *testing.T) {
	tn := config.Defaults()
	e := New(tn)
	g := newGame(t, "preview", models.SpecRegional, tn)
	g = schedule(t, g, models.ActTravel, 1, "Spain")
	g = schedule(t, g, models.ActWatchVideo, 4, "")
	before := digest(t, g)

	sim := e.PreviewWeek(g)
	if sim.Days[1].ActivityID == "" || sim.Days[1].ActivityID != sim.Days[2].ActivityID {
		t.Fatalf("travel should cover Tue and Wed: %+v %+v", sim.Days[1], sim.Days[2])
	}
	if sim.Days[1].Tier != sim.Days[2].Tier {
		t.Errorf("multi-day activity rolled twice: %s vs %s", sim.Days[1].Tier, sim.Days[2].Tier)
	}
	if sim.Days[0].Activity != "" || sim.Days[0].Label != "Free day" {
		t.Errorf("Mon = %+v, want free day", sim.Days[0])
	}
	if sim.Days[4].Activity != models.ActWatchVideo {
		t.Errorf("Fri = %s, want video", sim.Days[4].Activity)
	}
	if !bytes.Equal(before, digest(t, g)) {
		t.Error("PreviewWeek modified the state")
	}
	if again := e.PreviewWeek(g); again != sim {
		t.Error("preview is not deterministic")
	}
}
