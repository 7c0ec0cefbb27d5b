package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/tatianab/scout-career/internal/content"
	"github.com/tatianab/scout-career/internal/models"
)

func testGame() models.GameState {
	return content.NewGame(content.Default{}, content.NewGameOptions{
		Seed: "store", ScoutName: "Jo Park", Specialization: models.SpecYouth,
		WeeksPerSeason: 38, YouthPoolPerCountry: 8,
	})
}

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "saves", "career.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteSlotRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	g := testGame()
	g.CurrentWeek = 12
	g.Reviews = []models.PerformanceReview{{Season: 1, Outcome: models.OutcomeRetained, ReportsSubmitted: 6, AverageQuality: 58}}

	if err := db.SaveSlot(ctx, "main", g); err != nil {
		t.Fatalf("SaveSlot: %v", err)
	}
	got, err := db.LoadSlot(ctx, "main")
	if err != nil {
		t.Fatalf("LoadSlot: %v", err)
	}
	if got.CurrentWeek != 12 || got.Scout.Name != "Jo Park" || len(got.Players) != len(g.Players) {
		t.Errorf("loaded state differs: week %d scout %q players %d", got.CurrentWeek, got.Scout.Name, len(got.Players))
	}

	slots, err := db.Slots(ctx)
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	if len(slots) != 1 || slots[0].Name != "main" || slots[0].Week != 12 || slots[0].SavedAt.IsZero() {
		t.Errorf("slots = %+v", slots)
	}

	reviews, err := db.Reviews(ctx, "main")
	if err != nil {
		t.Fatalf("Reviews: %v", err)
	}
	if len(reviews) != 1 || reviews[0].Outcome != models.OutcomeRetained || reviews[0].ReportsSubmitted != 6 {
		t.Errorf("reviews = %+v", reviews)
	}
}

func TestSQLiteOverwriteAndDelete(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	g := testGame()

	saver := db.Slot("auto")
	if err := saver.Save(ctx, g); err != nil {
		t.Fatalf("Save: %v", err)
	}
	g.CurrentWeek = 5
	if err := saver.Save(ctx, g); err != nil {
		t.Fatalf("Save: %v", err)
	}
	slots, err := db.Slots(ctx)
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	if len(slots) != 1 || slots[0].Week != 5 {
		t.Fatalf("slots = %+v, want one slot at week 5", slots)
	}

	if err := db.DeleteSlot(ctx, "auto"); err != nil {
		t.Fatalf("DeleteSlot: %v", err)
	}
	if _, err := db.LoadSlot(ctx, "auto"); !errors.Is(err, ErrNoSlot) {
		t.Fatalf("LoadSlot after delete: err = %v, want ErrNoSlot", err)
	}
}

func TestOpenSQLiteEmptyPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

type countingSaver struct {
	calls int
	err   error
}

func (c *countingSaver) Save(context.Context, models.GameState) error {
	c.calls++
	return c.err
}

func TestSaversRunEveryTarget(t *testing.T) {
	boom := errors.New("boom")
	a, b := &countingSaver{err: boom}, &countingSaver{}
	err := Savers{a, b}.Save(context.Background(), testGame())
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if a.calls != 1 || b.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", a.calls, b.calls)
	}
}

func TestFileSaver(t *testing.T) {
	old := models.SaveDir
	models.SaveDir = t.TempDir()
	t.Cleanup(func() { models.SaveDir = old })

	g := testGame()
	if err := (FileSaver{Name: "slot1"}).Save(context.Background(), g); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := models.LoadState("slot1")
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if got.WorldSeed != g.WorldSeed {
		t.Errorf("seed = %q, want %q", got.WorldSeed, g.WorldSeed)
	}
}
