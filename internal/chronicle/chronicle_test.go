package chronicle

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"github.com/tatianab/scout-career/internal/engine"
	"github.com/tatianab/scout-career/internal/models"
)

type fakeModel struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakeModel) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	if len(parts) > 0 {
		if txt, ok := parts[0].(genai.Text); ok {
			f.prompts = append(f.prompts, string(txt))
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []genai.Part{genai.Text(f.reply)}},
	}}}, nil
}

func testState() models.GameState {
	return models.GameState{
		Scout: models.Scout{Name: "Alex Doe", Specialization: models.SpecYouth, Reputation: 31},
		Inbox: []models.InboxMessage{
			{Title: "Welcome aboard"},
			{Title: "Wonderkid spotted: Leo Silva"},
		},
	}
}

func TestRenderRecap(t *testing.T) {
	s := engine.WeekSummary{
		Week: 4, Season: 2, MatchesAttended: 1,
		ActivityCounts: map[string]int{"rest": 2, "academy_visit": 1},
		Discoveries:    []string{"d1"},
		NewMessages:    1,
	}
	prompt, err := renderRecap(testState(), s, History{Summary: "A quiet start."})
	if err != nil {
		t.Fatalf("renderRecap: %v", err)
	}
	for _, want := range []string{"Alex Doe", "Week 4 of season 2", "academy_visit x1; rest x2;", "A quiet start.", "- Wonderkid spotted: Leo Silva"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "Welcome aboard") {
		t.Error("prompt quotes messages from earlier weeks")
	}
}

func TestRecapWeekAppendsHistory(t *testing.T) {
	m := &fakeModel{reply: "```\nYou spent the week on the road.\n```"}
	c := &Chronicle{model: m, log: slog.New(slog.DiscardHandler)}
	var h History

	got, err := c.RecapWeek(context.Background(), testState(), engine.WeekSummary{Week: 1, Season: 1}, &h)
	if err != nil {
		t.Fatalf("RecapWeek: %v", err)
	}
	if got != "You spent the week on the road." {
		t.Errorf("recap = %q", got)
	}
	if len(h.Entries) != 1 || h.Entries[0].Recap != got {
		t.Errorf("history = %+v", h)
	}
}

func TestRecapWeekSummarizesLongHistory(t *testing.T) {
	m := &fakeModel{reply: "Condensed."}
	c := &Chronicle{model: m, log: slog.New(slog.DiscardHandler)}
	h := History{}
	for i := 0; i <= maxEntries; i++ {
		h.Entries = append(h.Entries, Entry{Week: i + 1, Season: 1, Recap: "week"})
	}

	if _, err := c.RecapWeek(context.Background(), testState(), engine.WeekSummary{Week: 10, Season: 1}, &h); err != nil {
		t.Fatalf("RecapWeek: %v", err)
	}
	if len(m.prompts) != 2 || !strings.Contains(m.prompts[0], "Condense") {
		t.Fatalf("expected a summarize call before the recap, got %d prompts", len(m.prompts))
	}
	if h.Summary != "Condensed." || len(h.Entries) != 1 {
		t.Errorf("history = %+v", h)
	}
}

func TestRecapWeekError(t *testing.T) {
	boom := errors.New("quota")
	c := &Chronicle{model: &fakeModel{err: boom}, log: slog.New(slog.DiscardHandler)}
	var h History
	if _, err := c.RecapWeek(context.Background(), testState(), engine.WeekSummary{Week: 1, Season: 1}, &h); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want quota", err)
	}
	if len(h.Entries) != 0 {
		t.Error("failed recap was recorded")
	}
}

func TestFirstTextEmpty(t *testing.T) {
	if _, err := firstText(&genai.GenerateContentResponse{}); !errors.Is(err, ErrNoContent) {
		t.Fatalf("err = %v, want ErrNoContent", err)
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(context.Background(), "", nil); err == nil {
		t.Fatal("expected error without API key")
	}
}
