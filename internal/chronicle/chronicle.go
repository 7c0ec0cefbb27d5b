// Package chronicle writes optional prose recaps of simulated weeks with a
// Gemini model. The simulation never depends on it.
package chronicle

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/scout-career/internal/engine"
	"github.com/tatianab/scout-career/internal/models"
)

//go:embed prompts/recap_week.txt
var recapWeekPrompt string

//go:embed prompts/summarize_history.txt
var summarizeHistoryPrompt string

var (
	recapTmpl     = template.Must(template.New("recap_week").Parse(recapWeekPrompt))
	summarizeTmpl = template.Must(template.New("summarize_history").Parse(summarizeHistoryPrompt))
)

// ModelName is the Gemini model used for recaps.
const ModelName = "gemini-2.5-flash"

// maxEntries is how many recaps are kept verbatim before folding them into
// the summary.
const maxEntries = 8

// ErrNoContent is returned when the model answers without text.
var ErrNoContent = errors.New("no content returned from Gemini")

type textModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Entry is one recap.
type Entry struct {
	Week   int    `yaml:"week"`
	Season int    `yaml:"season"`
	Recap  string `yaml:"recap"`
}

// History is the running story fed back into every prompt.
type History struct {
	Summary string  `yaml:"summary,omitempty"`
	Entries []Entry `yaml:"entries,omitempty"`
}

// Text renders the history for a prompt.
func (h History) Text() string {
	var b strings.Builder
	if h.Summary != "" {
		b.WriteString(h.Summary)
	}
	for _, e := range h.Entries {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(e.Recap)
	}
	return b.String()
}

// Chronicle talks to the model.
type Chronicle struct {
	client *genai.Client
	model  textModel
	log    *slog.Logger
}

// New connects to Gemini with apiKey.
func New(ctx context.Context, apiKey string, log *slog.Logger) (*Chronicle, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("chronicle: missing API key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Chronicle{client: client, model: client.GenerativeModel(ModelName), log: log}, nil
}

// Close releases the client.
func (c *Chronicle) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

type recapData struct {
	ScoutName      string
	Specialization models.Specialization
	Reputation     float64
	Week, Season   int
	History        string
	Counts         map[string]int
	Matches        int
	Reports        int
	Meetings       int
	Observations   int
	Discoveries    int
	Headlines      []string
	SeasonEnded    bool
	ReviewOutcome  string
}

// maxHeadlines caps the inbox titles quoted in a prompt.
const maxHeadlines = 5

func renderRecap(g models.GameState, s engine.WeekSummary, h History) (string, error) {
	d := recapData{
		ScoutName:      g.Scout.Name,
		Specialization: g.Scout.Specialization,
		Reputation:     g.Scout.Reputation,
		Week:           s.Week,
		Season:         s.Season,
		History:        h.Text(),
		Counts:         s.ActivityCounts,
		Matches:        s.MatchesAttended,
		Reports:        s.ReportsWritten,
		Meetings:       s.MeetingsHeld,
		Observations:   s.ObservationsGenerated,
		Discoveries:    len(s.Discoveries),
		SeasonEnded:    s.SeasonEnded,
	}
	if s.Review != nil {
		d.ReviewOutcome = s.Review.Outcome
	}
	for i := max(len(g.Inbox)-s.NewMessages, 0); i < len(g.Inbox) && len(d.Headlines) < maxHeadlines; i++ {
		d.Headlines = append(d.Headlines, g.Inbox[i].Title)
	}
	var buf bytes.Buffer
	if err := recapTmpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RecapWeek narrates the committed week and appends the recap to h. The
// history is folded into a summary once it grows past a handful of entries.
func (c *Chronicle) RecapWeek(ctx context.Context, g models.GameState, s engine.WeekSummary, h *History) (string, error) {
	if len(h.Entries) > maxEntries {
		if err := c.summarize(ctx, h); err != nil {
			c.log.Warn("failed to summarize chronicle history", "err", err)
		}
	}
	prompt, err := renderRecap(g, s, *h)
	if err != nil {
		return "", fmt.Errorf("render recap: %w", err)
	}
	text, err := c.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("recap week %d: %w", s.Week, err)
	}
	h.Entries = append(h.Entries, Entry{Week: s.Week, Season: s.Season, Recap: text})
	return text, nil
}

func (c *Chronicle) summarize(ctx context.Context, h *History) error {
	var buf bytes.Buffer
	if err := summarizeTmpl.Execute(&buf, h); err != nil {
		return err
	}
	text, err := c.generate(ctx, buf.String())
	if err != nil {
		return err
	}
	h.Summary = text
	h.Entries = nil
	return nil
}

func (c *Chronicle) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return firstText(resp)
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoContent
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	clean := strings.TrimSpace(string(text))
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean), nil
}
