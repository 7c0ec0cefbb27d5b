// Package engine advances a career one week at a time. AdvanceWeek threads
// an immutable GameState through a fixed list of stages and returns the new
// state together with a summary for the UI.
package engine

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tatianab/scout-career/internal/config"
	"github.com/tatianab/scout-career/internal/content"
	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/rng"
)

const tracerName = "github.com/tatianab/scout-career/internal/engine"

// Engine owns everything a tick needs besides the state itself.
type Engine struct {
	tuning config.Tuning
	gen    content.Generators
	log    *slog.Logger
	tracer trace.Tracer
	saves  *autosaver
}

// Option configures an Engine.
type Option func(*Engine)

// WithGenerators replaces the built-in content generators.
func WithGenerators(g content.Generators) Option {
	return func(e *Engine) { e.gen = g }
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithSaver enables asynchronous autosave after every committed tick.
func WithSaver(s Saver) Option {
	return func(e *Engine) { e.saves = newAutosaver(s) }
}

// New builds an engine with the given tuning.
func New(t config.Tuning, opts ...Option) *Engine {
	e := &Engine{
		tuning: t,
		gen:    content.Default{},
		log:    slog.New(slog.DiscardHandler),
		tracer: otel.Tracer(tracerName),
		saves:  newAutosaver(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.saves.log = e.log
	return e
}

// Tuning returns the balance knobs the engine runs with.
func (e *Engine) Tuning() config.Tuning { return e.tuning }

// Generators returns the content generators the engine calls.
func (e *Engine) Generators() content.Generators { return e.gen }

// Outcome is the single value a tick commits.
type Outcome struct {
	State       models.GameState
	Summary     *WeekSummary
	Celebration *Celebration
	// Advanced is false when the match gate deferred the tick.
	Advanced bool
	Match    *models.ActiveMatch
}

// AdvanceWeek runs one tick. When a scheduled match is still unplayed the
// week does not advance: the returned state carries ActiveMatch for the first
// pending fixture and the caller is expected to run the match flow and call
// AdvanceWeek again.
func (e *Engine) AdvanceWeek(ctx context.Context, g models.GameState) Outcome {
	ctx, span := e.tracer.Start(ctx, "engine.AdvanceWeek", trace.WithAttributes(
		attribute.Int("week", g.CurrentWeek),
		attribute.Int("season", g.CurrentSeason),
	))
	defer span.End()

	if fixtureID, blocked := e.gate(g); blocked {
		out := g.Clone()
		out.ActiveMatch = &models.ActiveMatch{FixtureID: fixtureID}
		e.log.Info("tick gated on match", "fixture", fixtureID, "week", g.CurrentWeek, "season", g.CurrentSeason)
		span.SetAttributes(attribute.String("gated_fixture", fixtureID))
		return Outcome{State: out, Match: out.ActiveMatch}
	}

	t := e.newTick(ctx, g)
	final := e.runStages(t, g, pipeline)
	e.log.Info("week advanced",
		"week", t.week, "season", t.season,
		"observations", t.res.ObservationsGenerated,
		"discoveries", len(t.res.NewDiscoveries),
		"season_boundary", t.res.SeasonBoundary,
	)
	summary := t.summary
	return Outcome{
		State:       final,
		Summary:     &summary,
		Celebration: t.celebration,
		Advanced:    true,
	}
}

// tick is the per-call context shared by the stages.
type tick struct {
	e      *Engine
	ctx    context.Context
	seed   string
	week   int
	season int
	abs    int

	res         WeekResult
	seenInbox   map[string]bool
	summary     WeekSummary
	celebration *Celebration
}

func (e *Engine) newTick(ctx context.Context, g models.GameState) *tick {
	seen := make(map[string]bool, len(g.Inbox))
	for _, m := range g.Inbox {
		seen[m.ID] = true
	}
	return &tick{
		e:         e,
		ctx:       ctx,
		seed:      g.WorldSeed,
		week:      g.CurrentWeek,
		season:    g.CurrentSeason,
		abs:       models.AbsoluteWeek(g.CurrentSeason, g.CurrentWeek, e.tuning.WeeksPerSeason),
		res:       newWeekResult(),
		seenInbox: seen,
	}
}

// stream derives the random stream for purpose in the week being played.
func (t *tick) stream(purpose string, entityIDs ...string) *rng.Stream {
	return rng.For(t.seed, purpose, t.week, t.season, entityIDs...)
}

func (t *tick) message(g *models.GameState, typ, title, body, related string, actionRequired bool) {
	g.AddMessage(models.InboxMessage{
		Type:           typ,
		Title:          title,
		Body:           body,
		RelatedID:      related,
		ActionRequired: actionRequired,
	})
}
