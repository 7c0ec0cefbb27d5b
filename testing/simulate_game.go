package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tatianab/scout-career/internal/chronicle"
	"github.com/tatianab/scout-career/internal/config"
	"github.com/tatianab/scout-career/internal/content"
	"github.com/tatianab/scout-career/internal/engine"
	"github.com/tatianab/scout-career/internal/logging"
	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/store"
)

func main() {
	ctx := context.Background()

	weeks := flag.Int("weeks", 10, "number of weeks to simulate")
	seed := flag.String("seed", "simulation", "world seed")
	spec := flag.String("spec", string(models.SpecYouth), "specialization: youth, first-team, regional or data")
	independent := flag.Bool("independent", false, "start as an independent scout")
	recap := flag.Bool("recap", false, "narrate each week with Gemini (needs GEMINI_API_KEY)")
	weekLog := flag.String("weeklog", "", "directory for the compressed week log")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	tuning, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		log.Fatalf("Failed to load tuning: %v", err)
	}
	logger, err := logging.New(cfg.LogPath)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer logger.Close()

	eng := engine.New(tuning, engine.WithLogger(logger.Slog()))

	var (
		narrator *chronicle.Chronicle
		history  chronicle.History
	)
	if *recap {
		narrator, err = chronicle.New(ctx, cfg.GeminiAPIKey, logger.Slog())
		if err != nil {
			log.Fatalf("Failed to create chronicle: %v", err)
		}
		defer narrator.Close()
	}
	var wl *store.WeekLog
	if *weekLog != "" {
		wl = store.NewWeekLog(*weekLog)
		defer wl.Close()
	}

	path := models.PathClub
	if *independent {
		path = models.PathIndependent
	}
	g := content.NewGame(eng.Generators(), content.NewGameOptions{
		Seed:                *seed,
		ScoutName:           "Sim Scout",
		Specialization:      models.Specialization(*spec),
		CareerPath:          path,
		WeeksPerSeason:      tuning.WeeksPerSeason,
		YouthPoolPerCountry: tuning.YouthPoolPerCountry,
	})

	p := message.NewPrinter(language.English)
	p.Printf("--- %s scout, seed %q, %d weeks ---\n\n", g.Scout.Specialization, *seed, *weeks)

	for i := 1; i <= *weeks; i++ {
		out := eng.AdvanceWeek(ctx, engine.AutoPlan(g))
		if !out.Advanced {
			p.Printf("Matchday: %s\n", out.Match.FixtureID)
			g, err = eng.CompleteMatch(out.State, out.Match.FixtureID)
			if err != nil {
				log.Fatalf("Failed to complete match: %v", err)
			}
			out = eng.AdvanceWeek(ctx, g)
			if !out.Advanced {
				log.Fatalf("Week still gated after the match on %s", out.Match.FixtureID)
			}
		}
		g = out.State
		s := out.Summary

		p.Printf("--- Season %d, week %d ---\n", s.Season, s.Week)
		for _, q := range s.Quality {
			p.Printf("  %-20s %-9s x%.2f\n", q.Activity, q.Tier, q.Multiplier)
		}
		p.Printf("Fatigue %+.0f, matches %d, reports %d, meetings %d\n", s.FatigueChange, s.MatchesAttended, s.ReportsWritten, s.MeetingsHeld)
		p.Printf("Observations %d, discoveries %d, new messages %d\n", s.ObservationsGenerated, len(s.Discoveries), s.NewMessages)
		if f := s.Finances; f != nil {
			p.Printf("Payday: income £%.0f, expenses £%.0f, balance £%.0f\n", f.Income, f.Expenses, f.Balance)
		}
		if rv := s.Review; rv != nil {
			p.Printf("SEASON REVIEW: %s (%d reports, quality %.0f)\n", rv.Outcome, rv.ReportsSubmitted, rv.AverageQuality)
		}
		if c := out.Celebration; c != nil {
			p.Printf("*** %s %s ***\n", c.Title, c.Description)
		}
		if wl != nil {
			if err := wl.Append(*s); err != nil {
				log.Printf("week log: %v", err)
			}
		}
		if narrator != nil {
			text, err := narrator.RecapWeek(ctx, g, *s, &history)
			if err != nil {
				fmt.Printf("Recap failed: %v\n", err)
			} else {
				fmt.Printf("Chronicle: %s\n", text)
			}
		}
		fmt.Println()
	}

	p.Printf("Final: reputation %.1f, %d reports, %d discoveries, %d messages in inbox\n",
		g.Scout.Reputation, len(g.Reports), len(g.Discoveries), len(g.Inbox))
}
