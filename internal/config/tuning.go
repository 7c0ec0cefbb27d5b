package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed tuning.yaml
var defaultTuningYAML []byte

// Tuning holds the balance knobs of the weekly engine.
type Tuning struct {
	WeeksPerSeason          int     `yaml:"weeks_per_season"`
	WeeksPerMonth           int     `yaml:"weeks_per_month"`
	InboxCap                int     `yaml:"inbox_cap"`
	NarrativeRetentionWeeks int     `yaml:"narrative_retention_weeks"`
	MaxCareerTier           int     `yaml:"max_career_tier"`
	MaxIndependentTier      int     `yaml:"max_independent_tier"`
	FatigueDecay            float64 `yaml:"fatigue_decay"`
	ContactEveryWeeks       int     `yaml:"contact_every_weeks"`
	ContactChance           float64 `yaml:"contact_chance"`
	WeeklyEventChance       float64 `yaml:"weekly_event_chance"`
	StorylineTriggerChance  float64 `yaml:"storyline_trigger_chance"`
	StorylineStepWeeks      int     `yaml:"storyline_step_weeks"`
	AssignmentEveryWeeks    int     `yaml:"assignment_every_weeks"`
	AssignmentLifetimeWeeks int     `yaml:"assignment_lifetime_weeks"`
	TransferUrgencyWeeks    int     `yaml:"transfer_urgency_weeks"`
	TransferChance          float64 `yaml:"transfer_chance"`
	RetroScoreMinSeasons    int     `yaml:"retro_score_min_seasons"`
	WonderkidPotential      float64 `yaml:"wonderkid_potential"`
	WonderkidMaxAge         int     `yaml:"wonderkid_max_age"`
	YouthPoolPerCountry     int     `yaml:"youth_pool_per_country"`
	PromotionQuality        float64 `yaml:"promotion_quality"`
	PromotionReports        int     `yaml:"promotion_reports"`
	DemotionReports         int     `yaml:"demotion_reports"`
}

// Defaults returns the embedded tuning.
func Defaults() Tuning {
	var t Tuning
	if err := yaml.Unmarshal(defaultTuningYAML, &t); err != nil {
		panic(fmt.Sprintf("embedded tuning.yaml: %v", err))
	}
	return t
}

// LoadTuning overlays the file at path on the defaults. An empty path
// returns the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := Defaults()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("load tuning: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// Validate rejects values the engine cannot run with.
func (t Tuning) Validate() error {
	switch {
	case t.WeeksPerSeason < 4:
		return fmt.Errorf("tuning: weeks_per_season must be >= 4, got %d", t.WeeksPerSeason)
	case t.WeeksPerMonth < 1:
		return fmt.Errorf("tuning: weeks_per_month must be >= 1, got %d", t.WeeksPerMonth)
	case t.InboxCap < 1:
		return fmt.Errorf("tuning: inbox_cap must be >= 1, got %d", t.InboxCap)
	case t.MaxCareerTier < 1:
		return fmt.Errorf("tuning: max_career_tier must be >= 1, got %d", t.MaxCareerTier)
	}
	return nil
}
