package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tatianab/scout-career/internal/config"
	"github.com/tatianab/scout-career/internal/engine"
	"github.com/tatianab/scout-career/internal/models"
)

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestNewCareerFlow(t *testing.T) {
	m := NewModel(engine.New(config.Defaults()), Options{Seed: "tui"})
	m = press(t, m, keys("Sam"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateChoosePath || m.scoutName != "Sam" {
		t.Fatalf("state = %v name = %q", m.state, m.scoutName)
	}
	m = press(t, m, keys("4"), keys("p"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != statePlanning {
		t.Fatalf("state = %v, want planning", m.state)
	}
	if m.game.Scout.Specialization != models.SpecData || m.game.Scout.CareerPath != models.PathIndependent {
		t.Errorf("scout = %s/%s", m.game.Scout.Specialization, m.game.Scout.CareerPath)
	}
}

func TestPlanningKeys(t *testing.T) {
	m := NewModel(engine.New(config.Defaults()), Options{Seed: "tui"})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEnter})

	m = press(t, m, keys("a"))
	if free := m.game.Schedule.FreeSlots(); free != 0 {
		t.Fatalf("auto-plan left %d free slots", free)
	}
	m = press(t, m, keys("d"))
	if m.game.Schedule.Slots[0] != "" {
		t.Fatal("remove did not free Monday")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.game.Schedule.Slots[0] == "" {
		t.Fatal("enter did not place an activity on Monday")
	}
}

func TestAdvanceMessageShowsSummary(t *testing.T) {
	eng := engine.New(config.Defaults())
	m := NewModel(eng, Options{Seed: "tui"})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, keys("a"))

	next, cmd := m.Update(keys("n"))
	m = next.(model)
	if m.state != stateAdvancing || cmd == nil {
		t.Fatalf("state = %v, want advancing with a command", m.state)
	}
	m = press(t, m, cmd())
	if m.state != stateSummary || m.summary == nil || m.game.CurrentWeek != 2 {
		t.Fatalf("state = %v week = %d", m.state, m.game.CurrentWeek)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != statePlanning {
		t.Errorf("state = %v, want planning", m.state)
	}
}

func TestMoney(t *testing.T) {
	if got := money(1234567); got != "£1,234,567" {
		t.Errorf("money = %q", got)
	}
}
