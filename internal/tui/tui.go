package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tatianab/scout-career/internal/chronicle"
	"github.com/tatianab/scout-career/internal/content"
	"github.com/tatianab/scout-career/internal/engine"
	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/store"
)

type sessionState int

const (
	stateInputName sessionState = iota
	stateChoosePath
	statePlanning
	stateAdvancing
	stateMatch
	stateSummary
	stateInbox
	stateError
)

// Options wires the optional collaborators of the career screen.
type Options struct {
	// State resumes a saved career; nil starts a new one.
	State     *models.GameState
	Seed      string
	Chronicle *chronicle.Chronicle
	WeekLog   *store.WeekLog
}

type model struct {
	state     sessionState
	engine    *engine.Engine
	opts      Options
	game      models.GameState
	textInput textinput.Model
	viewport  viewport.Model
	err       error
	width     int
	height    int

	scoutName string
	spec      models.Specialization
	path      models.CareerPath

	dayCursor int
	actCursor int
	targetIdx int

	preview     engine.WeekSimulation
	summary     *engine.WeekSummary
	celebration *engine.Celebration
	recap       string
	history     *chronicle.History
	notice      string
}

func NewModel(eng *engine.Engine, opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "Your scout's name..."
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 40

	m := model{
		state:     stateInputName,
		engine:    eng,
		opts:      opts,
		textInput: ti,
		spec:      models.SpecYouth,
		path:      models.PathClub,
		viewport:  viewport.New(80, 20),
		history:   &chronicle.History{},
	}
	if opts.State != nil {
		m.game = *opts.State
		m.state = statePlanning
		if m.game.ActiveMatch != nil {
			m.state = stateMatch
		}
	}
	return m
}

func (m model) Init() tea.Cmd {
	if m.state == stateInputName {
		return textinput.Blink
	}
	return nil
}

type weekAdvancedMsg struct {
	outcome engine.Outcome
}

type matchCompletedMsg struct {
	state models.GameState
	err   error
}

type recapMsg struct {
	text string
	err  error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.state {
		case stateInputName:
			return m.updateName(msg)
		case stateChoosePath:
			return m.updatePath(msg)
		case statePlanning:
			return m.updatePlanning(msg)
		case stateMatch:
			return m.updateMatch(msg)
		case stateSummary:
			return m.updateSummary(msg)
		case stateInbox:
			return m.updateInbox(msg)
		case stateError:
			if msg.Type == tea.KeyEsc || msg.String() == "q" {
				return m, tea.Quit
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.75)
		m.viewport.Height = max(msg.Height-8, 5)
		return m, nil

	case weekAdvancedMsg:
		out := msg.outcome
		m.game = out.State
		if !out.Advanced {
			m.state = stateMatch
			return m, nil
		}
		m.summary = out.Summary
		m.celebration = out.Celebration
		m.recap = ""
		m.notice = ""
		if m.opts.WeekLog != nil && out.Summary != nil {
			if err := m.opts.WeekLog.Append(*out.Summary); err != nil {
				m.notice = "week log: " + err.Error()
			}
		}
		m.state = stateSummary
		m.viewport.SetContent(m.renderSummary())
		m.viewport.GotoTop()
		if m.opts.Chronicle != nil && out.Summary != nil {
			return m, m.recapWeek(*out.Summary)
		}
		return m, nil

	case matchCompletedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.game = msg.state
		m.state = stateAdvancing
		return m, m.advance()

	case recapMsg:
		if msg.err != nil {
			m.notice = "chronicle: " + msg.err.Error()
		} else {
			m.recap = msg.text
		}
		if m.state == stateSummary {
			m.viewport.SetContent(m.renderSummary())
		}
		return m, nil
	}

	if m.state == stateInputName {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		m.scoutName = m.textInput.Value()
		if m.scoutName == "" {
			m.scoutName = "Alex Morgan"
		}
		m.state = stateChoosePath
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

var specializations = []models.Specialization{
	models.SpecYouth, models.SpecFirstTeam, models.SpecRegional, models.SpecData,
}

func (m model) updatePath(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "1", "2", "3", "4":
		m.spec = specializations[key[0]-'1']
	case "p":
		if m.path == models.PathClub {
			m.path = models.PathIndependent
		} else {
			m.path = models.PathClub
		}
	case "enter":
		seed := m.opts.Seed
		if seed == "" {
			seed = m.scoutName
		}
		tn := m.engine.Tuning()
		m.game = content.NewGame(m.engine.Generators(), content.NewGameOptions{
			Seed:                seed,
			ScoutName:           m.scoutName,
			Specialization:      m.spec,
			CareerPath:          m.path,
			WeeksPerSeason:      tn.WeeksPerSeason,
			YouthPoolPerCountry: tn.YouthPoolPerCountry,
		})
		m.state = statePlanning
	case "esc", "q":
		return m, tea.Quit
	}
	return m, nil
}

// plannable lists the activities the scout's specialization may schedule.
func (m model) plannable() []content.ActivitySpec {
	var out []content.ActivitySpec
	for _, a := range content.Catalog() {
		if a.Available(m.game.Scout.Specialization) {
			out = append(out, a)
		}
	}
	return out
}

func (m model) target(a content.ActivitySpec) string {
	switch a.Type {
	case models.ActAttendMatch:
		return engine.WeekFixture(m.game)
	case models.ActTravel, models.ActAcademyVisit, models.ActTrainingVisit:
		if len(m.game.Countries) == 0 {
			return ""
		}
		return m.game.Countries[m.targetIdx%len(m.game.Countries)]
	}
	return ""
}

func (m model) updatePlanning(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	acts := m.plannable()
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "left", "h":
		m.dayCursor = (m.dayCursor + models.DaysPerWeek - 1) % models.DaysPerWeek
	case "right", "l":
		m.dayCursor = (m.dayCursor + 1) % models.DaysPerWeek
	case "up", "k":
		m.actCursor = (m.actCursor + len(acts) - 1) % len(acts)
	case "down", "j":
		m.actCursor = (m.actCursor + 1) % len(acts)
	case "t":
		m.targetIdx++
	case "enter", " ":
		spec := acts[m.actCursor]
		g := m.game.Clone()
		a := content.NewActivity(g.NextID("activity"), spec.Type, m.dayCursor, m.target(spec))
		s, err := g.Schedule.AddActivity(a)
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}
		g.Schedule = s
		m.game = g
		m.notice = ""
	case "backspace", "d":
		if id := m.game.Schedule.Slots[m.dayCursor]; id != "" {
			g := m.game.Clone()
			g.Schedule = g.Schedule.RemoveActivity(id)
			m.game = g
		}
	case "a":
		m.game = engine.AutoPlan(m.game)
	case "x":
		m.engine.ClearAutosaveError()
	case "i":
		m.state = stateInbox
		m.viewport.SetContent(m.renderInbox())
		m.viewport.GotoTop()
	case "n":
		m.preview = m.engine.PreviewWeek(m.game)
		m.state = stateAdvancing
		return m, m.advance()
	}
	return m, nil
}

func (m model) updateMatch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		if m.game.ActiveMatch == nil {
			m.state = statePlanning
			return m, nil
		}
		return m, m.completeMatch(m.game.ActiveMatch.FixtureID)
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ":
		m.state = statePlanning
		m.celebration = nil
		return m, nil
	case "q":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// openEvent returns the oldest narrative event still waiting on the player.
func openEvent(g models.GameState) (models.NarrativeEvent, bool) {
	for _, ev := range g.NarrativeEvents {
		if !ev.Acknowledged {
			return ev, true
		}
	}
	return models.NarrativeEvent{}, false
}

func (m model) updateInbox(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case key == "esc" || key == "enter":
		g := m.game.Clone()
		for _, im := range g.Inbox {
			if !im.ActionRequired {
				g.MarkRead(im.ID)
			}
		}
		m.game = g
		m.state = statePlanning
		return m, nil
	case key == "q":
		return m, tea.Quit
	case key == "k":
		if ev, ok := openEvent(m.game); ok && len(ev.Choices) == 0 {
			g := m.game.Clone()
			if err := g.Acknowledge(ev.ID); err != nil {
				m.notice = err.Error()
			} else {
				m.game = g
			}
		}
	case len(key) == 1 && key[0] >= '1' && key[0] <= '9':
		if ev, ok := openEvent(m.game); ok && len(ev.Choices) > 0 {
			g := m.game.Clone()
			if err := g.QueueChoice(ev.ID, int(key[0]-'1')); err != nil {
				m.notice = err.Error()
			} else {
				m.game = g
				m.notice = fmt.Sprintf("Choice queued for %q; it takes effect next week.", ev.Title)
			}
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	m.viewport.SetContent(m.renderInbox())
	return m, nil
}

func (m model) advance() tea.Cmd {
	g := m.game
	return func() tea.Msg {
		return weekAdvancedMsg{m.engine.AdvanceWeek(context.Background(), g)}
	}
}

func (m model) completeMatch(fixtureID string) tea.Cmd {
	g := m.game
	return func() tea.Msg {
		state, err := m.engine.CompleteMatch(g, fixtureID)
		return matchCompletedMsg{state, err}
	}
}

func (m model) recapWeek(s engine.WeekSummary) tea.Cmd {
	g := m.game
	h := m.history
	return func() tea.Msg {
		text, err := m.opts.Chronicle.RecapWeek(context.Background(), g, s, h)
		return recapMsg{text, err}
	}
}

// Run starts the career screen and returns the final state.
func Run(eng *engine.Engine, opts Options) (models.GameState, error) {
	p := tea.NewProgram(NewModel(eng, opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return models.GameState{}, err
	}
	return final.(model).game, nil
}
