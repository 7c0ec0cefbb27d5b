package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tatianab/scout-career/internal/engine"
	"github.com/tatianab/scout-career/internal/models"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	sideStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)

	celebrationStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("#FFD700")).
				Padding(0, 2).
				Bold(true)
)

var printer = message.NewPrinter(language.English)

// money renders an amount with thousands separators.
func money(v float64) string {
	return printer.Sprintf("£%.0f", v)
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateInputName:
		s = fmt.Sprintf("Welcome to your scouting career!\n\n%s\n\n%s",
			"What is your scout called?", m.textInput.View())

	case stateChoosePath:
		var b strings.Builder
		fmt.Fprintf(&b, "Choose a specialization for %s:\n\n", m.scoutName)
		for i, sp := range specializations {
			line := fmt.Sprintf("%d. %s", i+1, sp)
			if sp == m.spec {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
		fmt.Fprintf(&b, "\nCareer path: %s\n\n", m.path)
		b.WriteString(helpStyle.Render("1-4 pick a specialization, p toggles club/independent, enter starts."))
		s = b.String()

	case statePlanning:
		s = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, m.renderPlanner(), m.renderScout()),
			m.renderFooter(),
			helpStyle.Render("←/→ day, ↑/↓ activity, t target, enter place, d remove, a auto-plan, i inbox, n advance, x dismiss, q quit"),
		)

	case stateAdvancing:
		s = m.renderPreview() + "\n  Simulating the week...\n"

	case stateMatch:
		s = m.renderMatch()

	case stateSummary, stateInbox:
		help := "↑/↓ scroll, enter to continue"
		if m.state == stateInbox {
			help = "1-9 choose, k acknowledge, enter back"
		}
		s = lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.renderFooter(), helpStyle.Render(help))

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) renderPlanner() string {
	g := m.game
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("SEASON %d · WEEK %d", g.CurrentSeason, g.CurrentWeek)) + "\n\n")

	byID := map[string]models.Activity{}
	for _, a := range g.Schedule.Activities {
		byID[a.ID] = a
	}
	for i, id := range g.Schedule.Slots {
		label := "free"
		if a, ok := byID[id]; ok {
			label = a.Description
			if a.TargetID != "" {
				label += " (" + a.TargetID + ")"
			}
		}
		line := fmt.Sprintf("%s  %s", models.DayNames[i], label)
		if i == m.dayCursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("ACTIVITIES") + "\n")
	for i, a := range m.plannable() {
		line := fmt.Sprintf("%-22s %d day(s)  fatigue %+.0f", a.Label, a.SlotCost, a.Fatigue)
		if i == m.actCursor {
			line = selectedStyle.Render(line)
			if t := m.target(a); t != "" {
				line += "  → " + t
			}
		}
		b.WriteString(line + "\n")
	}
	return textStyle.Width(max(int(float64(m.width)*0.6), 40)).Render(b.String())
}

func (m model) renderScout() string {
	g := m.game
	sc := g.Scout
	var b strings.Builder
	b.WriteString(titleStyle.Render("SCOUT") + "\n")
	fmt.Fprintf(&b, "%s\n%s · %s\n", sc.Name, sc.Specialization, sc.CareerPath)
	fmt.Fprintf(&b, "Reputation %.0f\nFatigue %.0f\n", sc.Reputation, sc.Fatigue)
	if sc.CareerPath == models.PathIndependent {
		fmt.Fprintf(&b, "Independent tier %d\n", sc.IndependentTier)
	} else {
		fmt.Fprintf(&b, "Career tier %d\n", sc.CareerTier)
	}
	if club, ok := g.Club(sc.CurrentClubID); ok {
		fmt.Fprintf(&b, "Club %s\n", club.Name)
	}
	if g.Finances != nil {
		fmt.Fprintf(&b, "Balance %s\n", money(g.Finances.Balance))
	}
	if g.TransferWindowOpen {
		b.WriteString("Transfer window OPEN\n")
	}

	b.WriteString("\n" + titleStyle.Render("SKILLS") + "\n")
	for _, k := range models.SkillNames {
		fmt.Fprintf(&b, "%-18s %4.1f\n", k, sc.Skills[k])
	}

	unread := 0
	for _, msg := range g.Inbox {
		if !msg.Read {
			unread++
		}
	}
	fmt.Fprintf(&b, "\nInbox: %d unread\nDiscoveries: %d\n", unread, len(g.Discoveries))
	return sideStyle.Width(max(int(float64(m.width)*0.35), 30)).Render(b.String())
}

func (m model) renderFooter() string {
	var lines []string
	if msg := m.engine.AutosaveError(); msg != "" {
		lines = append(lines, warnStyle.Render("Autosave failed: "+msg+" (x to dismiss)"))
	}
	if m.notice != "" {
		lines = append(lines, helpStyle.Render(m.notice))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderPreview() string {
	var b strings.Builder
	for _, d := range m.preview.Days {
		if d.Activity == "" {
			fmt.Fprintf(&b, "  %s  %s\n", d.Day, d.Label)
			continue
		}
		fmt.Fprintf(&b, "  %s  %-22s %-9s %s\n", d.Day, d.Label, d.Tier, d.Narrative)
	}
	return b.String()
}

func (m model) renderMatch() string {
	g := m.game
	if g.ActiveMatch == nil {
		return "No match in progress. Press enter."
	}
	f, ok := g.Fixture(g.ActiveMatch.FixtureID)
	if !ok {
		return "Unknown fixture " + g.ActiveMatch.FixtureID
	}
	home, _ := g.Club(f.HomeClubID)
	away, _ := g.Club(f.AwayClubID)
	return fmt.Sprintf("%s\n\n  %s vs %s\n\n%s",
		titleStyle.Render("MATCHDAY"), home.Name, away.Name,
		helpStyle.Render("Press enter to watch the match and take notes."))
}

func (m model) renderSummary() string {
	s := m.summary
	if s == nil {
		return ""
	}
	var b strings.Builder
	if c := m.celebration; c != nil {
		b.WriteString(celebrationStyle.Render(celebrationIcon(c.Kind)+" "+c.Title+"\n"+c.Description) + "\n\n")
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("WEEK %d SUMMARY", s.Week)) + "\n\n")
	for _, q := range s.Quality {
		fmt.Fprintf(&b, "%-20s x%d  %-9s %s\n", q.Activity, s.ActivityCounts[q.Activity], q.Tier, q.Narrative)
	}
	fmt.Fprintf(&b, "\nFatigue %+.0f\n", s.FatigueChange)
	printer.Fprintf(&b, "Matches %d · Reports %d · Meetings %d\n", s.MatchesAttended, s.ReportsWritten, s.MeetingsHeld)
	printer.Fprintf(&b, "Observations %d · Discoveries %d · New messages %d\n", s.ObservationsGenerated, len(s.Discoveries), s.NewMessages)
	for _, k := range sortedSkills(s.SkillXP) {
		fmt.Fprintf(&b, "  %s %+.1f xp\n", k, s.SkillXP[k])
	}
	if f := s.Finances; f != nil {
		fmt.Fprintf(&b, "\nPayday: income %s, expenses %s, balance %s\n", money(f.Income), money(f.Expenses), money(f.Balance))
	}
	for _, id := range s.ToolsUnlocked {
		fmt.Fprintf(&b, "Tool unlocked: %s\n", id)
	}
	if rv := s.Review; rv != nil {
		fmt.Fprintf(&b, "\n%s\nOutcome: %s · %d reports · average quality %.0f · reputation %+.0f\n",
			titleStyle.Render("SEASON REVIEW"), rv.Outcome, rv.ReportsSubmitted, rv.AverageQuality, rv.ReputationDelta)
	}
	if m.recap != "" {
		b.WriteString("\n" + titleStyle.Render("CHRONICLE") + "\n" + m.recap + "\n")
	} else if m.opts.Chronicle != nil {
		b.WriteString("\n" + helpStyle.Render("Writing this week's chronicle...") + "\n")
	}
	return textStyle.Width(max(m.viewport.Width, 40)).Render(b.String())
}

func sortedSkills(xp map[string]float64) []string {
	var out []string
	for _, k := range models.SkillNames {
		if xp[k] != 0 {
			out = append(out, k)
		}
	}
	return out
}

func (m model) renderInbox() string {
	g := m.game
	var b strings.Builder
	if ev, ok := openEvent(g); ok {
		b.WriteString(titleStyle.Render("DECISION") + "\n")
		fmt.Fprintf(&b, "%s\n%s\n", ev.Title, ev.Body)
		for i, c := range ev.Choices {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, c.Label)
		}
		for _, pc := range g.PendingChoices {
			if pc.EventID == ev.ID {
				fmt.Fprintf(&b, "  queued: option %d\n", pc.ChoiceIndex+1)
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(titleStyle.Render("INBOX") + "\n")
	for i := len(g.Inbox) - 1; i >= 0; i-- {
		msg := g.Inbox[i]
		mark := " "
		switch {
		case msg.ActionRequired && !msg.Read:
			mark = "!"
		case !msg.Read:
			mark = "•"
		}
		fmt.Fprintf(&b, "%s S%d W%-2d %s\n", mark, msg.Season, msg.Week, msg.Title)
		if msg.Body != "" {
			fmt.Fprintf(&b, "      %s\n", msg.Body)
		}
	}
	return textStyle.Width(max(m.viewport.Width, 40)).Render(b.String())
}

func celebrationIcon(kind string) string {
	switch kind {
	case engine.CelebrateWonderkid:
		return "★"
	case engine.CelebratePromotion:
		return "▲"
	case engine.CelebrateScenario:
		return "✔"
	case engine.CelebrateTool:
		return "⚙"
	}
	return ""
}
