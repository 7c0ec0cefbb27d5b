package content

import (
	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/rng"
)

type eventTemplate struct {
	kind   string
	title  string
	body   string
	player bool
	// contact templates need at least one contact to fire.
	contact      bool
	choices      []models.NarrativeChoice
	consequences *models.Consequences
}

var weeklyEvents = []eventTemplate{
	{
		kind: "press", title: "A journalist calls",
		body:    "A local paper wants a quote on the club's recruitment.",
		choices: []models.NarrativeChoice{{Label: "Give a careful quote", Consequences: models.Consequences{Reputation: 1}}, {Label: "Decline", Consequences: models.Consequences{}}},
	},
	{
		kind: "injury", title: "Injury scare", player: true,
		body:         "A player you have been following picked up a knock in training.",
		consequences: &models.Consequences{Form: -1.5, MarketValue: -0.05},
	},
	{
		kind: "hot_streak", title: "Hot streak", player: true,
		body:         "A player on your radar has scored in three straight games.",
		consequences: &models.Consequences{Form: 1.5, MarketValue: 0.08},
	},
	{
		kind: "tip_off", title: "A tip-off", contact: true,
		body: "One of your contacts hints at a player nobody is watching.",
		choices: []models.NarrativeChoice{
			{Label: "Buy them dinner", Consequences: models.Consequences{Relationship: 6, Budget: -150}},
			{Label: "Thank them by text", Consequences: models.Consequences{Relationship: 1}},
		},
	},
	{
		kind: "expenses", title: "Expense audit",
		body:         "Accounts questioned last month's travel claims.",
		consequences: &models.Consequences{Budget: -200, ManagerTrust: -2},
	},
	{
		kind: "praise", title: "Word gets around",
		body:         "A rival club's director mentions your work in an interview.",
		consequences: &models.Consequences{Reputation: 2},
	},
}

// WeeklyEvent picks a random event that fits the current state. The caller
// rolls whether an event happens at all.
func (Default) WeeklyEvent(r *rng.Stream, g models.GameState) (models.NarrativeEvent, bool) {
	var eligible []eventTemplate
	for _, t := range weeklyEvents {
		if t.player && len(g.Observations) == 0 {
			continue
		}
		if t.contact && len(g.Contacts) == 0 {
			continue
		}
		eligible = append(eligible, t)
	}
	t, ok := rng.Pick(r, eligible)
	if !ok {
		return models.NarrativeEvent{}, false
	}
	ev := models.NarrativeEvent{
		Kind:   t.kind,
		Title:  t.title,
		Body:   t.body,
		Week:   g.CurrentWeek,
		Season: g.CurrentSeason,
	}
	var playerID, contactID string
	if t.player {
		o, _ := rng.Pick(r, g.Observations)
		playerID = o.PlayerID
	}
	if t.contact {
		c, _ := rng.Pick(r, g.Contacts)
		contactID = c.ID
	}
	if t.consequences != nil {
		c := *t.consequences
		c.PlayerID, c.ContactID = playerID, contactID
		ev.Consequences = &c
	}
	for _, ch := range t.choices {
		ch.Consequences.PlayerID, ch.Consequences.ContactID = playerID, contactID
		ev.Choices = append(ev.Choices, ch)
	}
	return ev, true
}

var storylines = []StorylineTemplate{
	{
		ID: "agent-feud",
		Steps: []StoryStep{
			{Title: "An agent's offer", Body: "A well-known agent offers you first look at his clients in exchange for favourable reports.",
				Choices: []models.NarrativeChoice{
					{Label: "Refuse", Consequences: models.Consequences{Reputation: 2}},
					{Label: "Hear him out", Consequences: models.Consequences{Reputation: -1, Budget: 300}},
				}},
			{Title: "The agent returns", Body: "The agent is back, less friendly this time.",
				Choices: []models.NarrativeChoice{
					{Label: "Report him to the league", Consequences: models.Consequences{Reputation: 3, ManagerTrust: 2}},
					{Label: "Ignore him", Consequences: models.Consequences{}},
				}},
			{Title: "Fallout", Body: "The story of the agent reaches the papers.",
				Consequences: &models.Consequences{Reputation: 1}},
		},
	},
	{
		ID:              "dressing-room",
		Specializations: []models.Specialization{models.SpecFirstTeam},
		Steps: []StoryStep{
			{Title: "Dressing-room rumours", Body: "The manager asks whether your last signing is unsettling the squad.",
				Choices: []models.NarrativeChoice{
					{Label: "Back the player", Consequences: models.Consequences{ManagerTrust: -2, Reputation: 1}},
					{Label: "Agree to monitor him", Consequences: models.Consequences{ManagerTrust: 3}},
				}},
			{Title: "Clear the air", Body: "Captain and manager meet; you are asked to sit in.",
				Consequences: &models.Consequences{ManagerTrust: 2}},
		},
	},
	{
		ID:              "academy-prodigy",
		Specializations: []models.Specialization{models.SpecYouth, models.SpecRegional},
		Steps: []StoryStep{
			{Title: "A prodigy's parents", Body: "The parents of a gifted fourteen-year-old want to talk about their son's future.",
				Choices: []models.NarrativeChoice{
					{Label: "Promise nothing", Consequences: models.Consequences{Reputation: 1}},
					{Label: "Talk up the club", Consequences: models.Consequences{Reputation: 2, Budget: -100}},
				}},
			{Title: "Decision day", Body: "The family decides where the boy will train.",
				Consequences: &models.Consequences{Reputation: 2}},
		},
	},
	{
		ID:              "model-drift",
		Specializations: []models.Specialization{models.SpecData},
		Steps: []StoryStep{
			{Title: "Model drift", Body: "Your projections missed badly on last month's signings.",
				Choices: []models.NarrativeChoice{
					{Label: "Retrain the model", Consequences: models.Consequences{Budget: -250, Reputation: 1}},
					{Label: "Blame the data", Consequences: models.Consequences{Reputation: -2}},
				}},
			{Title: "Back on track", Body: "The new numbers hold up.",
				Consequences: &models.Consequences{Reputation: 2}},
		},
	},
}

// StorylineTemplates returns the multi-step chains.
func (Default) StorylineTemplates() []StorylineTemplate {
	out := make([]StorylineTemplate, len(storylines))
	copy(out, storylines)
	return out
}
