package content

import (
	"fmt"

	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/rng"
)

// NewGameOptions describes a new career.
type NewGameOptions struct {
	Seed                string
	ScoutName           string
	Specialization      models.Specialization
	CareerPath          models.CareerPath
	WeeksPerSeason      int
	YouthPoolPerCountry int
}

const (
	primaryClubs   = 4
	secondaryClubs = 2
	squadSize      = 12
)

// NewGame generates the world for a fresh career. The same options always
// produce the same world.
func NewGame(gen Generators, opts NewGameOptions) models.GameState {
	if opts.WeeksPerSeason < 1 {
		opts.WeeksPerSeason = 38
	}
	if opts.CareerPath == "" {
		opts.CareerPath = models.PathClub
	}
	seed := opts.Seed
	key := func(purpose string, ids ...string) *rng.Stream {
		return rng.For(seed, "worldgen-"+purpose, 0, 1, ids...)
	}

	nCountries := 2
	if opts.Specialization == models.SpecRegional {
		nCountries = 3
	}
	g := models.GameState{
		WorldSeed:     seed,
		CurrentWeek:   1,
		CurrentSeason: 1,
		Countries:     append([]string(nil), Countries[:nCountries]...),
		Market:        models.MarketState{Temperature: 0.5},
	}

	for _, country := range g.Countries {
		cc := countryCode(country)
		for tier, n := range []int{primaryClubs, secondaryClubs} {
			league := models.League{
				ID:        fmt.Sprintf("L-%s-%d", cc, tier+1),
				Name:      fmt.Sprintf("%s Division %d", country, tier+1),
				Country:   country,
				Secondary: tier > 0,
			}
			g.Leagues = append(g.Leagues, league)
			for i := 0; i < n; i++ {
				clubID := fmt.Sprintf("C-%s-%d-%d", cc, tier+1, i+1)
				r := key("club", clubID)
				g.Clubs = append(g.Clubs, models.Club{
					ID:       clubID,
					Name:     clubName(r),
					Country:  country,
					LeagueID: league.ID,
					Budget:   float64(r.Int(2, 20)) * 1e6 / float64(tier+1),
				})
				g.Players = append(g.Players, squad(key("squad", clubID), clubID, country, tier)...)
			}
		}
	}

	for _, l := range g.Leagues {
		g.Fixtures = append(g.Fixtures, gen.GenerateFixtures(key("fixtures", l.ID), l, g.Clubs, 1, opts.WeeksPerSeason)...)
	}
	g.SeasonEvents, g.TransferWindows = gen.SeasonCalendar(key("calendar"), 1, opts.WeeksPerSeason)
	for _, w := range g.TransferWindows {
		if w.Contains(g.CurrentWeek) {
			g.TransferWindowOpen = true
		}
	}
	for _, country := range g.Countries {
		g.UnsignedYouth = append(g.UnsignedYouth, gen.GenerateYouth(key("youth", country), country, 1, opts.YouthPoolPerCountry)...)
	}

	g.Scout = newScout(opts, g.Countries[0])
	if opts.CareerPath == models.PathClub {
		g.Scout.CurrentClubID = g.Clubs[0].ID
	} else {
		g.Scout.IndependentTier = 1
		g.Finances = &models.Finances{Balance: 5000, MonthlyExpenses: 600}
	}

	switch opts.Specialization {
	case models.SpecFirstTeam:
		if g.Scout.CurrentClubID != "" {
			g.Manager = &models.ManagerRelationship{ManagerName: personName(key("manager")), Trust: 50}
		}
		g.Directives = gen.GenerateDirectives(key("directives"), 1)
	case models.SpecData:
		offer := gen.GenerateAnalystCandidate(key("analyst"), 1)
		g.AnalystOffer = &offer
	case models.SpecRegional:
		for i, country := range g.Countries {
			level := 0.0
			if i == 0 {
				level = 40
			}
			g.Familiarity = append(g.Familiarity, models.Familiarity{Country: country, Level: level})
		}
	}

	for i := 0; i < 2; i++ {
		r := key("contact", fmt.Sprint(i))
		c := gen.GenerateContact(r, g.Scout, g.Countries[:1])
		c.ID = g.NextID("contact")
		g.Contacts = append(g.Contacts, c)
	}
	for i := 0; i < 2; i++ {
		r := key("rival", fmt.Sprint(i))
		club, _ := rng.Pick(r, g.Clubs)
		g.Rivals = append(g.Rivals, models.RivalScout{
			ID:         fmt.Sprintf("R-%d", i+1),
			Name:       personName(r),
			ClubID:     club.ID,
			Aggression: r.Float(0.2, 0.8),
		})
	}

	g.AddMessage(models.InboxMessage{
		Type:  models.MsgWelcome,
		Title: "Welcome aboard",
		Body:  fmt.Sprintf("%s, your scouting career starts today. Plan your week and advance when ready.", g.Scout.Name),
	})
	return g
}

func squad(r *rng.Stream, clubID, country string, tier int) []models.Player {
	out := make([]models.Player, 0, squadSize)
	base := 65.0 - float64(tier)*12
	for i := 0; i < squadSize; i++ {
		pos := Positions[i%len(Positions)]
		age := r.Int(17, 34)
		current := models.Clamp(r.Normal(base, 8), 20, 92)
		headroom := 0.0
		if age < 24 {
			headroom = r.Float(0, float64(24-age)*4)
		}
		out = append(out, models.Player{
			ID:               fmt.Sprintf("P-%s-%d", clubID, i+1),
			Name:             personName(r),
			Age:              age,
			Position:         pos,
			Country:          country,
			ClubID:           clubID,
			CurrentAbility:   current,
			PotentialAbility: models.Clamp(current+headroom, current, 99),
			MarketValue:      current * current * 150,
			Form:             r.Float(4, 7),
		})
	}
	return out
}

func newScout(opts NewGameOptions, home string) models.Scout {
	skills := map[string]float64{
		models.SkillTalentSpotting:  6,
		models.SkillPlayerJudgment:  6,
		models.SkillYouthAssessment: 4,
		models.SkillDataLiteracy:    4,
		models.SkillNetworking:      5,
		models.SkillNegotiation:     4,
	}
	switch opts.Specialization {
	case models.SpecYouth:
		skills[models.SkillYouthAssessment] = 9
	case models.SpecFirstTeam:
		skills[models.SkillPlayerJudgment] = 8
	case models.SpecRegional:
		skills[models.SkillNetworking] = 8
	case models.SpecData:
		skills[models.SkillDataLiteracy] = 9
	}
	return models.Scout{
		ID:             "scout",
		Name:           opts.ScoutName,
		Specialization: opts.Specialization,
		CareerPath:     opts.CareerPath,
		CareerTier:     1,
		Reputation:     20,
		Skills:         skills,
		Attributes: map[string]float64{
			models.AttrStamina:       10,
			models.AttrIntuition:     8,
			models.AttrCommunication: 8,
			models.AttrConfidence:    8,
		},
		HomeCountry: home,
	}
}
