package models

// Specialization is one of the four mutually exclusive scout career paths.
type Specialization string

const (
	SpecYouth     Specialization = "youth"
	SpecFirstTeam Specialization = "first-team"
	SpecRegional  Specialization = "regional"
	SpecData      Specialization = "data"
)

// CanAttendFirstTeam reports whether scouts of this path go to senior fixtures.
func (s Specialization) CanAttendFirstTeam() bool {
	return s != SpecYouth
}

// CareerPath distinguishes employed scouts from independent ones.
type CareerPath string

const (
	PathClub        CareerPath = "club"
	PathIndependent CareerPath = "independent"
)

// Scout is the player character.
type Scout struct {
	ID              string             `yaml:"id"`
	Name            string             `yaml:"name"`
	Specialization  Specialization     `yaml:"specialization"`
	CareerPath      CareerPath         `yaml:"career_path"`
	CareerTier      int                `yaml:"career_tier"`
	IndependentTier int                `yaml:"independent_tier,omitempty"`
	Reputation      float64            `yaml:"reputation"`
	Fatigue         float64            `yaml:"fatigue"`
	Skills          map[string]float64 `yaml:"skills"`
	Attributes      map[string]float64 `yaml:"attributes"`
	CurrentClubID   string             `yaml:"current_club_id,omitempty"`
	HomeCountry     string             `yaml:"home_country"`
	Tools           []string           `yaml:"tools,omitempty"`
}

// League is a competition inside one country.
type League struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Country   string `yaml:"country"`
	Secondary bool   `yaml:"secondary,omitempty"`
}

// Club belongs to exactly one league.
type Club struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Country  string  `yaml:"country"`
	LeagueID string  `yaml:"league_id"`
	Budget   float64 `yaml:"budget"`
}

// Player is any footballer in the world, signed or not.
type Player struct {
	ID               string  `yaml:"id"`
	Name             string  `yaml:"name"`
	Age              int     `yaml:"age"`
	Position         string  `yaml:"position"`
	Country          string  `yaml:"country"`
	ClubID           string  `yaml:"club_id,omitempty"`
	CurrentAbility   float64 `yaml:"current_ability"`
	PotentialAbility float64 `yaml:"potential_ability"`
	MarketValue      float64 `yaml:"market_value"`
	Form             float64 `yaml:"form"`
	Youth            bool    `yaml:"youth,omitempty"`
}

// Fixture is one scheduled match.
type Fixture struct {
	ID         string `yaml:"id"`
	LeagueID   string `yaml:"league_id"`
	HomeClubID string `yaml:"home_club_id"`
	AwayClubID string `yaml:"away_club_id"`
	Week       int    `yaml:"week"`
	Season     int    `yaml:"season"`
}

// Observation is one look at a player.
type Observation struct {
	ID                string  `yaml:"id"`
	PlayerID          string  `yaml:"player_id"`
	Week              int     `yaml:"week"`
	Season            int     `yaml:"season"`
	Source            string  `yaml:"source"`
	AbilityEstimate   float64 `yaml:"ability_estimate"`
	PotentialEstimate float64 `yaml:"potential_estimate"`
	Confidence        float64 `yaml:"confidence"`
}

// Recommendation values carried by reports.
const (
	RecommendSign    = "sign"
	RecommendMonitor = "monitor"
	RecommendPass    = "pass"
)

// Report is a written scouting report.
type Report struct {
	ID             string   `yaml:"id"`
	PlayerID       string   `yaml:"player_id"`
	Week           int      `yaml:"week"`
	Season         int      `yaml:"season"`
	Quality        float64  `yaml:"quality"`
	Recommendation string   `yaml:"recommendation"`
	RetroScore     *float64 `yaml:"retro_score,omitempty"`
	Successful     bool     `yaml:"successful,omitempty"`
}

// DiscoveryRecord marks the first-ever contact with a player.
type DiscoveryRecord struct {
	ID        string `yaml:"id"`
	PlayerID  string `yaml:"player_id"`
	Week      int    `yaml:"week"`
	Season    int    `yaml:"season"`
	Source    string `yaml:"source"`
	Wonderkid bool   `yaml:"wonderkid,omitempty"`
	Finalized bool   `yaml:"finalized,omitempty"`
}

// LedgerEntry is one line of the finance ledger.
type LedgerEntry struct {
	Week   int     `yaml:"week"`
	Season int     `yaml:"season"`
	Label  string  `yaml:"label"`
	Amount float64 `yaml:"amount"`
}

// Finances is optional; scouts on a club payroll start without one.
type Finances struct {
	Balance         float64       `yaml:"balance"`
	MonthlySalary   float64       `yaml:"monthly_salary"`
	MonthlyExpenses float64       `yaml:"monthly_expenses"`
	Ledger          []LedgerEntry `yaml:"ledger,omitempty"`
}

// Contact is someone in the scout's network.
type Contact struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Role         string  `yaml:"role"`
	Country      string  `yaml:"country"`
	Relationship float64 `yaml:"relationship"`
	IntelShared  int     `yaml:"intel_shared,omitempty"`
}

// NPCReport is written by an agency employee and waits for review.
type NPCReport struct {
	ID       string  `yaml:"id"`
	PlayerID string  `yaml:"player_id"`
	AuthorID string  `yaml:"author_id"`
	Quality  float64 `yaml:"quality"`
	Week     int     `yaml:"week"`
	Season   int     `yaml:"season"`
	Reviewed bool    `yaml:"reviewed,omitempty"`
}

// ManagerRelationship exists only while the scout works for a club manager.
type ManagerRelationship struct {
	ManagerName     string  `yaml:"manager_name"`
	Trust           float64 `yaml:"trust"`
	LastMeetingWeek int     `yaml:"last_meeting_week,omitempty"`
}

// Directive is a first-team manager's request for a player profile.
type Directive struct {
	ID              string  `yaml:"id"`
	Season          int     `yaml:"season"`
	Position        string  `yaml:"position"`
	MaxAge          int     `yaml:"max_age"`
	MinAbility      float64 `yaml:"min_ability"`
	Fulfilled       bool    `yaml:"fulfilled,omitempty"`
	MatchedPlayerID string  `yaml:"matched_player_id,omitempty"`
}

// Trial is a first-team trial period for a recommended player.
type Trial struct {
	ID       string `yaml:"id"`
	PlayerID string `yaml:"player_id"`
	Season   int    `yaml:"season"`
	DueAbs   int    `yaml:"due_abs_week"`
	Resolved bool   `yaml:"resolved,omitempty"`
	Signed   bool   `yaml:"signed,omitempty"`
}

// Placement is a youth scout's attempt to place an unsigned youngster at a club.
type Placement struct {
	ID       string `yaml:"id"`
	PlayerID string `yaml:"player_id"`
	ClubID   string `yaml:"club_id"`
	Week     int    `yaml:"week"`
	Season   int    `yaml:"season"`
	Resolved bool   `yaml:"resolved,omitempty"`
	Accepted bool   `yaml:"accepted,omitempty"`
}

// AcademyIntake counts the youngsters a club academy took in a season.
type AcademyIntake struct {
	ClubID string `yaml:"club_id"`
	Season int    `yaml:"season"`
	Count  int    `yaml:"count"`
}

// AnalystReport is a passive data-scout report.
type AnalystReport struct {
	ID       string  `yaml:"id"`
	PlayerID string  `yaml:"player_id"`
	Week     int     `yaml:"week"`
	Season   int     `yaml:"season"`
	Rating   float64 `yaml:"rating"`
}

// Prediction claims are "breakout" or "decline".
type Prediction struct {
	ID            string  `yaml:"id"`
	PlayerID      string  `yaml:"player_id"`
	Claim         string  `yaml:"claim"`
	MadeSeason    int     `yaml:"made_season"`
	ResolveAbs    int     `yaml:"resolve_abs_week"`
	BaselineValue float64 `yaml:"baseline_value"`
	Resolved      bool    `yaml:"resolved,omitempty"`
	Correct       bool    `yaml:"correct,omitempty"`
}

// AnalystCandidate is a data analyst the scout may hire.
type AnalystCandidate struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Skill  float64 `yaml:"skill"`
	Wage   float64 `yaml:"wage"`
	Season int     `yaml:"season"`
}

// Familiarity tracks how well a regional scout knows a country.
type Familiarity struct {
	Country string  `yaml:"country"`
	Level   float64 `yaml:"level"`
}

// RivalScout competes for the same players.
type RivalScout struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	ClubID         string  `yaml:"club_id"`
	Aggression     float64 `yaml:"aggression"`
	TargetPlayerID string  `yaml:"target_player_id,omitempty"`
	Progress       float64 `yaml:"progress"`
}

// TransferRecord is a completed transfer.
type TransferRecord struct {
	ID           string  `yaml:"id"`
	PlayerID     string  `yaml:"player_id"`
	FromClubID   string  `yaml:"from_club_id"`
	ToClubID     string  `yaml:"to_club_id"`
	Fee          float64 `yaml:"fee"`
	Week         int     `yaml:"week"`
	Season       int     `yaml:"season"`
	CrossCountry bool    `yaml:"cross_country,omitempty"`
	Outcome      string  `yaml:"outcome,omitempty"`
}

// Assignment is an international scouting assignment.
type Assignment struct {
	ID         string `yaml:"id"`
	Country    string `yaml:"country"`
	OfferedAbs int    `yaml:"offered_abs_week"`
	ExpiresAbs int    `yaml:"expires_abs_week"`
	Expired    bool   `yaml:"expired,omitempty"`
	Completed  bool   `yaml:"completed,omitempty"`
}

// EconomicEvent temporarily moves the market.
type EconomicEvent struct {
	ID       string  `yaml:"id"`
	Kind     string  `yaml:"kind"`
	StartAbs int     `yaml:"start_abs_week"`
	EndAbs   int     `yaml:"end_abs_week"`
	Modifier float64 `yaml:"modifier"`
}

// MarketState is the transfer-market climate.
type MarketState struct {
	Temperature float64        `yaml:"temperature"`
	Event       *EconomicEvent `yaml:"event,omitempty"`
}

// Employee works for the scout's agency.
type Employee struct {
	ID    string  `yaml:"id"`
	Name  string  `yaml:"name"`
	Role  string  `yaml:"role"`
	Wage  float64 `yaml:"wage"`
	Skill float64 `yaml:"skill"`
}

// Agency exists only for independent scouts who founded one.
type Agency struct {
	Name      string     `yaml:"name"`
	Employees []Employee `yaml:"employees,omitempty"`
}

// Listing offers a report on the independent marketplace.
type Listing struct {
	ID          string  `yaml:"id"`
	ReportID    string  `yaml:"report_id"`
	PlayerID    string  `yaml:"player_id"`
	AskingPrice float64 `yaml:"asking_price"`
	ListedAbs   int     `yaml:"listed_abs_week"`
	Sold        bool    `yaml:"sold,omitempty"`
	BuyerClubID string  `yaml:"buyer_club_id,omitempty"`
}

// Retainer pays an independent scout monthly.
type Retainer struct {
	ID         string  `yaml:"id"`
	ClubID     string  `yaml:"club_id"`
	MonthlyFee float64 `yaml:"monthly_fee"`
	EndAbs     int     `yaml:"end_abs_week"`
	Active     bool    `yaml:"active"`
}

// ConsultingContract is a one-off paid engagement.
type ConsultingContract struct {
	ID        string  `yaml:"id"`
	ClubID    string  `yaml:"club_id"`
	Fee       float64 `yaml:"fee"`
	DueAbs    int     `yaml:"due_abs_week"`
	Completed bool    `yaml:"completed,omitempty"`
}

// SeasonEvent is a calendar marker (cup draw, awards night, ...).
type SeasonEvent struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Week int    `yaml:"week"`
}

// TransferWindow spans StartWeek..EndWeek inclusive.
type TransferWindow struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	StartWeek int    `yaml:"start_week"`
	EndWeek   int    `yaml:"end_week"`
}

// Contains reports whether week falls inside the window.
func (w TransferWindow) Contains(week int) bool {
	return week >= w.StartWeek && week <= w.EndWeek
}

// JobOffer is produced at season end.
type JobOffer struct {
	ID            string  `yaml:"id"`
	ClubID        string  `yaml:"club_id"`
	Tier          int     `yaml:"tier"`
	Salary        float64 `yaml:"salary"`
	ExpiresSeason int     `yaml:"expires_season"`
}

// PerformanceSnapshot is taken monthly.
type PerformanceSnapshot struct {
	AbsWeek     int     `yaml:"abs_week"`
	Week        int     `yaml:"week"`
	Season      int     `yaml:"season"`
	Reputation  float64 `yaml:"reputation"`
	Reports     int     `yaml:"reports"`
	Discoveries int     `yaml:"discoveries"`
	Balance     float64 `yaml:"balance,omitempty"`
}

// Review outcomes.
const (
	OutcomePromoted = "promoted"
	OutcomeRetained = "retained"
	OutcomeDemoted  = "demoted"
)

// PerformanceReview is the end-of-season review.
type PerformanceReview struct {
	Season                    int     `yaml:"season"`
	ReportsSubmitted          int     `yaml:"reports_submitted"`
	AverageQuality            float64 `yaml:"average_quality"`
	SuccessfulRecommendations int     `yaml:"successful_recommendations"`
	Outcome                   string  `yaml:"outcome"`
	ReputationDelta           float64 `yaml:"reputation_delta"`
}

// Scenario statuses.
const (
	ScenarioActive = "active"
	ScenarioWon    = "won"
	ScenarioLost   = "lost"
)

// Scenario is an optional challenge with objectives and a deadline.
type Scenario struct {
	ID                string  `yaml:"id"`
	Name              string  `yaml:"name"`
	TargetDiscoveries int     `yaml:"target_discoveries"`
	TargetReputation  float64 `yaml:"target_reputation"`
	DeadlineSeason    int     `yaml:"deadline_season"`
	Status            string  `yaml:"status"`
}

// ActiveMatch is set while the live match flow owns the UI.
type ActiveMatch struct {
	FixtureID string `yaml:"fixture_id"`
}

// PendingChoice is a narrative decision waiting for the next tick.
type PendingChoice struct {
	EventID     string `yaml:"event_id"`
	ChoiceIndex int    `yaml:"choice_index"`
}

// GameState is the root aggregate threaded through every tick stage.
type GameState struct {
	WorldSeed     string `yaml:"world_seed"`
	CurrentWeek   int    `yaml:"current_week"`
	CurrentSeason int    `yaml:"current_season"`
	MessageSeq    int    `yaml:"message_seq"`

	Scout     Scout     `yaml:"scout"`
	Countries []string  `yaml:"countries"`
	Leagues   []League  `yaml:"leagues"`
	Clubs     []Club    `yaml:"clubs"`
	Players   []Player  `yaml:"players"`
	Fixtures  []Fixture `yaml:"fixtures"`

	PlayedFixtures []string     `yaml:"played_fixtures"`
	Schedule       WeekSchedule `yaml:"schedule"`
	ActiveMatch    *ActiveMatch `yaml:"active_match,omitempty"`

	Observations []Observation     `yaml:"observations"`
	Reports      []Report          `yaml:"reports"`
	Discoveries  []DiscoveryRecord `yaml:"discoveries"`
	NPCReports   []NPCReport       `yaml:"npc_reports,omitempty"`
	Contacts     []Contact         `yaml:"contacts"`

	Finances *Finances `yaml:"finances,omitempty"`

	Inbox           []InboxMessage   `yaml:"inbox"`
	NarrativeEvents []NarrativeEvent `yaml:"narrative_events"`
	Storylines      []Storyline      `yaml:"storylines,omitempty"`
	PendingChoices  []PendingChoice  `yaml:"pending_choices,omitempty"`

	UnsignedYouth  []Player        `yaml:"unsigned_youth,omitempty"`
	AcademyIntakes []AcademyIntake `yaml:"academy_intakes,omitempty"`
	Placements     []Placement     `yaml:"placements,omitempty"`

	Manager    *ManagerRelationship `yaml:"manager,omitempty"`
	Directives []Directive          `yaml:"directives,omitempty"`
	Trials     []Trial              `yaml:"trials,omitempty"`

	AnalystReports []AnalystReport   `yaml:"analyst_reports,omitempty"`
	Predictions    []Prediction      `yaml:"predictions,omitempty"`
	AnalystOffer   *AnalystCandidate `yaml:"analyst_offer,omitempty"`

	Familiarity []Familiarity `yaml:"familiarity,omitempty"`

	Rivals      []RivalScout     `yaml:"rivals,omitempty"`
	Transfers   []TransferRecord `yaml:"transfers,omitempty"`
	Assignments []Assignment     `yaml:"assignments,omitempty"`

	Market     MarketState          `yaml:"market"`
	Agency     *Agency              `yaml:"agency,omitempty"`
	Listings   []Listing            `yaml:"listings,omitempty"`
	Retainers  []Retainer           `yaml:"retainers,omitempty"`
	Consulting []ConsultingContract `yaml:"consulting,omitempty"`

	SeasonEvents       []SeasonEvent    `yaml:"season_events,omitempty"`
	TransferWindows    []TransferWindow `yaml:"transfer_windows,omitempty"`
	TransferWindowOpen bool             `yaml:"transfer_window_open"`
	JobOffers          []JobOffer       `yaml:"job_offers,omitempty"`

	Snapshots       []PerformanceSnapshot `yaml:"snapshots,omitempty"`
	LastSnapshotAbs int                   `yaml:"last_snapshot_abs_week"`
	Reviews         []PerformanceReview   `yaml:"reviews,omitempty"`

	Scenario *Scenario `yaml:"scenario,omitempty"`
}

// AbsoluteWeek numbers weeks continuously across seasons, starting at 1.
func AbsoluteWeek(season, week, weeksPerSeason int) int {
	return (season-1)*weeksPerSeason + week
}

// PlayerIndex returns the index of the player with id, or -1.
func (g *GameState) PlayerIndex(id string) int {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// Player looks a player up by id in the signed and unsigned pools.
func (g *GameState) Player(id string) (Player, bool) {
	if i := g.PlayerIndex(id); i >= 0 {
		return g.Players[i], true
	}
	for _, p := range g.UnsignedYouth {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Club looks a club up by id.
func (g *GameState) Club(id string) (Club, bool) {
	for _, c := range g.Clubs {
		if c.ID == id {
			return c, true
		}
	}
	return Club{}, false
}

// Fixture looks a fixture up by id.
func (g *GameState) Fixture(id string) (Fixture, bool) {
	for _, f := range g.Fixtures {
		if f.ID == id {
			return f, true
		}
	}
	return Fixture{}, false
}

// League looks a league up by id.
func (g *GameState) League(id string) (League, bool) {
	for _, l := range g.Leagues {
		if l.ID == id {
			return l, true
		}
	}
	return League{}, false
}

// FixturePlayed reports whether the fixture is in PlayedFixtures.
func (g *GameState) FixturePlayed(id string) bool {
	for _, f := range g.PlayedFixtures {
		if f == id {
			return true
		}
	}
	return false
}

// ObservationsOf returns the observations of one player in insertion order.
func (g *GameState) ObservationsOf(playerID string) []Observation {
	var out []Observation
	for _, o := range g.Observations {
		if o.PlayerID == playerID {
			out = append(out, o)
		}
	}
	return out
}

// HasReportOn reports whether the scout already wrote about the player.
func (g *GameState) HasReportOn(playerID string) bool {
	for _, r := range g.Reports {
		if r.PlayerID == playerID {
			return true
		}
	}
	return false
}

// AdjustReputation clamps reputation to [0, 100].
func (g *GameState) AdjustReputation(delta float64) {
	g.Scout.Reputation = Clamp(g.Scout.Reputation+delta, 0, 100)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
