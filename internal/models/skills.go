package models

// Skill keys.
const (
	SkillTalentSpotting  = "talentSpotting"
	SkillPlayerJudgment  = "playerJudgment"
	SkillYouthAssessment = "youthAssessment"
	SkillDataLiteracy    = "dataLiteracy"
	SkillNetworking      = "networking"
	SkillNegotiation     = "negotiation"
)

// SkillNames lists every skill in display order.
var SkillNames = []string{
	SkillTalentSpotting, SkillPlayerJudgment, SkillYouthAssessment,
	SkillDataLiteracy, SkillNetworking, SkillNegotiation,
}

// Attribute keys.
const (
	AttrStamina       = "stamina"
	AttrIntuition     = "intuition"
	AttrCommunication = "communication"
	AttrConfidence    = "confidence"
)

// MaxSkill caps every skill and attribute.
const MaxSkill = 20.0

// AddXP raises a skill, capped at MaxSkill.
func (s *Scout) AddXP(skill string, amount float64) {
	if s.Skills == nil {
		s.Skills = map[string]float64{}
	}
	s.Skills[skill] = Clamp(s.Skills[skill]+amount, 0, MaxSkill)
}

// AddAttribute raises an attribute, capped at MaxSkill.
func (s *Scout) AddAttribute(attr string, amount float64) {
	if s.Attributes == nil {
		s.Attributes = map[string]float64{}
	}
	s.Attributes[attr] = Clamp(s.Attributes[attr]+amount, 0, MaxSkill)
}
