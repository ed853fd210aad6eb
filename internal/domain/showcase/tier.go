package showcase

import "portfolio-api/internal/domain/portfolio"

type Tier string

const (
	TierStrong   Tier = "strong"
	TierWorking  Tier = "working"
	TierFamiliar Tier = "familiar"
)

const (
	strongThreshold  = 90
	workingThreshold = 75
)

// TierFor maps a proficiency score onto a display tier. A nil score counts as 0.
func TierFor(proficiency *int) Tier {
	p := 0
	if proficiency != nil {
		p = *proficiency
	}
	switch {
	case p >= strongThreshold:
		return TierStrong
	case p >= workingThreshold:
		return TierWorking
	default:
		return TierFamiliar
	}
}

func (t Tier) Label() string {
	switch t {
	case TierStrong:
		return "Strong"
	case TierWorking:
		return "Working"
	default:
		return "Familiar"
	}
}

type SkillView struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency int    `json:"proficiency"`
	Tier        Tier   `json:"tier"`
	Label       string `json:"label"`
}

type SkillGroup struct {
	Category string      `json:"category"`
	Skills   []SkillView `json:"skills"`
}

// GroupSkills buckets skills by category. Categories appear in the order they
// are first seen and skills keep their input order within a bucket.
func GroupSkills(skills []portfolio.Skill) []SkillGroup {
	groups := make([]SkillGroup, 0)
	index := map[string]int{}

	for _, s := range skills {
		tier := TierFor(s.Proficiency)
		v := SkillView{
			Name:     s.Name,
			Category: s.Category,
			Tier:     tier,
			Label:    tier.Label(),
		}
		if s.Proficiency != nil {
			v.Proficiency = *s.Proficiency
		}

		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SkillGroup{Category: s.Category, Skills: []SkillView{}})
		}
		groups[i].Skills = append(groups[i].Skills, v)
	}
	return groups
}
