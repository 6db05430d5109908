package career

import (
	"math"
	"strings"
)

// Progress combines required-skill coverage with weighted milestone
// completion: 60% skills, 40% milestones, rounded to a 0-100 integer.
const (
	skillWeight     = 0.6
	milestoneWeight = 0.4

	// minimum proficiency (0-5 scale) for a skill to satisfy a requirement
	proficiencyThreshold = 3
)

// SkillMatch returns the satisfied fraction of the goal's required skills.
// A required skill counts only when the candidate holds it at or above the
// proficiency threshold. No required skills is vacuously satisfied.
func SkillMatch(required []string, skillLevels map[string]int) float64 {
	req := make([]string, 0, len(required))
	for _, r := range required {
		r = strings.ToLower(strings.TrimSpace(r))
		if r != "" {
			req = append(req, r)
		}
	}
	if len(req) == 0 {
		return 1
	}

	matched := 0
	for _, r := range req {
		if skillLevels[r] >= proficiencyThreshold {
			matched++
		}
	}
	return float64(matched) / float64(len(req))
}

// MilestoneProgress returns the weighted fraction of completed milestones.
// An empty list or a total weight of zero yields 0.
func MilestoneProgress(milestones []Milestone) float64 {
	if len(milestones) == 0 {
		return 0
	}

	total := 0.0
	earned := 0.0
	for _, m := range milestones {
		w := 1.0
		if m.Weight != nil {
			w = math.Max(*m.Weight, 0)
		}
		total += w
		if m.Done {
			earned += w
		}
	}
	if total <= 0 {
		return 0
	}
	return earned / total
}

// ProgressFor computes the completion percentage of a single goal.
func ProgressFor(g Goal, skillLevels map[string]int) int {
	combined := skillWeight*SkillMatch(g.RequiredSkills, skillLevels) +
		milestoneWeight*MilestoneProgress(g.Milestones)
	return int(math.Round(combined * 100))
}

// WithProgress decorates each goal with its computed progress.
func WithProgress(goals []Goal, skillLevels map[string]int) []GoalWithProgress {
	out := make([]GoalWithProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalWithProgress{Goal: g, Progress: ProgressFor(g, skillLevels)})
	}
	return out
}
