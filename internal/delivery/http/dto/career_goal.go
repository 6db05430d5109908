package dto

import "eqwip/internal/domain/career"

type CareerGoalMilestoneRequest struct {
	ID     string   `json:"id" validate:"required"`
	Title  string   `json:"title" validate:"required"`
	Done   bool     `json:"done"`
	Weight *float64 `json:"weight" validate:"omitempty,gte=0"`
	Due    *string  `json:"due"`
}

type CareerGoalRequest struct {
	ID    string `json:"id" validate:"required"`
	Title string `json:"title" validate:"required"`
	// TargetLevel is normalized downstream, so "senior" and "SENIOR" are
	// both accepted here and unknown values fall back to a default.
	TargetLevel    string                       `json:"targetLevel"`
	RequiredSkills []string                     `json:"requiredSkills"`
	Deadline       *string                      `json:"deadline"`
	Milestones     []CareerGoalMilestoneRequest `json:"milestones" validate:"omitempty,dive"`
}

type SaveCareerGoalsRequest struct {
	Goals []CareerGoalRequest `json:"goals" validate:"required,dive"`
}

func (r SaveCareerGoalsRequest) ToDomain() []career.Goal {
	goals := make([]career.Goal, 0, len(r.Goals))
	for _, g := range r.Goals {
		milestones := make([]career.Milestone, 0, len(g.Milestones))
		for _, m := range g.Milestones {
			milestones = append(milestones, career.Milestone{
				ID:     m.ID,
				Title:  m.Title,
				Done:   m.Done,
				Weight: m.Weight,
				Due:    m.Due,
			})
		}
		goals = append(goals, career.Goal{
			ID:             g.ID,
			Title:          g.Title,
			TargetLevel:    career.TargetLevel(g.TargetLevel),
			RequiredSkills: g.RequiredSkills,
			Deadline:       g.Deadline,
			Milestones:     milestones,
		})
	}
	return goals
}
