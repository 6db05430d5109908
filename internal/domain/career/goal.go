package career

import (
	"encoding/json"
	"strings"
	"time"
)

// Goals live as loosely-typed JSON under the "careerGoals" key of the
// candidate's preference blob. Reads are lenient: malformed entries are
// dropped instead of failing the whole blob, and missing fields get defaults.

const preferencesKey = "careerGoals"

// TargetLevel is the seniority band a goal aims for.
type TargetLevel string

const (
	TargetJunior TargetLevel = "JUNIOR"
	TargetMiddle TargetLevel = "MIDDLE"
	TargetSenior TargetLevel = "SENIOR"
	TargetLead   TargetLevel = "LEAD"
)

// Milestone is a weighted, binary sub-task of a goal. A nil weight counts
// as 1; negative weights clamp to 0.
type Milestone struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Done   bool     `json:"done"`
	Weight *float64 `json:"weight,omitempty"`
	Due    *string  `json:"due,omitempty"`
}

// Goal is a user-authored career target with required skills and milestones.
type Goal struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	TargetLevel    TargetLevel `json:"targetLevel"`
	RequiredSkills []string    `json:"requiredSkills"`
	Deadline       *string     `json:"deadline,omitempty"`
	Milestones     []Milestone `json:"milestones"`
	CreatedAt      string      `json:"createdAt"`
	UpdatedAt      string      `json:"updatedAt"`
}

// GoalWithProgress augments a goal with its computed completion percentage.
// Progress is derived on every read and never persisted.
type GoalWithProgress struct {
	Goal
	Progress int `json:"progress"`
}

// DecodeGoals extracts goals from a raw preferences blob. Entries that fail
// to parse or lack an id or title are silently dropped.
func DecodeGoals(prefs []byte, now time.Time) []Goal {
	var blob map[string]json.RawMessage
	if len(prefs) == 0 || json.Unmarshal(prefs, &blob) != nil {
		return []Goal{}
	}

	raw, ok := blob[preferencesKey]
	if !ok {
		return []Goal{}
	}

	var entries []json.RawMessage
	if json.Unmarshal(raw, &entries) != nil {
		return []Goal{}
	}

	out := make([]Goal, 0, len(entries))
	for _, e := range entries {
		var g Goal
		if json.Unmarshal(e, &g) != nil {
			continue
		}
		g, ok := sanitizeGoal(g, now)
		if !ok {
			continue
		}
		out = append(out, g)
	}
	return out
}

// SanitizeGoals applies the same defaulting and validity rules as DecodeGoals
// to goals arriving from a write request.
func SanitizeGoals(goals []Goal, now time.Time) []Goal {
	out := make([]Goal, 0, len(goals))
	for _, g := range goals {
		g, ok := sanitizeGoal(g, now)
		if !ok {
			continue
		}
		out = append(out, g)
	}
	return out
}

func sanitizeGoal(g Goal, now time.Time) (Goal, bool) {
	g.ID = strings.TrimSpace(g.ID)
	g.Title = strings.TrimSpace(g.Title)
	if g.ID == "" || g.Title == "" {
		return Goal{}, false
	}

	switch TargetLevel(strings.ToUpper(string(g.TargetLevel))) {
	case TargetMiddle:
		g.TargetLevel = TargetMiddle
	case TargetSenior:
		g.TargetLevel = TargetSenior
	case TargetLead:
		g.TargetLevel = TargetLead
	default:
		g.TargetLevel = TargetJunior
	}

	if g.RequiredSkills == nil {
		g.RequiredSkills = []string{}
	}
	if g.Milestones == nil {
		g.Milestones = []Milestone{}
	}

	stamp := now.UTC().Format(time.RFC3339)
	if strings.TrimSpace(g.CreatedAt) == "" {
		g.CreatedAt = stamp
	}
	if strings.TrimSpace(g.UpdatedAt) == "" {
		g.UpdatedAt = stamp
	}

	return g, true
}

// MergeGoals writes the goal list into the preferences blob, keeping every
// unrelated preference key intact. An empty or unparseable blob starts fresh.
func MergeGoals(prefs []byte, goals []Goal) ([]byte, error) {
	blob := map[string]json.RawMessage{}
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &blob); err != nil {
			blob = map[string]json.RawMessage{}
		}
	}

	raw, err := json.Marshal(goals)
	if err != nil {
		return nil, err
	}
	blob[preferencesKey] = raw

	return json.Marshal(blob)
}
