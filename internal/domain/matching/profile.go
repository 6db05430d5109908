package matching

import (
	"strings"

	"github.com/google/uuid"
)

// ExperienceLevel is the ordinal seniority band shared by candidates and jobs.
// The zero value means unknown.
type ExperienceLevel string

const (
	LevelIntern ExperienceLevel = "INTERN"
	LevelJunior ExperienceLevel = "JUNIOR"
	LevelMiddle ExperienceLevel = "MIDDLE"
	LevelSenior ExperienceLevel = "SENIOR"
	LevelLead   ExperienceLevel = "LEAD"
)

// Index returns the position of the level in the INTERN..LEAD order.
// Unknown levels collapse to INTERN rather than failing.
func (l ExperienceLevel) Index() int {
	switch l {
	case LevelJunior:
		return 1
	case LevelMiddle:
		return 2
	case LevelSenior:
		return 3
	case LevelLead:
		return 4
	default:
		return 0
	}
}

// LevelBreakpoints maps raw years of experience onto a level band. The two
// ranking directions use intentionally different breakpoint sets, so each
// call site names the one it ranks with.
type LevelBreakpoints struct {
	Junior int
	Middle int
	Senior int
	Lead   int
}

var (
	// JobRankingBreakpoints is used when a candidate is ranked against the
	// job pool.
	JobRankingBreakpoints = LevelBreakpoints{Junior: 1, Middle: 2, Senior: 4, Lead: 7}

	// CandidateRankingBreakpoints is used by the employer-side fallback when
	// candidates are ranked against a single job.
	CandidateRankingBreakpoints = LevelBreakpoints{Junior: 1, Middle: 3, Senior: 5, Lead: 8}
)

// LevelForYears converts years of experience into a band. A nil years value
// yields the unknown level.
func (b LevelBreakpoints) LevelForYears(years *int) ExperienceLevel {
	if years == nil {
		return ""
	}
	y := *years
	switch {
	case y < b.Junior:
		return LevelIntern
	case y < b.Middle:
		return LevelJunior
	case y < b.Senior:
		return LevelMiddle
	case y < b.Lead:
		return LevelSenior
	default:
		return LevelLead
	}
}

// CandidateFeatures is the comparable representation of a candidate used for
// scoring. It is derived per request and never persisted.
type CandidateFeatures struct {
	CandidateID       uuid.UUID
	UserID            uuid.UUID
	Name              string
	Skills            []string
	SkillLevels       map[string]int
	Level             ExperienceLevel
	Location          string
	ExpectedSalaryMid *int
	PreferredIndustry string
}

// JobFeatures is the comparable representation of a job posting.
type JobFeatures struct {
	JobID        uuid.UUID
	Title        string
	EmployerName string
	Skills       []string
	Level        ExperienceLevel
	Location     string
	SalaryMin    *int
	SalaryMax    *int
	Industry     string
	IsPromoted   bool
}

// NormalizeSkillNames lower-cases skill names and collapses duplicates while
// preserving first-seen order.
func NormalizeSkillNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// SkillLevel is a named proficiency on the 0-5 scale.
type SkillLevel struct {
	Name  string
	Level int
}

// NormalizeSkillLevels builds a map keyed by lower-cased skill name. Duplicate
// names keep the highest proficiency seen.
func NormalizeSkillLevels(skills []SkillLevel) map[string]int {
	out := make(map[string]int, len(skills))
	for _, s := range skills {
		name := strings.ToLower(strings.TrimSpace(s.Name))
		if name == "" {
			continue
		}
		if s.Level > out[name] {
			out[name] = s.Level
		} else if _, ok := out[name]; !ok {
			out[name] = 0
		}
	}
	return out
}

// SalaryMidpoint returns (min+max)/2 when both bounds are present, the single
// bound when only one is, and nil when neither is.
func SalaryMidpoint(min, max *int) *int {
	switch {
	case min != nil && max != nil:
		mid := (*min + *max) / 2
		return &mid
	case min != nil:
		v := *min
		return &v
	case max != nil:
		v := *max
		return &v
	default:
		return nil
	}
}

// PreferredIndustry returns the most frequent industry in the slice, which
// callers feed with the candidate's most recent application industries. Ties
// break toward the industry seen first. Empty input yields "".
func PreferredIndustry(industries []string) string {
	counts := make(map[string]int, len(industries))
	order := make([]string, 0, len(industries))
	for _, ind := range industries {
		ind = strings.TrimSpace(ind)
		if ind == "" {
			continue
		}
		if _, ok := counts[ind]; !ok {
			order = append(order, ind)
		}
		counts[ind]++
	}

	best := ""
	bestCount := 0
	for _, ind := range order {
		if counts[ind] > bestCount {
			best = ind
			bestCount = counts[ind]
		}
	}
	return best
}
