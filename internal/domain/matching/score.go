package matching

// Weights is the per-factor weight vector for the candidate-ranks-jobs
// direction. Default configurations sum to 1.0; this is not enforced.
type Weights struct {
	Skills     float64
	Experience float64
	Location   float64
	Salary     float64
	Industry   float64
}

// DefaultJobRankingWeights returns the skills-heavy mix used for job
// recommendations.
func DefaultJobRankingWeights() Weights {
	return Weights{
		Skills:     0.5,
		Experience: 0.2,
		Location:   0.1,
		Salary:     0.1,
		Industry:   0.1,
	}
}

// FactorScores holds the five independent similarity measures for one
// (candidate, job) pair.
type FactorScores struct {
	Skills     float64
	Experience float64
	Location   float64
	Salary     float64
	Industry   float64
}

// Weighted combines the factor scores into a single scalar.
func (f FactorScores) Weighted(w Weights) float64 {
	return f.Skills*w.Skills +
		f.Experience*w.Experience +
		f.Location*w.Location +
		f.Salary*w.Salary +
		f.Industry*w.Industry
}

// Reason thresholds. Reasons are informational only and never affect the
// ranking order.
const (
	reasonSkillThreshold      = 0.7
	reasonExperienceThreshold = 0.8
	reasonSalaryThreshold     = 0.8
)

const (
	ReasonStrongSkillOverlap = "Strong skill overlap"
	ReasonExperienceAligned  = "Experience matches the level"
	ReasonSameLocation       = "Same location"
	ReasonSalaryMatches      = "Salary matches expectations"
	ReasonPreferredIndustry  = "Preferred industry"
)

// Reasons renders the human-readable explanations for factors that cleared
// their thresholds, in factor order.
func (f FactorScores) Reasons() []string {
	reasons := make([]string, 0, 5)
	if f.Skills > reasonSkillThreshold {
		reasons = append(reasons, ReasonStrongSkillOverlap)
	}
	if f.Experience > reasonExperienceThreshold {
		reasons = append(reasons, ReasonExperienceAligned)
	}
	if f.Location == 1 {
		reasons = append(reasons, ReasonSameLocation)
	}
	if f.Salary > reasonSalaryThreshold {
		reasons = append(reasons, ReasonSalaryMatches)
	}
	if f.Industry == 1 {
		reasons = append(reasons, ReasonPreferredIndustry)
	}
	return reasons
}

// ScoreJob computes the factor scores for one (candidate, job) pair.
func ScoreJob(c CandidateFeatures, j JobFeatures) FactorScores {
	return FactorScores{
		Skills:     SkillMatch(c.Skills, j.Skills),
		Experience: ExperienceMatch(c.Level, j.Level),
		Location:   LocationMatch(c.Location, j.Location),
		Salary:     SalaryMatch(c.ExpectedSalaryMid, j.SalaryMin, j.SalaryMax),
		Industry:   IndustryMatch(c.PreferredIndustry, j.Industry),
	}
}
