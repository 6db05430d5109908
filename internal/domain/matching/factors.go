package matching

import "strings"

// Factor scorers for the candidate-ranks-jobs direction. Each function is
// pure, total, and returns a value in [0,1]. Missing data maps to a neutral
// constant instead of an error: a sparse profile still yields a usable
// ranking. The single hard zero is the empty skill set, where no data means
// no match.
const (
	locationMissingScore  = 0.5
	locationMismatchScore = 0.4

	salaryNeutralScore  = 0.6
	salaryNearBandScore = 0.8
	salaryFarScore      = 0.5
	salaryTolerance     = 0.2

	industryNeutralScore  = 0.6
	industryMismatchScore = 0.6
)

// experience distance -> score, keyed by |candidate index - job index|
var experienceDistanceScores = [...]float64{1.0, 0.8, 0.6}

const experienceFarScore = 0.4

// SkillMatch scores the case-insensitive overlap between two skill sets as
// |intersection| / max(|a|, |b|). Either side empty scores 0.
func SkillMatch(candidateSkills, jobSkills []string) float64 {
	if len(candidateSkills) == 0 || len(jobSkills) == 0 {
		return 0
	}

	jobSet := make(map[string]struct{}, len(jobSkills))
	for _, s := range jobSkills {
		jobSet[strings.ToLower(s)] = struct{}{}
	}

	matches := 0
	seen := make(map[string]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		k := strings.ToLower(s)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := jobSet[k]; ok {
			matches++
		}
	}

	denom := len(jobSet)
	if len(seen) > denom {
		denom = len(seen)
	}
	return float64(matches) / float64(denom)
}

// ExperienceMatch scores the distance between two level bands. An unknown
// candidate level indexes as INTERN.
func ExperienceMatch(candidateLevel, jobLevel ExperienceLevel) float64 {
	diff := candidateLevel.Index() - jobLevel.Index()
	if diff < 0 {
		diff = -diff
	}
	if diff < len(experienceDistanceScores) {
		return experienceDistanceScores[diff]
	}
	return experienceFarScore
}

// LocationMatch scores exact case-insensitive equality. A mismatch keeps a
// non-zero partial score since remote and hybrid arrangements make location a
// soft filter.
func LocationMatch(candidateLocation, jobLocation string) float64 {
	if candidateLocation == "" || jobLocation == "" {
		return locationMissingScore
	}
	if strings.EqualFold(candidateLocation, jobLocation) {
		return 1
	}
	return locationMismatchScore
}

// SalaryMatch compares the candidate's expected midpoint against the job's
// midpoint with a tolerance band of ±20% of the expectation.
func SalaryMatch(expectedMid *int, jobMin, jobMax *int) float64 {
	jobMid := SalaryMidpoint(jobMin, jobMax)
	if expectedMid == nil || jobMid == nil || *expectedMid == 0 || *jobMid == 0 {
		return salaryNeutralScore
	}

	diff := float64(*expectedMid - *jobMid)
	if diff < 0 {
		diff = -diff
	}
	tol := float64(*expectedMid) * salaryTolerance
	if tol < 0 {
		tol = -tol
	}

	switch {
	case diff <= tol:
		return 1
	case diff <= tol*2:
		return salaryNearBandScore
	default:
		return salaryFarScore
	}
}

// IndustryMatch scores exact equality of the candidate's preferred industry
// against the employer's. Mismatch is a soft penalty, not an exclusion.
func IndustryMatch(preferred, industry string) float64 {
	if preferred == "" || industry == "" {
		return industryNeutralScore
	}
	if preferred == industry {
		return 1
	}
	return industryMismatchScore
}
