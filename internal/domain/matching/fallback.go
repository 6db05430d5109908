package matching

import "strings"

// Degraded-mode scoring for the employer-ranks-candidates direction. The
// fallback trades precision for recall: skill names match on substring
// containment in either direction, location matches on substring containment,
// and levels derive from CandidateRankingBreakpoints.

const fallbackLocationMismatchScore = 0.3

// FallbackWeights is the three-factor weight vector of the degraded ranking.
type FallbackWeights struct {
	Skills     float64
	Experience float64
	Location   float64
}

// DefaultCandidateRankingWeights returns the mix used when ranking candidates
// against a single job without the primary recommender.
func DefaultCandidateRankingWeights() FallbackWeights {
	return FallbackWeights{
		Skills:     0.6,
		Experience: 0.25,
		Location:   0.15,
	}
}

// FallbackSkillMatch counts a job skill as matched when any candidate skill
// contains it or is contained by it, case-insensitively. "React" therefore
// matches a candidate listing "React.js". Both sides empty scores 0.
func FallbackSkillMatch(candidateSkills, jobSkills []string) float64 {
	if len(candidateSkills) == 0 && len(jobSkills) == 0 {
		return 0
	}

	cand := make([]string, 0, len(candidateSkills))
	for _, s := range candidateSkills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			cand = append(cand, s)
		}
	}

	matches := 0
	for _, js := range jobSkills {
		js = strings.ToLower(strings.TrimSpace(js))
		if js == "" {
			continue
		}
		for _, cs := range cand {
			if strings.Contains(cs, js) || strings.Contains(js, cs) {
				matches++
				break
			}
		}
	}

	denom := len(jobSkills)
	if len(cand) > denom {
		denom = len(cand)
	}
	if denom == 0 {
		denom = 1
	}
	return float64(matches) / float64(denom)
}

// FallbackLocationMatch scores substring containment in either direction.
func FallbackLocationMatch(candidateLocation, jobLocation string) float64 {
	if candidateLocation == "" || jobLocation == "" {
		return locationMissingScore
	}
	c := strings.ToLower(candidateLocation)
	j := strings.ToLower(jobLocation)
	if strings.Contains(c, j) || strings.Contains(j, c) {
		return 1
	}
	return fallbackLocationMismatchScore
}

// ScoreCandidate computes the degraded three-factor score of a candidate
// against a job. The candidate level must already be derived with
// CandidateRankingBreakpoints.
func ScoreCandidate(c CandidateFeatures, j JobFeatures) FactorScores {
	return FactorScores{
		Skills:     FallbackSkillMatch(c.Skills, j.Skills),
		Experience: ExperienceMatch(c.Level, j.Level),
		Location:   FallbackLocationMatch(c.Location, j.Location),
	}
}

// WeightedFallback combines the three degraded factors.
func (f FactorScores) WeightedFallback(w FallbackWeights) float64 {
	return f.Skills*w.Skills + f.Experience*w.Experience + f.Location*w.Location
}
