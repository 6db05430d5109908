package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackSkillMatch_SubstringInclusive(t *testing.T) {
	// a candidate listing "React.js" satisfies a job requiring "React"
	score := FallbackSkillMatch([]string{"React.js"}, []string{"React"})
	assert.InDelta(t, 1.0, score, 1e-9)

	// containment works in the other direction too
	score = FallbackSkillMatch([]string{"SQL"}, []string{"PostgreSQL"})
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestFallbackSkillMatch_EdgeCases(t *testing.T) {
	assert.InDelta(t, 0.0, FallbackSkillMatch(nil, nil), 1e-9)
	assert.InDelta(t, 0.0, FallbackSkillMatch(nil, []string{"go"}), 1e-9)
	assert.InDelta(t, 0.0, FallbackSkillMatch([]string{"go"}, nil), 1e-9)

	// denominator is the larger of the two sets
	score := FallbackSkillMatch([]string{"go", "sql", "docker", "k8s"}, []string{"go"})
	assert.InDelta(t, 0.25, score, 1e-9)
}

func TestFallbackLocationMatch(t *testing.T) {
	assert.InDelta(t, 1.0, FallbackLocationMatch("Moscow", "Moscow, Russia"), 1e-9)
	assert.InDelta(t, 1.0, FallbackLocationMatch("Moscow, Russia", "moscow"), 1e-9)
	assert.InDelta(t, 0.3, FallbackLocationMatch("Kazan", "Moscow"), 1e-9)
	assert.InDelta(t, 0.5, FallbackLocationMatch("", "Moscow"), 1e-9)
	assert.InDelta(t, 0.5, FallbackLocationMatch("Kazan", ""), 1e-9)
}

func TestCandidateRankingBreakpoints(t *testing.T) {
	b := CandidateRankingBreakpoints
	tests := []struct {
		years int
		want  ExperienceLevel
	}{
		{0, LevelIntern},
		{1, LevelJunior},
		{2, LevelJunior},
		{3, LevelMiddle},
		{4, LevelMiddle},
		{5, LevelSenior},
		{7, LevelSenior},
		{8, LevelLead},
		{20, LevelLead},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, b.LevelForYears(intp(tt.years)), "years=%d", tt.years)
	}
	assert.Equal(t, ExperienceLevel(""), b.LevelForYears(nil))
}

func TestScoreCandidate_Weighted(t *testing.T) {
	c := CandidateFeatures{
		Skills:   []string{"react.js", "node"},
		Level:    LevelSenior,
		Location: "Moscow",
	}
	j := JobFeatures{
		Skills:   []string{"React", "Node"},
		Level:    LevelSenior,
		Location: "Moscow, Russia",
	}

	f := ScoreCandidate(c, j)
	assert.InDelta(t, 1.0, f.Skills, 1e-9)
	assert.InDelta(t, 1.0, f.Experience, 1e-9)
	assert.InDelta(t, 1.0, f.Location, 1e-9)
	assert.InDelta(t, 1.0, f.WeightedFallback(DefaultCandidateRankingWeights()), 1e-9)

	// degraded score still ranks a weaker candidate below
	weaker := CandidateFeatures{Skills: []string{"php"}, Level: LevelIntern, Location: "Kazan"}
	fw := ScoreCandidate(weaker, j)
	assert.Less(t, fw.WeightedFallback(DefaultCandidateRankingWeights()), f.WeightedFallback(DefaultCandidateRankingWeights()))
}
