package usecase

import (
	"eqwip/internal/domain/matching"
	"eqwip/internal/repository"
)

// candidateFeatures normalizes raw profile rows into the comparable shape the
// scorers work on. The breakpoint set decides which ranking direction the
// level band is computed for.
func candidateFeatures(in repository.CandidateFeatureInputs, breakpoints matching.LevelBreakpoints, preferredIndustry string) matching.CandidateFeatures {
	names := make([]string, 0, len(in.Skills))
	levels := make([]matching.SkillLevel, 0, len(in.Skills))
	for _, s := range in.Skills {
		names = append(names, s.Name)
		levels = append(levels, matching.SkillLevel{Name: s.Name, Level: s.Level})
	}

	return matching.CandidateFeatures{
		CandidateID:       in.CandidateID,
		UserID:            in.UserID,
		Name:              in.Name,
		Skills:            matching.NormalizeSkillNames(names),
		SkillLevels:       matching.NormalizeSkillLevels(levels),
		Level:             breakpoints.LevelForYears(in.ExperienceYears),
		Location:          in.Location,
		ExpectedSalaryMid: matching.SalaryMidpoint(in.SalaryMin, in.SalaryMax),
		PreferredIndustry: preferredIndustry,
	}
}

func jobFeatures(in repository.JobFeatureInputs) matching.JobFeatures {
	return matching.JobFeatures{
		JobID:        in.JobID,
		Title:        in.Title,
		EmployerName: in.EmployerName,
		Skills:       matching.NormalizeSkillNames(in.Skills),
		Level:        matching.ExperienceLevel(in.ExperienceLevel),
		Location:     in.Location,
		SalaryMin:    in.SalaryMin,
		SalaryMax:    in.SalaryMax,
		Industry:     in.Industry,
		IsPromoted:   in.IsPromoted,
	}
}
