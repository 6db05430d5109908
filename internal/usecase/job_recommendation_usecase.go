package usecase

import (
	"context"
	"sort"

	"eqwip/internal/domain/matching"
	"eqwip/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	jobPoolLimit          = 200
	maxJobRecommendations = 20
	recentIndustryWindow  = 20
)

type JobRecommendationItem struct {
	JobID       uuid.UUID `json:"jobId"`
	Title       string    `json:"title"`
	CompanyName string    `json:"companyName"`
	Location    string    `json:"location"`
	Score       float64   `json:"score"`
	Reasons     []string  `json:"reasons"`
}

type JobRecommendationUsecase interface {
	GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) ([]JobRecommendationItem, error)
	GetPersonalizedRecommendations(ctx context.Context, userID uuid.UUID, limit int) ([]JobRecommendationItem, error)
}

type JobRecommendation struct {
	candidates repository.CandidateRepository
	jobs       repository.JobRepository
	logger     *zap.Logger
}

func NewJobRecommendationUsecase(
	candidates repository.CandidateRepository,
	jobs repository.JobRepository,
	logger *zap.Logger,
) *JobRecommendation {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobRecommendation{
		candidates: candidates,
		jobs:       jobs,
		logger:     logger,
	}
}

// GetRecommendations ranks the active job pool for the candidate behind
// userID with the default weight vector. The list is computed fresh on every
// call: the exclusion set (applied and saved jobs) changes outside this
// service, so a cached list would keep serving jobs the candidate already
// acted on.
func (u *JobRecommendation) GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) ([]JobRecommendationItem, error) {
	return u.Recommend(ctx, userID, limit, nil)
}

// GetPersonalizedRecommendations is the same ranking under its public alias.
func (u *JobRecommendation) GetPersonalizedRecommendations(ctx context.Context, userID uuid.UUID, limit int) ([]JobRecommendationItem, error) {
	return u.Recommend(ctx, userID, limit, nil)
}

// Recommend ranks jobs with an optional weight override. A nil weights
// pointer selects the default vector. A user without a candidate profile gets
// an empty list, not an error.
func (u *JobRecommendation) Recommend(ctx context.Context, userID uuid.UUID, limit int, weights *matching.Weights) ([]JobRecommendationItem, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if limit <= 0 || limit > maxJobRecommendations {
		limit = maxJobRecommendations
	}

	w := matching.DefaultJobRankingWeights()
	if weights != nil {
		w = *weights
	}

	in, err := u.candidates.FindFeatureInputs(ctx, userID)
	if err != nil {
		u.logger.Warn("candidate profile lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
		return []JobRecommendationItem{}, nil
	}
	if in == nil {
		return []JobRecommendationItem{}, nil
	}

	industries, err := u.candidates.RecentApplicationIndustries(ctx, in.CandidateID, recentIndustryWindow)
	if err != nil {
		u.logger.Warn("recent industries lookup failed", zap.String("candidate_id", in.CandidateID.String()), zap.Error(err))
		industries = nil
	}
	cand := candidateFeatures(*in, matching.JobRankingBreakpoints, matching.PreferredIndustry(industries))

	excluded, err := u.candidates.ExcludedJobIDs(ctx, userID, in.CandidateID)
	if err != nil {
		u.logger.Warn("excluded jobs lookup failed", zap.String("candidate_id", in.CandidateID.String()), zap.Error(err))
		excluded = nil
	}

	pool, err := u.jobs.ListActiveJobs(ctx, excluded, jobPoolLimit)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]JobRecommendationItem, 0, len(pool))
	for _, row := range pool {
		j := jobFeatures(row)
		scores := matching.ScoreJob(cand, j)
		out = append(out, JobRecommendationItem{
			JobID:       j.JobID,
			Title:       j.Title,
			CompanyName: j.EmployerName,
			Location:    j.Location,
			Score:       scores.Weighted(w),
			Reasons:     scores.Reasons(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > maxJobRecommendations {
		out = out[:maxJobRecommendations]
	}

	return clampItems(out, limit), nil
}

func clampItems(items []JobRecommendationItem, limit int) []JobRecommendationItem {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
