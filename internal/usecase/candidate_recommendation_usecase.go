package usecase

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"eqwip/internal/domain/matching"
	"eqwip/internal/infrastructure/cache"
	"eqwip/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultCandidateRecommendations = 10
	maxCandidateRecommendations     = 50
	candidatePoolLimit              = 50
)

var ErrJobNotFound = errors.New("job not found")

type CandidateRecommendationItem struct {
	CandidateID uuid.UUID `json:"candidateId"`
	Name        string    `json:"name"`
	Score       float64   `json:"score"`
	Reasons     []string  `json:"reasons"`
}

// CandidateRecommender is the primary ranking engine. Any failure it reports
// makes the usecase fall back to local scoring instead of surfacing the error.
type CandidateRecommender interface {
	RecommendCandidates(ctx context.Context, jobID uuid.UUID, limit int) ([]CandidateRecommendationItem, error)
}

// MatchNotifier pushes a match event to subscribed employer clients.
type MatchNotifier interface {
	CandidatesMatched(jobID uuid.UUID, count int)
}

type CandidateRecommendationUsecase interface {
	GetCandidateRecommendations(ctx context.Context, jobID uuid.UUID, limit int) ([]CandidateRecommendationItem, error)
}

type CandidateRecommendation struct {
	primary    CandidateRecommender
	candidates repository.CandidateRepository
	jobs       repository.JobRepository
	cache      RecommendationCache
	cacheTTL   time.Duration
	notifier   MatchNotifier
	logger     *zap.Logger
}

// NewCandidateRecommendationUsecase accepts a nil primary engine, a nil
// cache, and a nil notifier; all three are optional.
func NewCandidateRecommendationUsecase(
	primary CandidateRecommender,
	candidates repository.CandidateRepository,
	jobs repository.JobRepository,
	recCache RecommendationCache,
	notifier MatchNotifier,
	logger *zap.Logger,
) *CandidateRecommendation {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CandidateRecommendation{
		primary:    primary,
		candidates: candidates,
		jobs:       jobs,
		cache:      recCache,
		cacheTTL:   cache.DefaultTTLFromEnv(),
		notifier:   notifier,
		logger:     logger,
	}
}

// GetCandidateRecommendations serves a ranking per job with a TTL cache in
// front. Caching is safe on this side: the inputs are candidate profiles,
// which mutate through paths that invalidate the cache, and there is no
// per-viewer exclusion set. A cache hit does not notify; the match event
// fires once per computed batch.
func (u *CandidateRecommendation) GetCandidateRecommendations(ctx context.Context, jobID uuid.UUID, limit int) ([]CandidateRecommendationItem, error) {
	if jobID == uuid.Nil {
		return nil, ErrJobNotFound
	}
	if limit <= 0 {
		limit = defaultCandidateRecommendations
	}
	if limit > maxCandidateRecommendations {
		limit = maxCandidateRecommendations
	}

	cacheKey := cache.CandidateRecommendationKeyPrefix + jobID.String() + ":" + strconv.Itoa(limit)
	if u.cache != nil {
		var cached []CandidateRecommendationItem
		if ok, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && ok {
			return u.clamp(cached, limit), nil
		}
	}

	out, err := u.rank(ctx, jobID, limit)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, out, u.cacheTTL); err != nil {
			u.logger.Warn("candidate recommendation cache write failed",
				zap.String("job_id", jobID.String()), zap.Error(err))
		}
	}

	u.notify(jobID, len(out))
	return out, nil
}

func (u *CandidateRecommendation) rank(ctx context.Context, jobID uuid.UUID, limit int) ([]CandidateRecommendationItem, error) {
	if u.primary != nil {
		items, err := u.primary.RecommendCandidates(ctx, jobID, limit)
		if err == nil {
			return u.clamp(items, limit), nil
		}
		u.logger.Warn("primary recommender failed, using fallback ranking",
			zap.String("job_id", jobID.String()), zap.Error(err))
	}

	return u.fallbackRanking(ctx, jobID, limit)
}

func (u *CandidateRecommendation) fallbackRanking(ctx context.Context, jobID uuid.UUID, limit int) ([]CandidateRecommendationItem, error) {
	row, err := u.jobs.FindFeatureInputs(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	if row == nil {
		return []CandidateRecommendationItem{}, nil
	}
	job := jobFeatures(*row)

	pool, err := u.candidates.ListMatchingSkillsOrExperience(ctx, job.Skills, candidatePoolLimit)
	if err != nil {
		return nil, ErrInternal
	}

	weights := matching.DefaultCandidateRankingWeights()
	out := make([]CandidateRecommendationItem, 0, len(pool))
	for _, in := range pool {
		if in.CandidateID == uuid.Nil {
			continue
		}
		cand := candidateFeatures(in, matching.CandidateRankingBreakpoints, "")
		scores := matching.ScoreCandidate(cand, job)
		out = append(out, CandidateRecommendationItem{
			CandidateID: in.CandidateID,
			Name:        in.Name,
			Score:       scores.WeightedFallback(weights),
			Reasons:     scores.Reasons(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	return u.clamp(out, limit), nil
}

func (u *CandidateRecommendation) clamp(items []CandidateRecommendationItem, limit int) []CandidateRecommendationItem {
	if items == nil {
		return []CandidateRecommendationItem{}
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

func (u *CandidateRecommendation) notify(jobID uuid.UUID, count int) {
	if u.notifier == nil || count == 0 {
		return
	}
	u.notifier.CandidatesMatched(jobID, count)
}
