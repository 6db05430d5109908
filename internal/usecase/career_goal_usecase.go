package usecase

import (
	"context"
	"errors"
	"time"

	"eqwip/internal/domain/career"
	"eqwip/internal/domain/matching"
	"eqwip/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrCandidateProfileNotFound = errors.New("candidate profile not found")

type CareerGoalUsecase interface {
	ListGoals(ctx context.Context, userID uuid.UUID) ([]career.GoalWithProgress, error)
	SaveGoals(ctx context.Context, userID uuid.UUID, goals []career.Goal) ([]career.GoalWithProgress, error)
}

type CareerGoal struct {
	candidates repository.CandidateRepository
	cache      RecommendationCache
	logger     *zap.Logger
	now        func() time.Time
}

// NewCareerGoalUsecase accepts a nil cache; invalidation is then skipped.
func NewCareerGoalUsecase(candidates repository.CandidateRepository, recCache RecommendationCache, logger *zap.Logger) *CareerGoal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CareerGoal{candidates: candidates, cache: recCache, logger: logger, now: time.Now}
}

// ListGoals returns the stored goals with their progress. A user without a
// candidate profile gets an empty list.
func (u *CareerGoal) ListGoals(ctx context.Context, userID uuid.UUID) ([]career.GoalWithProgress, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	in, err := u.candidates.FindGoalInputs(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return []career.GoalWithProgress{}, nil
		}
		return nil, ErrInternal
	}

	goals := career.DecodeGoals(in.Preferences, u.now())
	return career.WithProgress(goals, skillLevelMap(in.Skills)), nil
}

// SaveGoals replaces the stored goal list. Unlike ListGoals, a missing
// candidate profile is an error here since there is nothing to write to.
func (u *CareerGoal) SaveGoals(ctx context.Context, userID uuid.UUID, goals []career.Goal) ([]career.GoalWithProgress, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	in, err := u.candidates.FindGoalInputs(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return nil, ErrCandidateProfileNotFound
		}
		return nil, ErrInternal
	}

	sanitized := career.SanitizeGoals(goals, u.now())
	merged, err := career.MergeGoals(in.Preferences, sanitized)
	if err != nil {
		return nil, ErrInternal
	}

	if err := u.candidates.WritePreferences(ctx, in.CandidateID, merged); err != nil {
		if errors.Is(err, repository.ErrCandidateNotFound) {
			return nil, ErrCandidateProfileNotFound
		}
		return nil, ErrInternal
	}

	// The stored profile feeds the employer-side rankings, so every cached
	// ranking may be stale now.
	if u.cache != nil {
		if err := u.cache.InvalidateCandidateRecommendations(ctx, ""); err != nil {
			u.logger.Warn("recommendation cache invalidation failed",
				zap.String("user_id", userID.String()), zap.Error(err))
		}
	}

	return career.WithProgress(sanitized, skillLevelMap(in.Skills)), nil
}

func skillLevelMap(skills []repository.CandidateSkill) map[string]int {
	levels := make([]matching.SkillLevel, 0, len(skills))
	for _, s := range skills {
		levels = append(levels, matching.SkillLevel{Name: s.Name, Level: s.Level})
	}
	return matching.NormalizeSkillLevels(levels)
}
