package usecase

import (
	"context"
	"time"
)

// RecommendationCache is the slice of the cache layer the usecases need. A
// nil implementation is treated as a miss on every read. Invalidation with an
// empty jobID drops every cached ranking.
type RecommendationCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateCandidateRecommendations(ctx context.Context, jobID string) error
}
