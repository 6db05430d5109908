package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eqwip/internal/domain/user"
)

type stubUserRepo struct {
	byID map[uuid.UUID]user.User
	err  error
}

func (s *stubUserRepo) Create(ctx context.Context, u user.User) error { return nil }

func (s *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	if s.err != nil {
		return user.User{}, s.err
	}
	u, ok := s.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}

func TestService_GetMe_StripsPasswordHash(t *testing.T) {
	id := uuid.New()
	repo := &stubUserRepo{byID: map[uuid.UUID]user.User{
		id: {ID: id, Email: "ana@eqwip.dev", Name: "Ana", Role: user.RoleCandidate, PasswordHash: "secret"},
	}}

	got, err := NewService(repo).GetMe(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "ana@eqwip.dev", got.Email)
	assert.Empty(t, got.PasswordHash)
}

// A deleted account with a still-valid token surfaces as a not-found, not as
// a server error.
func TestService_GetMe_DeletedUser(t *testing.T) {
	svc := NewService(&stubUserRepo{byID: map[uuid.UUID]user.User{}})

	_, err := svc.GetMe(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_GetMe_RepoFailure(t *testing.T) {
	svc := NewService(&stubUserRepo{err: errors.New("connection reset")})

	_, err := svc.GetMe(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
}
