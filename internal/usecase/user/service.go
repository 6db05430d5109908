package user

import (
	"context"
	"errors"

	"eqwip/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInternal = errors.New("internal error")

	// ErrUserNotFound marks a token whose subject no longer exists, such
	// as an account deleted while a session was still live.
	ErrUserNotFound = errors.New("user not found")
)

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(usr), nil
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
