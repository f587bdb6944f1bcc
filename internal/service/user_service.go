package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"profilehub/internal/cache"
	apperrors "profilehub/internal/errors"
	"profilehub/internal/model"
	"profilehub/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes profile reads.
type UserService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id.String())
}

// GetProfile returns the user without the password hash. Records are never
// updated after signup, so cached copies cannot go stale.
func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	user = user.Sanitized()

	s.cache.SetJSON(ctx, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}
