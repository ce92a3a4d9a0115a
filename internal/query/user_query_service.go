package query

import (
	"context"
	"errors"

	"github.com/tempoaovivo/account-service/internal/repository"
	"github.com/tempoaovivo/account-service/internal/service"
	"github.com/tempoaovivo/account-service/shared/cqrs"
	"github.com/tempoaovivo/account-service/shared/models"
)

// UserQueryService serves profile reads straight from the store.
type UserQueryService struct {
	users UserFinder
}

func NewUserQueryService(users UserFinder) *UserQueryService {
	return &UserQueryService{users: users}
}

// GetProfile returns service.ErrNotFound when no row has the id. Callers
// rely on that after the store has been wiped.
func (s *UserQueryService) GetProfile(ctx context.Context, q cqrs.GetProfileQuery) (*models.UserView, error) {
	user, err := s.users.GetByID(ctx, q.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, service.ErrNotFound
	}
	if err != nil {
		return nil, service.Internal("find user by id", err)
	}
	return user.View(), nil
}
