package query

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/tempoaovivo/account-service/internal/repository"
	"github.com/tempoaovivo/account-service/internal/service"
	"github.com/tempoaovivo/account-service/shared/cqrs"
	"github.com/tempoaovivo/account-service/shared/middleware"
	"github.com/tempoaovivo/account-service/shared/models"
	"github.com/tempoaovivo/account-service/shared/utils"
)

// UserFinder is the storage the read side needs.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// LoginResult is a signed token plus the public view of its owner.
type LoginResult struct {
	Token string
	User  *models.UserView
}

// AuthQueryService checks credentials and issues tokens. There's no
// CommandService for auth because login doesn't mutate application state.
type AuthQueryService struct {
	users  UserFinder
	tokens *middleware.TokenManager
	log    logrus.FieldLogger
}

func NewAuthQueryService(users UserFinder, tokens *middleware.TokenManager, log logrus.FieldLogger) *AuthQueryService {
	return &AuthQueryService{users: users, tokens: tokens, log: log}
}

// Login returns service.ErrNotFound for an unknown email and
// service.ErrUnauthorized for a wrong password. Both carry the message
// "invalid credentials".
func (s *AuthQueryService) Login(ctx context.Context, cmd cqrs.LoginCommand) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, cmd.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		utils.BurnPasswordCheck(cmd.Password)
		return nil, errInvalidCredentials(service.ErrNotFound)
	}
	if err != nil {
		return nil, service.Internal("find user by email", err)
	}

	if !utils.CheckPassword(cmd.Password, user.PasswordHash) {
		s.log.WithField("user_id", user.ID).Warn("login rejected: wrong password")
		return nil, errInvalidCredentials(service.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, service.Internal("issue token", err)
	}

	s.log.WithField("user_id", user.ID).Info("user logged in")
	return &LoginResult{Token: token, User: user.View()}, nil
}

// credentialsError keeps the two login failure kinds distinguishable with
// errors.Is while giving them the same text.
type credentialsError struct {
	kind error
}

func (e *credentialsError) Error() string { return service.ErrUnauthorized.Error() }

func (e *credentialsError) Unwrap() error { return e.kind }

func errInvalidCredentials(kind error) error {
	return &credentialsError{kind: kind}
}
