package command

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tempoaovivo/account-service/internal/repository"
	"github.com/tempoaovivo/account-service/internal/service"
	"github.com/tempoaovivo/account-service/shared/cqrs"
	"github.com/tempoaovivo/account-service/shared/events"
	"github.com/tempoaovivo/account-service/shared/middleware"
	"github.com/tempoaovivo/account-service/shared/models"
	"github.com/tempoaovivo/account-service/shared/utils"
)

const publishTimeout = 2 * time.Second

// UserWriter is the storage the write side needs.
type UserWriter interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	UpdateProfile(ctx context.Context, id int64, p models.Profile) (int64, error)
}

// EventPublisher appends domain events to a stream.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// NopPublisher drops every event. Used when Redis is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }

// UserCommandService validates and writes user state, then announces the
// change on the user event stream.
type UserCommandService struct {
	repo      UserWriter
	publisher EventPublisher
	log       logrus.FieldLogger
}

func NewUserCommandService(repo UserWriter, publisher EventPublisher, log logrus.FieldLogger) *UserCommandService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &UserCommandService{repo: repo, publisher: publisher, log: log}
}

// Register creates a user and returns its id. A taken email surfaces as
// service.ErrConflict; uniqueness is enforced by the store alone.
func (s *UserCommandService) Register(ctx context.Context, cmd cqrs.RegisterCommand) (int64, error) {
	if err := validate(cmd); err != nil {
		return 0, err
	}

	passwordHash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return 0, service.Internal("hash password", err)
	}

	user := &models.User{
		Name:         cmd.Name,
		Email:        cmd.Email,
		PasswordHash: passwordHash,
		Phone:        cmd.Phone,
		Address:      cmd.Address,
		City:         cmd.City,
		Zip:          cmd.Zip,
	}
	id, err := s.repo.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return 0, service.ErrConflict
	}
	if err != nil {
		return 0, service.Internal("create user", err)
	}

	s.log.WithField("user_id", id).Info("user registered")
	s.publish(ctx, events.UserRegistered, events.UserRegisteredEvent{
		UserID: id,
		Email:  user.Email,
		Name:   user.Name,
	})
	return id, nil
}

// UpdateProfile overwrites the profile of cmd.UserID. A missing row is not
// an error: the update simply matches nothing.
func (s *UserCommandService) UpdateProfile(ctx context.Context, cmd cqrs.UpdateProfileCommand) error {
	if err := validate(cmd); err != nil {
		return err
	}

	rows, err := s.repo.UpdateProfile(ctx, cmd.UserID, models.Profile{
		Name:    cmd.Name,
		Phone:   cmd.Phone,
		Address: cmd.Address,
		City:    cmd.City,
		Zip:     cmd.Zip,
	})
	if err != nil {
		return service.Internal("update profile", err)
	}

	entry := s.log.WithField("user_id", cmd.UserID)
	if rows == 0 {
		entry.Warn("profile update matched no user")
		return nil
	}
	entry.Info("profile updated")
	s.publish(ctx, events.UserProfileUpdated, events.UserProfileUpdatedEvent{
		UserID: cmd.UserID,
		Name:   cmd.Name,
	})
	return nil
}

func (s *UserCommandService) publish(ctx context.Context, eventType string, data any) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, events.UserEventsStream, eventType, data); err != nil {
		s.log.WithError(err).WithField("event", eventType).Error("failed to publish event")
	}
}

func validate(cmd any) error {
	fieldErrs := middleware.ValidateRequest(cmd)
	if len(fieldErrs) == 0 {
		return nil
	}
	out := make(service.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, &service.FieldError{Field: fe.Field, Message: fe.Message, Tag: fe.Type})
	}
	return out
}
