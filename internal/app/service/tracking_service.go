package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Azis2405/wpdev-copy-button/config"
	"github.com/Azis2405/wpdev-copy-button/internal/analytics"
	"github.com/Azis2405/wpdev-copy-button/internal/app/model"
	"github.com/Azis2405/wpdev-copy-button/internal/app/repository"
	"github.com/Azis2405/wpdev-copy-button/internal/util"
	"go.uber.org/zap"
)

// ActingUser identifies the user behind a copy click, as supplied by the
// host platform. A nil ActingUser means a guest.
type ActingUser struct {
	Email string
	Roles []string
	Group string
}

// RecordEventInput carries the raw tracking data for one click.
type RecordEventInput struct {
	TargetID  string
	PageURL   string
	UserAgent string
	ClientIP  string
	User      *ActingUser
}

// TrackingService records copy events. Events flow through the NATS
// publisher when one is configured, otherwise straight into the store.
type TrackingService struct {
	logger    *zap.Logger
	repo      repository.CopyEventRepository
	publisher *EventPublisher
	app       config.AppConfig
}

// NewTrackingService builds a tracking service. publisher may be nil for
// synchronous storage.
func NewTrackingService(logger *zap.Logger, repo repository.CopyEventRepository, publisher *EventPublisher, app config.AppConfig) *TrackingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrackingService{
		logger:    logger,
		repo:      repo,
		publisher: publisher,
		app:       app,
	}
}

// RecordEvent stores one copy click. Clicks from disabled deployments or
// from users whose role is on the ignore list are dropped without error.
// The event timestamp is always server receipt time.
func (s *TrackingService) RecordEvent(ctx context.Context, input RecordEventInput) error {
	if !s.app.Enabled {
		return nil
	}
	if s.isIgnored(input.User) {
		s.logger.Debug("copy event ignored by role",
			zap.String("target_id", input.TargetID))
		return nil
	}

	event := s.buildEvent(input)

	if s.publisher != nil {
		if err := s.publisher.Publish(event); err != nil {
			return fmt.Errorf("publish copy event: %w", err)
		}
		return nil
	}

	if err := s.repo.Create(ctx, &event); err != nil {
		return fmt.Errorf("store copy event: %w", err)
	}
	return nil
}

func (s *TrackingService) buildEvent(input RecordEventInput) model.CopyEvent {
	agent := input.UserAgent
	if agent == "" {
		agent = model.UnknownAgent
	}

	email := model.GuestEmail
	group := model.NoUserGroup
	if input.User != nil {
		if input.User.Email != "" {
			email = input.User.Email
		}
		if input.User.Group != "" {
			group = input.User.Group
		}
	}

	return model.CopyEvent{
		Time:            time.Now().UTC(),
		TargetID:        input.TargetID,
		PageURL:         input.PageURL,
		UserEmail:       email,
		UserIPHash:      util.HashIP(input.ClientIP),
		UserAgent:       agent,
		UserGroup:       group,
		OperatingSystem: analytics.ClassifyOS(agent),
	}
}

func (s *TrackingService) isIgnored(user *ActingUser) bool {
	if user == nil {
		return false
	}
	for _, role := range user.Roles {
		if s.app.IsIgnoredRole(role) {
			return true
		}
	}
	return false
}
