package service

import (
	"context"
	"testing"

	"github.com/Azis2405/wpdev-copy-button/config"
	"github.com/Azis2405/wpdev-copy-button/internal/app/model"
)

func enabledApp() config.AppConfig {
	return config.AppConfig{
		Enabled:      true,
		IgnoredRoles: []string{"administrator"},
	}
}

func TestTrackingService_RecordEvent_Guest(t *testing.T) {
	var stored *model.CopyEvent
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, event *model.CopyEvent) error {
			stored = event
			return nil
		},
	}

	svc := NewTrackingService(nil, repo, nil, enabledApp())
	err := svc.RecordEvent(context.Background(), RecordEventInput{
		TargetID:  "quote-1",
		PageURL:   "https://example.com/blog/a",
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
		ClientIP:  "203.0.113.7",
	})
	if err != nil {
		t.Fatalf("RecordEvent error: %v", err)
	}
	if stored == nil {
		t.Fatal("event was not stored")
	}

	if stored.UserEmail != model.GuestEmail {
		t.Errorf("guest email = %q, want %q", stored.UserEmail, model.GuestEmail)
	}
	if stored.UserGroup != model.NoUserGroup {
		t.Errorf("guest group = %q, want %q", stored.UserGroup, model.NoUserGroup)
	}
	if stored.OperatingSystem != "Windows 10" {
		t.Errorf("os = %q, want Windows 10", stored.OperatingSystem)
	}
	if len(stored.UserIPHash) != 64 {
		t.Errorf("ip hash length = %d, want 64 hex chars", len(stored.UserIPHash))
	}
	if stored.UserIPHash == "203.0.113.7" {
		t.Error("raw IP must never be stored")
	}
	if stored.Time.IsZero() {
		t.Error("event time not set")
	}
}

func TestTrackingService_RecordEvent_IgnoredRole(t *testing.T) {
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, event *model.CopyEvent) error {
			t.Fatal("ignored-role event must not be stored")
			return nil
		},
	}

	svc := NewTrackingService(nil, repo, nil, enabledApp())
	err := svc.RecordEvent(context.Background(), RecordEventInput{
		TargetID: "quote-1",
		PageURL:  "https://example.com/",
		User: &ActingUser{
			Email: "admin@example.com",
			Roles: []string{"editor", "administrator"},
		},
	})
	if err != nil {
		t.Fatalf("RecordEvent should no-op, got error: %v", err)
	}
}

func TestTrackingService_RecordEvent_Disabled(t *testing.T) {
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, event *model.CopyEvent) error {
			t.Fatal("disabled deployment must not store events")
			return nil
		},
	}

	svc := NewTrackingService(nil, repo, nil, config.AppConfig{Enabled: false})
	if err := svc.RecordEvent(context.Background(), RecordEventInput{TargetID: "x"}); err != nil {
		t.Fatalf("RecordEvent should no-op, got error: %v", err)
	}
}

func TestTrackingService_RecordEvent_KnownUser(t *testing.T) {
	var stored *model.CopyEvent
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, event *model.CopyEvent) error {
			stored = event
			return nil
		},
	}

	svc := NewTrackingService(nil, repo, nil, enabledApp())
	err := svc.RecordEvent(context.Background(), RecordEventInput{
		TargetID:  "code-block",
		PageURL:   "https://example.com/docs",
		UserAgent: "Mozilla/5.0 (Linux; Android 13; Pixel 7) Mobile Safari/537.36",
		ClientIP:  "198.51.100.2",
		User: &ActingUser{
			Email: "member@example.com",
			Roles: []string{"subscriber"},
			Group: "Gold Members",
		},
	})
	if err != nil {
		t.Fatalf("RecordEvent error: %v", err)
	}
	if stored.UserEmail != "member@example.com" {
		t.Errorf("email = %q", stored.UserEmail)
	}
	if stored.UserGroup != "Gold Members" {
		t.Errorf("group = %q", stored.UserGroup)
	}
	if stored.OperatingSystem != "Android" {
		t.Errorf("os = %q, want Android", stored.OperatingSystem)
	}
}

func TestTrackingService_RecordEvent_EmptyAgentSentinel(t *testing.T) {
	var stored *model.CopyEvent
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, event *model.CopyEvent) error {
			stored = event
			return nil
		},
	}

	svc := NewTrackingService(nil, repo, nil, enabledApp())
	if err := svc.RecordEvent(context.Background(), RecordEventInput{TargetID: "x"}); err != nil {
		t.Fatalf("RecordEvent error: %v", err)
	}
	if stored.UserAgent != model.UnknownAgent {
		t.Errorf("agent = %q, want sentinel", stored.UserAgent)
	}
	if stored.OperatingSystem != model.UnknownOS {
		t.Errorf("os = %q, want sentinel", stored.OperatingSystem)
	}
}
