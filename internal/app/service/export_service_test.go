package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/Azis2405/wpdev-copy-button/internal/analytics"
	"github.com/Azis2405/wpdev-copy-button/internal/app/model"
	"github.com/Azis2405/wpdev-copy-button/internal/util"
)

func TestExportService_ColumnOrder(t *testing.T) {
	hash := util.HashIP("203.0.113.7")
	repo := &mockEventRepo{
		findAllFn: func(ctx context.Context, filter analytics.Filter) ([]model.CopyEvent, error) {
			return []model.CopyEvent{{
				ID:              1,
				Time:            time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
				TargetID:        "quote-1",
				PageURL:         "https://example.com/blog/post-1",
				UserEmail:       "member@example.com",
				UserIPHash:      hash,
				UserAgent:       "Mozilla/5.0 (Linux; Android 13; Pixel 7) Mobile Safari/537.36",
				UserGroup:       "Gold",
				OperatingSystem: "Android",
			}}, nil
		},
	}
	contentRepo := &mockContentRepo{
		items:  map[string]uint64{"https://example.com/blog/post-1": 42},
		labels: map[uint64]string{42: "Post"},
		terms:  map[uint64][]string{42: {"News", "Tech"}},
	}
	svc := NewExportService(repo, contentRepo)

	var buf bytes.Buffer
	if err := svc.WriteCSV(context.Background(), analytics.Filter{}, &buf); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv back: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want header + 1 row", len(records))
	}

	wantHeader := []string{
		"Time", "Target ID", "Page URL", "Content Type", "Taxonomy Terms",
		"User", "User Group", "IP Hash", "Device", "OS", "User Agent",
	}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}

	row := records[1]
	if row[0] != "2024-05-01 10:30:00" {
		t.Errorf("time = %q", row[0])
	}
	if row[3] != "Post" {
		t.Errorf("content type = %q", row[3])
	}
	if row[4] != "News, Tech" {
		t.Errorf("terms = %q", row[4])
	}
	if row[7] != hash {
		t.Errorf("export must carry the full hash, got %q", row[7])
	}
	if row[8] != "Mobile" {
		t.Errorf("device = %q, want Mobile", row[8])
	}
}

func TestExportService_UnresolvedTermsSentinel(t *testing.T) {
	repo := &mockEventRepo{
		findAllFn: func(ctx context.Context, filter analytics.Filter) ([]model.CopyEvent, error) {
			return []model.CopyEvent{{
				Time:    time.Now(),
				PageURL: "https://example.com/not-content",
			}}, nil
		},
	}
	svc := NewExportService(repo, emptyContent())

	var buf bytes.Buffer
	if err := svc.WriteCSV(context.Background(), analytics.Filter{}, &buf); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv back: %v", err)
	}
	row := records[1]
	if row[3] != model.NonSingularLabel {
		t.Errorf("content type = %q, want sentinel", row[3])
	}
	if row[4] != "N/A" {
		t.Errorf("terms = %q, want N/A", row[4])
	}
}

func TestExportService_AgreesWithListing(t *testing.T) {
	events := []model.CopyEvent{
		{
			ID: 1, Time: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
			TargetID: "a", PageURL: "https://example.com/x",
			UserAgent: "Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X)",
		},
		{
			ID: 2, Time: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
			TargetID: "b", PageURL: "https://example.com/y",
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64)",
		},
	}
	repo := &mockEventRepo{
		countFn: func(ctx context.Context, filter analytics.Filter) (int64, error) {
			return int64(len(events)), nil
		},
		findPageFn: func(ctx context.Context, filter analytics.Filter, sortBy analytics.SortColumn, dir analytics.SortDirection, limit, offset int) ([]model.CopyEvent, error) {
			return events, nil
		},
		findAllFn: func(ctx context.Context, filter analytics.Filter) ([]model.CopyEvent, error) {
			return events, nil
		},
	}
	contentRepo := emptyContent()

	listing := NewListingService(repo, contentRepo)
	page, err := listing.ListEvents(context.Background(), analytics.Filter{}, analytics.SortByTime, analytics.SortDescending, 1)
	if err != nil {
		t.Fatalf("ListEvents error: %v", err)
	}

	var buf bytes.Buffer
	if err := NewExportService(repo, contentRepo).WriteCSV(context.Background(), analytics.Filter{}, &buf); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv back: %v", err)
	}
	rows := records[1:]

	if len(rows) != len(page.Rows) {
		t.Fatalf("export rows = %d, listing rows = %d", len(rows), len(page.Rows))
	}
	for i := range rows {
		if rows[i][1] != page.Rows[i].TargetID {
			t.Errorf("row %d ordering differs: %q vs %q", i, rows[i][1], page.Rows[i].TargetID)
		}
		if rows[i][8] != string(page.Rows[i].DeviceClass) {
			t.Errorf("row %d device differs: %q vs %q", i, rows[i][8], page.Rows[i].DeviceClass)
		}
		if rows[i][3] != page.Rows[i].ContentTypeLabel {
			t.Errorf("row %d content type differs: %q vs %q", i, rows[i][3], page.Rows[i].ContentTypeLabel)
		}
	}
}
