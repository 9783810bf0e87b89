package service

import (
	"context"
	"testing"
	"time"

	"github.com/Azis2405/wpdev-copy-button/internal/analytics"
	"github.com/Azis2405/wpdev-copy-button/internal/app/model"
	"github.com/Azis2405/wpdev-copy-button/internal/util"
)

func emptyContent() *mockContentRepo {
	return &mockContentRepo{items: map[string]uint64{}}
}

func TestListingService_EmptyStore(t *testing.T) {
	repo := &mockEventRepo{}
	svc := NewListingService(repo, emptyContent())

	page, err := svc.ListEvents(context.Background(), analytics.Filter{}, analytics.SortByTime, analytics.SortDescending, 1)
	if err != nil {
		t.Fatalf("ListEvents error: %v", err)
	}
	if page.TotalCount != 0 {
		t.Errorf("total = %d, want 0", page.TotalCount)
	}
	if page.TotalPages != 0 {
		t.Errorf("pages = %d, want 0", page.TotalPages)
	}
	if len(page.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(page.Rows))
	}
}

func TestListingService_PageMath(t *testing.T) {
	cases := []struct {
		total     int64
		wantPages int
	}{
		{0, 0},
		{1, 1},
		{50, 1},
		{51, 2},
		{100, 2},
		{101, 3},
	}

	for _, tc := range cases {
		repo := &mockEventRepo{
			countFn: func(ctx context.Context, filter analytics.Filter) (int64, error) {
				return tc.total, nil
			},
		}
		svc := NewListingService(repo, emptyContent())

		page, err := svc.ListEvents(context.Background(), analytics.Filter{}, analytics.SortByTime, analytics.SortDescending, 1)
		if err != nil {
			t.Fatalf("ListEvents error: %v", err)
		}
		if page.TotalPages != tc.wantPages {
			t.Errorf("total %d: pages = %d, want %d", tc.total, page.TotalPages, tc.wantPages)
		}
	}
}

func TestListingService_FixedPageSize(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &mockEventRepo{
		countFn: func(ctx context.Context, filter analytics.Filter) (int64, error) {
			return 500, nil
		},
		findPageFn: func(ctx context.Context, filter analytics.Filter, sortBy analytics.SortColumn, dir analytics.SortDirection, limit, offset int) ([]model.CopyEvent, error) {
			gotLimit, gotOffset = limit, offset
			return nil, nil
		},
	}
	svc := NewListingService(repo, emptyContent())

	if _, err := svc.ListEvents(context.Background(), analytics.Filter{}, analytics.SortByTime, analytics.SortDescending, 3); err != nil {
		t.Fatalf("ListEvents error: %v", err)
	}
	if gotLimit != 50 {
		t.Errorf("limit = %d, want 50", gotLimit)
	}
	if gotOffset != 100 {
		t.Errorf("offset = %d, want 100", gotOffset)
	}
}

func TestListingService_OutOfRangePage(t *testing.T) {
	repo := &mockEventRepo{
		countFn: func(ctx context.Context, filter analytics.Filter) (int64, error) {
			return 10, nil
		},
		findPageFn: func(ctx context.Context, filter analytics.Filter, sortBy analytics.SortColumn, dir analytics.SortDirection, limit, offset int) ([]model.CopyEvent, error) {
			t.Fatal("out-of-range page must not hit the store")
			return nil, nil
		},
	}
	svc := NewListingService(repo, emptyContent())

	page, err := svc.ListEvents(context.Background(), analytics.Filter{}, analytics.SortByTime, analytics.SortDescending, 9)
	if err != nil {
		t.Fatalf("ListEvents error: %v", err)
	}
	if len(page.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(page.Rows))
	}
	if page.TotalCount != 10 || page.TotalPages != 1 {
		t.Errorf("totals = %d/%d, want 10/1", page.TotalCount, page.TotalPages)
	}
}

func TestListingService_RowEnrichment(t *testing.T) {
	hash := util.HashIP("203.0.113.7")
	event := model.CopyEvent{
		ID:              1,
		Time:            time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		TargetID:        "quote-1",
		PageURL:         "https://example.com/blog/post-1/",
		UserEmail:       "Guest",
		UserIPHash:      hash,
		UserAgent:       "Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X)",
		UserGroup:       "N/A",
		OperatingSystem: "iOS",
	}
	repo := &mockEventRepo{
		countFn: func(ctx context.Context, filter analytics.Filter) (int64, error) {
			return 1, nil
		},
		findPageFn: func(ctx context.Context, filter analytics.Filter, sortBy analytics.SortColumn, dir analytics.SortDirection, limit, offset int) ([]model.CopyEvent, error) {
			return []model.CopyEvent{event}, nil
		},
	}
	contentRepo := &mockContentRepo{
		items:  map[string]uint64{"https://example.com/blog/post-1/": 42},
		labels: map[uint64]string{42: "Post"},
		terms:  map[uint64][]string{42: {"News"}},
	}
	svc := NewListingService(repo, contentRepo)

	page, err := svc.ListEvents(context.Background(), analytics.Filter{}, analytics.SortByTime, analytics.SortDescending, 1)
	if err != nil {
		t.Fatalf("ListEvents error: %v", err)
	}
	if len(page.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(page.Rows))
	}

	row := page.Rows[0]
	if row.PageLabel != "blog/post-1" {
		t.Errorf("page label = %q", row.PageLabel)
	}
	if row.ContentTypeLabel != "Post" {
		t.Errorf("content type = %q", row.ContentTypeLabel)
	}
	if row.DeviceClass != analytics.DeviceTablet {
		t.Errorf("device = %q, want Tablet", row.DeviceClass)
	}
	if row.ShortIPHash != hash[:12]+"..." {
		t.Errorf("short hash = %q", row.ShortIPHash)
	}
	if row.UserIPHash != hash {
		t.Error("full hash must be retained on the row")
	}
}
