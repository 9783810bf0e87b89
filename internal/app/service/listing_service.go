package service

import (
	"context"
	"fmt"

	"github.com/Azis2405/wpdev-copy-button/internal/analytics"
	"github.com/Azis2405/wpdev-copy-button/internal/app/model"
	"github.com/Azis2405/wpdev-copy-button/internal/app/repository"
	"github.com/Azis2405/wpdev-copy-button/internal/content"
)

// PageSize is the fixed listing page size.
const PageSize = 50

const shortHashLen = 12

// EventRow is one display-ready listing row: the stored event plus the
// derived fields. UserIPHash inside the embedded event stays untruncated
// for export paths.
type EventRow struct {
	model.CopyEvent
	PageLabel        string                `json:"page_label"`
	ContentTypeLabel string                `json:"content_type_label"`
	DeviceClass      analytics.DeviceClass `json:"device_class"`
	ShortIPHash      string                `json:"short_ip_hash"`
}

// EventPage is one page of listing results with pagination totals.
type EventPage struct {
	Rows       []EventRow `json:"rows"`
	TotalCount int64      `json:"total_count"`
	TotalPages int        `json:"total_pages"`
}

// ListingService pages and sorts the event store and enriches rows for
// display.
type ListingService struct {
	repo    repository.CopyEventRepository
	content content.Repository
}

// NewListingService builds a listing service over the event store and the
// content repository.
func NewListingService(repo repository.CopyEventRepository, contentRepo content.Repository) *ListingService {
	return &ListingService{repo: repo, content: contentRepo}
}

// ListEvents returns the requested 1-based page of filtered, sorted,
// display-enriched events. Out-of-range pages yield an empty row slice,
// not an error.
func (s *ListingService) ListEvents(ctx context.Context, filter analytics.Filter, sortBy analytics.SortColumn, dir analytics.SortDirection, page int) (*EventPage, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}

	result := &EventPage{
		Rows:       []EventRow{},
		TotalCount: total,
		TotalPages: int((total + PageSize - 1) / PageSize),
	}

	offset := (page - 1) * PageSize
	if total == 0 || int64(offset) >= total {
		return result, nil
	}

	events, err := s.repo.FindPage(ctx, filter, sortBy, dir, PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("fetch event page: %w", err)
	}

	resolver := content.NewResolver(s.content)
	rows, err := enrichRows(ctx, events, resolver)
	if err != nil {
		return nil, err
	}
	result.Rows = rows
	return result, nil
}

// enrichRows derives the display fields for a batch of events, sharing one
// resolver so repeated URLs hit the memo cache.
func enrichRows(ctx context.Context, events []model.CopyEvent, resolver *content.Resolver) ([]EventRow, error) {
	rows := make([]EventRow, 0, len(events))
	for _, event := range events {
		lookup, err := resolver.Resolve(ctx, event.PageURL)
		if err != nil {
			return nil, fmt.Errorf("resolve content for %s: %w", event.PageURL, err)
		}
		rows = append(rows, EventRow{
			CopyEvent:        event,
			PageLabel:        analytics.PageLabel(event.PageURL),
			ContentTypeLabel: lookup.TypeLabel,
			DeviceClass:      analytics.ClassifyDevice(event.UserAgent),
			ShortIPHash:      shortHash(event.UserIPHash),
		})
	}
	return rows, nil
}

func shortHash(hash string) string {
	if len(hash) <= shortHashLen {
		return hash
	}
	return hash[:shortHashLen] + "..."
}
