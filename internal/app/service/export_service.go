package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Azis2405/wpdev-copy-button/internal/analytics"
	"github.com/Azis2405/wpdev-copy-button/internal/app/repository"
	"github.com/Azis2405/wpdev-copy-button/internal/content"
)

// csvHeader is the fixed export column order.
var csvHeader = []string{
	"Time",
	"Target ID",
	"Page URL",
	"Content Type",
	"Taxonomy Terms",
	"User",
	"User Group",
	"IP Hash",
	"Device",
	"OS",
	"User Agent",
}

// ExportService streams the full filtered event set as CSV rows using the
// same filter and enrichment semantics as the listing, unpaginated and
// sorted time descending.
type ExportService struct {
	repo    repository.CopyEventRepository
	content content.Repository
}

// NewExportService builds an export service.
func NewExportService(repo repository.CopyEventRepository, contentRepo content.Repository) *ExportService {
	return &ExportService{repo: repo, content: contentRepo}
}

// Filename returns the attachment name for an export generated today.
func (s *ExportService) Filename(now time.Time) string {
	return "copy-analytics-" + now.Format("2006-01-02") + ".csv"
}

// WriteCSV writes the header and every matching row to w. The IP hash
// column carries the full, untruncated digest.
func (s *ExportService) WriteCSV(ctx context.Context, filter analytics.Filter, w io.Writer) error {
	events, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return fmt.Errorf("fetch export rows: %w", err)
	}

	out := csv.NewWriter(w)
	if err := out.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	resolver := content.NewResolver(s.content)
	for _, event := range events {
		lookup, err := resolver.Resolve(ctx, event.PageURL)
		if err != nil {
			return fmt.Errorf("resolve content for %s: %w", event.PageURL, err)
		}

		terms := "N/A"
		if len(lookup.Terms) > 0 {
			terms = strings.Join(lookup.Terms, ", ")
		}

		record := []string{
			event.Time.Format("2006-01-02 15:04:05"),
			event.TargetID,
			event.PageURL,
			lookup.TypeLabel,
			terms,
			event.UserEmail,
			event.UserGroup,
			event.UserIPHash,
			string(analytics.ClassifyDevice(event.UserAgent)),
			event.OperatingSystem,
			event.UserAgent,
		}
		if err := out.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	out.Flush()
	return out.Error()
}
