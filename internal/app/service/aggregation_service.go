package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/Azis2405/wpdev-copy-button/internal/analytics"
	"github.com/Azis2405/wpdev-copy-button/internal/app/repository"
	"github.com/Azis2405/wpdev-copy-button/internal/content"
)

const (
	topLimit           = 10
	pageLabelMaxRunes  = 20
	groupLabelMaxRunes = 10
)

// ChartSeries is one aggregation payload for the dashboard charts. Labels
// may be truncated for axis display; FullLabels always carries the
// untruncated originals for tooltips.
type ChartSeries struct {
	Labels     []string `json:"labels"`
	Values     []int64  `json:"values"`
	FullLabels []string `json:"full_labels"`
}

// AggregationService computes the four dashboard aggregations over the
// filtered event store.
type AggregationService struct {
	repo    repository.CopyEventRepository
	content content.Repository
}

// NewAggregationService builds an aggregation service.
func NewAggregationService(repo repository.CopyEventRepository, contentRepo content.Repository) *AggregationService {
	return &AggregationService{repo: repo, content: contentRepo}
}

// TopPages groups filtered events by exact page URL, counts, and takes the
// top 10. Labels are the derived page paths truncated at 20 runes.
func (s *AggregationService) TopPages(ctx context.Context, filter analytics.Filter) (*ChartSeries, error) {
	rows, err := s.repo.GroupByPageURL(ctx, filter, topLimit)
	if err != nil {
		return nil, fmt.Errorf("aggregate top pages: %w", err)
	}

	series := newChartSeries(len(rows))
	for _, row := range rows {
		full := analytics.PageLabel(row.Key)
		series.FullLabels = append(series.FullLabels, full)
		series.Labels = append(series.Labels, analytics.Truncate(full, pageLabelMaxRunes))
		series.Values = append(series.Values, row.Count)
	}
	return series, nil
}

// TopUserGroups groups filtered events by user group, excluding sentinel
// and empty groups, and takes the top 10. Labels truncate at 10 runes.
func (s *AggregationService) TopUserGroups(ctx context.Context, filter analytics.Filter) (*ChartSeries, error) {
	rows, err := s.repo.GroupByUserGroup(ctx, filter, topLimit)
	if err != nil {
		return nil, fmt.Errorf("aggregate top user groups: %w", err)
	}

	series := newChartSeries(len(rows))
	for _, row := range rows {
		series.FullLabels = append(series.FullLabels, row.Key)
		series.Labels = append(series.Labels, analytics.Truncate(row.Key, groupLabelMaxRunes))
		series.Values = append(series.Values, row.Count)
	}
	return series, nil
}

// TopTaxonomies resolves every filtered event's URL to content and counts
// each attached taxonomy term once per event, taking the top 10 term
// names. Events whose URL resolves to nothing contribute nothing. URL
// lookups are memoized for the duration of this computation only.
func (s *AggregationService) TopTaxonomies(ctx context.Context, filter analytics.Filter) (*ChartSeries, error) {
	urls, err := s.repo.SelectPageURLs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("aggregate top taxonomies: %w", err)
	}

	resolver := content.NewResolver(s.content)
	counts := make(map[string]int64)
	for _, pageURL := range urls {
		lookup, err := resolver.Resolve(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("resolve content for %s: %w", pageURL, err)
		}
		if lookup.ID == 0 {
			continue
		}
		for _, term := range lookup.Terms {
			counts[term]++
		}
	}

	type termCount struct {
		name  string
		count int64
	}
	ranked := make([]termCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, termCount{name, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > topLimit {
		ranked = ranked[:topLimit]
	}

	series := newChartSeries(len(ranked))
	for _, tc := range ranked {
		series.Labels = append(series.Labels, tc.name)
		series.FullLabels = append(series.FullLabels, tc.name)
		series.Values = append(series.Values, tc.count)
	}
	return series, nil
}

// DeviceMix classifies every filtered event's user agent into exactly one
// of Desktop/Tablet/Mobile and returns the three counts, zero-filled.
func (s *AggregationService) DeviceMix(ctx context.Context, filter analytics.Filter) (*ChartSeries, error) {
	agents, err := s.repo.SelectUserAgents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("aggregate device mix: %w", err)
	}

	counts := map[analytics.DeviceClass]int64{
		analytics.DeviceDesktop: 0,
		analytics.DeviceTablet:  0,
		analytics.DeviceMobile:  0,
	}
	for _, agent := range agents {
		counts[analytics.ClassifyDevice(agent)]++
	}

	// Fixed label order so the chart is stable.
	order := []analytics.DeviceClass{
		analytics.DeviceDesktop,
		analytics.DeviceTablet,
		analytics.DeviceMobile,
	}
	series := newChartSeries(len(order))
	for _, class := range order {
		series.Labels = append(series.Labels, string(class))
		series.FullLabels = append(series.FullLabels, string(class))
		series.Values = append(series.Values, counts[class])
	}
	return series, nil
}

func newChartSeries(capacity int) *ChartSeries {
	return &ChartSeries{
		Labels:     make([]string, 0, capacity),
		Values:     make([]int64, 0, capacity),
		FullLabels: make([]string, 0, capacity),
	}
}
