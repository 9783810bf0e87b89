package service

import (
	"context"

	"github.com/Azis2405/wpdev-copy-button/internal/analytics"
	"github.com/Azis2405/wpdev-copy-button/internal/app/model"
	"github.com/Azis2405/wpdev-copy-button/internal/app/repository"
)

type mockEventRepo struct {
	createFn           func(ctx context.Context, event *model.CopyEvent) error
	countFn            func(ctx context.Context, filter analytics.Filter) (int64, error)
	findPageFn         func(ctx context.Context, filter analytics.Filter, sortBy analytics.SortColumn, dir analytics.SortDirection, limit, offset int) ([]model.CopyEvent, error)
	findAllFn          func(ctx context.Context, filter analytics.Filter) ([]model.CopyEvent, error)
	groupByPageFn      func(ctx context.Context, filter analytics.Filter, limit int) ([]repository.GroupCount, error)
	groupByUserGroupFn func(ctx context.Context, filter analytics.Filter, limit int) ([]repository.GroupCount, error)
	selectPageURLsFn   func(ctx context.Context, filter analytics.Filter) ([]string, error)
	selectUserAgentsFn func(ctx context.Context, filter analytics.Filter) ([]string, error)
	deleteAllFn        func(ctx context.Context) error
}

func (m *mockEventRepo) Create(ctx context.Context, event *model.CopyEvent) error {
	if m.createFn != nil {
		return m.createFn(ctx, event)
	}
	return nil
}

func (m *mockEventRepo) Count(ctx context.Context, filter analytics.Filter) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, filter)
	}
	return 0, nil
}

func (m *mockEventRepo) FindPage(ctx context.Context, filter analytics.Filter, sortBy analytics.SortColumn, dir analytics.SortDirection, limit, offset int) ([]model.CopyEvent, error) {
	if m.findPageFn != nil {
		return m.findPageFn(ctx, filter, sortBy, dir, limit, offset)
	}
	return nil, nil
}

func (m *mockEventRepo) FindAll(ctx context.Context, filter analytics.Filter) ([]model.CopyEvent, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockEventRepo) GroupByPageURL(ctx context.Context, filter analytics.Filter, limit int) ([]repository.GroupCount, error) {
	if m.groupByPageFn != nil {
		return m.groupByPageFn(ctx, filter, limit)
	}
	return nil, nil
}

func (m *mockEventRepo) GroupByUserGroup(ctx context.Context, filter analytics.Filter, limit int) ([]repository.GroupCount, error) {
	if m.groupByUserGroupFn != nil {
		return m.groupByUserGroupFn(ctx, filter, limit)
	}
	return nil, nil
}

func (m *mockEventRepo) SelectPageURLs(ctx context.Context, filter analytics.Filter) ([]string, error) {
	if m.selectPageURLsFn != nil {
		return m.selectPageURLsFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockEventRepo) SelectUserAgents(ctx context.Context, filter analytics.Filter) ([]string, error) {
	if m.selectUserAgentsFn != nil {
		return m.selectUserAgentsFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockEventRepo) DeleteAll(ctx context.Context) error {
	if m.deleteAllFn != nil {
		return m.deleteAllFn(ctx)
	}
	return nil
}

type mockContentRepo struct {
	items  map[string]uint64
	labels map[uint64]string
	terms  map[uint64][]string
}

func (m *mockContentRepo) ResolveURL(ctx context.Context, pageURL string) (uint64, error) {
	return m.items[pageURL], nil
}

func (m *mockContentRepo) TypeLabel(ctx context.Context, id uint64) (string, error) {
	if id == 0 {
		return model.NonSingularLabel, nil
	}
	return m.labels[id], nil
}

func (m *mockContentRepo) TermNames(ctx context.Context, id uint64) ([]string, error) {
	return m.terms[id], nil
}
