package repository

import (
	"context"
	"fmt"

	"github.com/Azis2405/wpdev-copy-button/internal/analytics"
	"github.com/Azis2405/wpdev-copy-button/internal/app/model"
	"gorm.io/gorm"
)

// GroupCount pairs a grouping key with its event count.
type GroupCount struct {
	Key   string `gorm:"column:key"`
	Count int64  `gorm:"column:count"`
}

// CopyEventRepository is the data access contract for the append-only copy
// event store. Rows are never updated; writes are Create and DeleteAll only.
type CopyEventRepository interface {
	Create(ctx context.Context, event *model.CopyEvent) error
	Count(ctx context.Context, filter analytics.Filter) (int64, error)
	FindPage(ctx context.Context, filter analytics.Filter, sortBy analytics.SortColumn, dir analytics.SortDirection, limit, offset int) ([]model.CopyEvent, error)
	FindAll(ctx context.Context, filter analytics.Filter) ([]model.CopyEvent, error)
	GroupByPageURL(ctx context.Context, filter analytics.Filter, limit int) ([]GroupCount, error)
	GroupByUserGroup(ctx context.Context, filter analytics.Filter, limit int) ([]GroupCount, error)
	SelectPageURLs(ctx context.Context, filter analytics.Filter) ([]string, error)
	SelectUserAgents(ctx context.Context, filter analytics.Filter) ([]string, error)
	DeleteAll(ctx context.Context) error
}

type copyEventRepository struct {
	db *gorm.DB
}

// NewCopyEventRepository returns a GORM-backed CopyEventRepository.
func NewCopyEventRepository(db *gorm.DB) CopyEventRepository {
	return &copyEventRepository{db: db}
}

func (r *copyEventRepository) Create(ctx context.Context, event *model.CopyEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *copyEventRepository) filtered(ctx context.Context, filter analytics.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.CopyEvent{})
	if where, args := filter.Where(); where != "" {
		q = q.Where(where, args...)
	}
	return q
}

func (r *copyEventRepository) Count(ctx context.Context, filter analytics.Filter) (int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *copyEventRepository) FindPage(ctx context.Context, filter analytics.Filter, sortBy analytics.SortColumn, dir analytics.SortDirection, limit, offset int) ([]model.CopyEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	// sortBy/dir are closed enums; the interpolated fragments cannot carry
	// user input. The id tie-break keeps ordering deterministic across
	// identical calls.
	order := fmt.Sprintf("%s %s, id ASC", sortBy.Column(), dir.SQL())

	var events []model.CopyEvent
	if err := r.filtered(ctx, filter).
		Order(order).
		Limit(limit).
		Offset(offset).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *copyEventRepository) FindAll(ctx context.Context, filter analytics.Filter) ([]model.CopyEvent, error) {
	var events []model.CopyEvent
	if err := r.filtered(ctx, filter).
		Order("time DESC, id ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *copyEventRepository) GroupByPageURL(ctx context.Context, filter analytics.Filter, limit int) ([]GroupCount, error) {
	where, args := filter.Where()
	whereSQL := ""
	if where != "" {
		whereSQL = "WHERE " + where
	}

	query := fmt.Sprintf(`
		SELECT page_url AS key, COUNT(id) AS count
		FROM copy_events %s
		GROUP BY page_url
		ORDER BY count DESC, page_url ASC
		LIMIT ?`, whereSQL)
	args = append(args, limit)

	var rows []GroupCount
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *copyEventRepository) GroupByUserGroup(ctx context.Context, filter analytics.Filter, limit int) ([]GroupCount, error) {
	where, args := filter.Where()

	// Sentinel and empty groups are excluded in SQL so they never reach
	// the top-N at all.
	conditions := "user_group IS NOT NULL AND user_group != ? AND user_group != ''"
	condArgs := []interface{}{model.NoUserGroup}
	if where != "" {
		conditions = "(" + where + ") AND " + conditions
		condArgs = append(args, condArgs...)
	}

	query := fmt.Sprintf(`
		SELECT user_group AS key, COUNT(id) AS count
		FROM copy_events
		WHERE %s
		GROUP BY user_group
		ORDER BY count DESC, user_group ASC
		LIMIT ?`, conditions)
	condArgs = append(condArgs, limit)

	var rows []GroupCount
	if err := r.db.WithContext(ctx).Raw(query, condArgs...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *copyEventRepository) SelectPageURLs(ctx context.Context, filter analytics.Filter) ([]string, error) {
	var urls []string
	if err := r.filtered(ctx, filter).Pluck("page_url", &urls).Error; err != nil {
		return nil, err
	}
	return urls, nil
}

func (r *copyEventRepository) SelectUserAgents(ctx context.Context, filter analytics.Filter) ([]string, error) {
	var agents []string
	if err := r.filtered(ctx, filter).Pluck("user_agent", &agents).Error; err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *copyEventRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec("TRUNCATE TABLE copy_events RESTART IDENTITY").Error
}
