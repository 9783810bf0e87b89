package content

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/Azis2405/wpdev-copy-button/internal/app/model"
	"gorm.io/gorm"
)

type gormRepository struct {
	db *gorm.DB
}

// NewGormRepository returns a Repository reading the mirrored
// content_items/taxonomy_terms tables.
func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) ResolveURL(ctx context.Context, pageURL string) (uint64, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return 0, nil
	}
	path := strings.Trim(u.Path, "/")
	if path == "" {
		return 0, nil
	}

	var item model.ContentItem
	if err := r.db.WithContext(ctx).
		Select("id").
		Where("path = ?", path).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return item.ID, nil
}

func (r *gormRepository) TypeLabel(ctx context.Context, id uint64) (string, error) {
	if id == 0 {
		return model.NonSingularLabel, nil
	}

	var item model.ContentItem
	if err := r.db.WithContext(ctx).
		Select("type_label").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.NonSingularLabel, nil
		}
		return "", err
	}
	if item.TypeLabel == "" {
		return model.NonSingularLabel, nil
	}
	return item.TypeLabel, nil
}

func (r *gormRepository) TermNames(ctx context.Context, id uint64) ([]string, error) {
	if id == 0 {
		return nil, nil
	}

	var names []string
	if err := r.db.WithContext(ctx).
		Table("taxonomy_terms").
		Joins("JOIN content_item_terms ON content_item_terms.taxonomy_term_id = taxonomy_terms.id").
		Where("content_item_terms.content_item_id = ?", id).
		Order("taxonomy_terms.name ASC").
		Distinct().
		Pluck("taxonomy_terms.name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}
