package model

import "time"

// NonSingularLabel is the content-type label for URLs that do not resolve
// to a content item.
const NonSingularLabel = "Non-Singular"

// ContentItem is an addressable unit of CMS content (article, page, ...)
// mirrored from the host platform so page URLs can be resolved locally.
type ContentItem struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Path      string    `gorm:"size:512;uniqueIndex;not null" json:"path"`
	Type      string    `gorm:"size:64;index;not null" json:"type"`
	TypeLabel string    `gorm:"size:128;not null" json:"type_label"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Terms []TaxonomyTerm `gorm:"many2many:content_item_terms;" json:"terms,omitempty"`
}

func (ContentItem) TableName() string {
	return "content_items"
}

// TaxonomyTerm is a named classification label (category/tag-like)
// attachable to content items.
type TaxonomyTerm struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	Taxonomy string `gorm:"size:64;index;not null" json:"taxonomy"`
	Name     string `gorm:"size:255;index;not null" json:"name"`
}

func (TaxonomyTerm) TableName() string {
	return "taxonomy_terms"
}
