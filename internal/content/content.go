// Package content resolves page URLs to CMS content metadata: the content
// item id, a human-readable type label and the attached taxonomy terms.
package content

import (
	"context"
)

// Lookup is the resolved metadata for one page URL. A zero ID means the
// URL does not address a content item; TypeLabel then carries the
// non-singular sentinel and Terms is empty.
type Lookup struct {
	ID        uint64
	TypeLabel string
	Terms     []string
}

// Repository is the read contract against the host platform's content
// store.
type Repository interface {
	// ResolveURL maps a page URL to a content item id, 0 when none.
	ResolveURL(ctx context.Context, pageURL string) (uint64, error)
	// TypeLabel returns the singular display label of the item's type.
	TypeLabel(ctx context.Context, id uint64) (string, error)
	// TermNames returns the names of every taxonomy term attached to the
	// item, across all taxonomies, deduplicated.
	TermNames(ctx context.Context, id uint64) ([]string, error)
}
