package content

import "context"

// Resolver memoizes URL lookups for the lifetime of one listing or
// aggregation computation. Create one per request and discard it when the
// computation ends; the cache is never shared across requests.
type Resolver struct {
	repo  Repository
	cache map[string]Lookup
}

// NewResolver returns a fresh, empty Resolver over the given repository.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{
		repo:  repo,
		cache: make(map[string]Lookup),
	}
}

// Resolve returns the content metadata for a page URL, consulting the
// backing repository at most once per distinct URL.
func (r *Resolver) Resolve(ctx context.Context, pageURL string) (Lookup, error) {
	if lookup, ok := r.cache[pageURL]; ok {
		return lookup, nil
	}

	id, err := r.repo.ResolveURL(ctx, pageURL)
	if err != nil {
		return Lookup{}, err
	}

	lookup := Lookup{ID: id}
	if id == 0 {
		// Non-content URL: short-circuit with the sentinel label and no
		// term lookups.
		label, err := r.repo.TypeLabel(ctx, 0)
		if err != nil {
			return Lookup{}, err
		}
		lookup.TypeLabel = label
		r.cache[pageURL] = lookup
		return lookup, nil
	}

	label, err := r.repo.TypeLabel(ctx, id)
	if err != nil {
		return Lookup{}, err
	}
	terms, err := r.repo.TermNames(ctx, id)
	if err != nil {
		return Lookup{}, err
	}

	lookup.TypeLabel = label
	lookup.Terms = terms
	r.cache[pageURL] = lookup
	return lookup, nil
}
