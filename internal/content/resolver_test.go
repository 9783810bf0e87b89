package content

import (
	"context"
	"testing"

	"github.com/Azis2405/wpdev-copy-button/internal/app/model"
)

type mockRepository struct {
	resolveCalls int
	typeCalls    int
	termCalls    int
	items        map[string]uint64
	labels       map[uint64]string
	terms        map[uint64][]string
}

func (m *mockRepository) ResolveURL(ctx context.Context, pageURL string) (uint64, error) {
	m.resolveCalls++
	return m.items[pageURL], nil
}

func (m *mockRepository) TypeLabel(ctx context.Context, id uint64) (string, error) {
	m.typeCalls++
	if id == 0 {
		return model.NonSingularLabel, nil
	}
	return m.labels[id], nil
}

func (m *mockRepository) TermNames(ctx context.Context, id uint64) ([]string, error) {
	m.termCalls++
	return m.terms[id], nil
}

func TestResolver_Memoizes(t *testing.T) {
	repo := &mockRepository{
		items:  map[string]uint64{"https://example.com/blog/a": 7},
		labels: map[uint64]string{7: "Post"},
		terms:  map[uint64][]string{7: {"News", "Tech"}},
	}
	r := NewResolver(repo)

	for i := 0; i < 5; i++ {
		lookup, err := r.Resolve(context.Background(), "https://example.com/blog/a")
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if lookup.ID != 7 || lookup.TypeLabel != "Post" || len(lookup.Terms) != 2 {
			t.Fatalf("unexpected lookup: %+v", lookup)
		}
	}

	if repo.resolveCalls != 1 {
		t.Errorf("ResolveURL called %d times, want 1", repo.resolveCalls)
	}
	if repo.typeCalls != 1 || repo.termCalls != 1 {
		t.Errorf("metadata lookups not memoized: type=%d term=%d", repo.typeCalls, repo.termCalls)
	}
}

func TestResolver_UnresolvedShortCircuit(t *testing.T) {
	repo := &mockRepository{items: map[string]uint64{}}
	r := NewResolver(repo)

	lookup, err := r.Resolve(context.Background(), "https://example.com/not-content")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if lookup.ID != 0 {
		t.Errorf("expected zero id, got %d", lookup.ID)
	}
	if lookup.TypeLabel != model.NonSingularLabel {
		t.Errorf("expected sentinel label, got %q", lookup.TypeLabel)
	}
	if len(lookup.Terms) != 0 {
		t.Errorf("expected no terms, got %v", lookup.Terms)
	}
	if repo.termCalls != 0 {
		t.Errorf("TermNames should not be called for unresolved URLs")
	}
}

func TestResolver_DistinctURLs(t *testing.T) {
	repo := &mockRepository{
		items:  map[string]uint64{"a": 1, "b": 2},
		labels: map[uint64]string{1: "Post", 2: "Page"},
		terms:  map[uint64][]string{},
	}
	r := NewResolver(repo)

	for _, u := range []string{"a", "b", "a", "b", "a"} {
		if _, err := r.Resolve(context.Background(), u); err != nil {
			t.Fatalf("Resolve(%q) error: %v", u, err)
		}
	}

	if repo.resolveCalls != 2 {
		t.Errorf("ResolveURL called %d times, want 2", repo.resolveCalls)
	}
}
