package search

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/clauselab/regdex/internal/db"
)

func TestQueryByVector_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchKNNFn = func(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
		if q.IndexName != "regdex:adgm_regulations:idx" {
			t.Errorf("unexpected index: %s", q.IndexName)
		}
		if q.K != 5 {
			t.Errorf("expected k=5, got %d", q.K)
		}
		if len(q.Vector) != 3 {
			t.Errorf("expected 3-dim query vector, got %d", len(q.Vector))
		}
		return &db.SearchResult{
			Total: 2,
			Entries: []db.SearchEntry{
				{
					Key:      "regdex:adgm_regulations:reg-1",
					Distance: 0.1,
					Fields:   map[string]string{"__content": "companies regulations", "source": "ADGM 2020"},
				},
				{
					Key:      "regdex:adgm_regulations:reg-2",
					Distance: 0.4,
					Fields:   map[string]string{"__content": "employment regulations"},
				},
			},
		}, nil
	}

	docs, err := repo.QueryByVector(ctx, "adgm_regulations", []float32{0.1, 0.2, 0.3}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
	if docs[0].ID() != "reg-1" {
		t.Errorf("expected key prefix stripped to reg-1, got %s", docs[0].ID())
	}
	if math.Abs(docs[0].Score()-0.9) > 1e-9 {
		t.Errorf("expected score 1-distance = 0.9, got %f", docs[0].Score())
	}
	if math.Abs(docs[1].Score()-0.6) > 1e-9 {
		t.Errorf("expected score 0.6, got %f", docs[1].Score())
	}
	if docs[0].Content() != "companies regulations" {
		t.Errorf("unexpected content: %q", docs[0].Content())
	}
	if docs[0].Metadata()["source"] != "ADGM 2020" {
		t.Errorf("unexpected metadata: %v", docs[0].Metadata())
	}
	if _, ok := docs[0].Metadata()["__content"]; ok {
		t.Error("__content must not leak into metadata")
	}
}

func TestQueryByVector_Empty(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchKNNFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return &db.SearchResult{Total: 0}, nil
	}

	docs, err := repo.QueryByVector(ctx, "legal_precedents", []float32{0.5}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs != nil {
		t.Fatalf("expected nil docs, got %v", docs)
	}
}

func TestQueryByVector_Error(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchKNNFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return nil, errors.New("index missing")
	}

	if _, err := repo.QueryByVector(ctx, "adgm_regulations", []float32{0.5}, 5); err == nil {
		t.Fatal("expected error")
	}
}
