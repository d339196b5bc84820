package document

import (
	"strings"
	"testing"
)

func TestNew_Valid(t *testing.T) {
	meta := map[string]string{MetaSource: "ADGM Companies Regulations 2020", MetaType: "regulation"}

	doc, err := New("reg-1", "jurisdiction must be ADGM", meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID() != "reg-1" {
		t.Errorf("ID() = %q", doc.ID())
	}
	if doc.Content() != "jurisdiction must be ADGM" {
		t.Errorf("Content() = %q", doc.Content())
	}
	if doc.Source() != "ADGM Companies Regulations 2020" {
		t.Errorf("Source() = %q", doc.Source())
	}
	if doc.Metadata()[MetaType] != "regulation" {
		t.Errorf("Metadata() = %v", doc.Metadata())
	}
	if doc.Vector() != nil {
		t.Errorf("Vector() should be nil for new document")
	}
	if doc.Score() != 0 {
		t.Errorf("Score() = %f, want 0", doc.Score())
	}
}

func TestNew_NilMetadata(t *testing.T) {
	doc, err := New("reg-1", "content", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Metadata() != nil {
		t.Errorf("Metadata() = %v, want nil", doc.Metadata())
	}
	if doc.Source() != "" {
		t.Errorf("Source() = %q, want empty", doc.Source())
	}
}

func TestNew_ClonesMetadata(t *testing.T) {
	meta := map[string]string{"k": "v"}

	doc, _ := New("reg-1", "content", meta)

	// Mutating the original map must not affect the document
	meta["k"] = "mutated"

	if doc.Metadata()["k"] != "v" {
		t.Error("metadata mutation leaked into document")
	}
}

func TestNew_EmptyID(t *testing.T) {
	_, err := New("", "content", nil)
	if err == nil {
		t.Fatal("expected error for empty ID")
	}
}

func TestNew_IDTooLong(t *testing.T) {
	_, err := New(strings.Repeat("a", 257), "content", nil)
	if err == nil {
		t.Fatal("expected error for ID too long")
	}
	if !strings.Contains(err.Error(), "too long") {
		t.Errorf("error = %q", err)
	}
}

func TestNew_InvalidIDCharacters(t *testing.T) {
	for _, id := range []string{"has space", "has/slash", "has:colon", "юникод"} {
		if _, err := New(id, "content", nil); err == nil {
			t.Errorf("expected error for id %q", id)
		}
	}
}

func TestNew_EmptyContent(t *testing.T) {
	_, err := New("reg-1", "", nil)
	if err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestNew_ContentTooLarge(t *testing.T) {
	_, err := New("reg-1", strings.Repeat("x", MaxContentSize+1), nil)
	if err == nil {
		t.Fatal("expected error for oversized content")
	}
}

func TestReconstruct_SkipsValidation(t *testing.T) {
	// Storage hydration accepts what is stored, even if New would reject it.
	doc := Reconstruct("any id!", "", nil, []float32{0.1}, 0.75)
	if doc.ID() != "any id!" {
		t.Errorf("ID() = %q", doc.ID())
	}
	if doc.Score() != 0.75 {
		t.Errorf("Score() = %f", doc.Score())
	}
	if len(doc.Vector()) != 1 {
		t.Errorf("Vector() = %v", doc.Vector())
	}
}

func TestSetScore(t *testing.T) {
	doc := Reconstruct("reg-1", "content", nil, nil, 0.2)
	doc.SetScore(0.9)
	if doc.Score() != 0.9 {
		t.Errorf("Score() = %f after SetScore", doc.Score())
	}
}

func TestSetVector(t *testing.T) {
	doc, _ := New("reg-1", "content", nil)
	doc.SetVector([]float32{1, 2, 3})
	if len(doc.Vector()) != 3 {
		t.Errorf("Vector() = %v after SetVector", doc.Vector())
	}
}
