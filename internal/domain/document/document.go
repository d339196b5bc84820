// Package document defines the retrieval document aggregate.
package document

import (
	"fmt"
	"regexp"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxContentSize is the maximum document content size in bytes.
const MaxContentSize = 163840 // 160KB

// Recognized metadata keys. Metadata is a closed key-value map: unknown keys
// are stored and returned verbatim but carry no meaning to the pipeline.
const (
	MetaSource   = "source"
	MetaCategory = "category"
	MetaType     = "type"
	MetaYear     = "year"
)

// Document is a regulatory text chunk. Identity (id, content, metadata) is
// immutable once stored; Score is a transient ranking output overwritten on
// every retrieval pass and never persisted.
type Document struct {
	id       string
	content  string
	metadata map[string]string
	vector   []float32
	score    float64
}

// New validates and creates a Document.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. Content: non-empty, max 160KB.
func New(id, content string, metadata map[string]string) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if len(id) > 256 {
		return Document{}, fmt.Errorf("document ID too long (max 256)")
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf("document ID must be alphanumeric with underscores and hyphens")
	}
	if content == "" {
		return Document{}, fmt.Errorf("content is required")
	}
	if len(content) > MaxContentSize {
		return Document{}, fmt.Errorf("content too large (max %d bytes)", MaxContentSize)
	}

	return Document{id: id, content: content, metadata: cloneMap(metadata)}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(id, content string, metadata map[string]string, vector []float32, score float64) Document {
	return Document{id: id, content: content, metadata: metadata, vector: vector, score: score}
}

// ID returns the document identifier. Unique within a collection, not globally.
func (d *Document) ID() string { return d.id }

// Content returns the document text content.
func (d *Document) Content() string { return d.content }

// Metadata returns the metadata fields.
func (d *Document) Metadata() map[string]string { return d.metadata }

// Source returns the source metadata field, or "" when absent.
func (d *Document) Source() string { return d.metadata[MetaSource] }

// Vector returns the embedding vector.
func (d *Document) Vector() []float32 { return d.vector }

// Score returns the current ranking score.
func (d *Document) Score() float64 { return d.score }

// SetScore overwrites the transient ranking score in place.
func (d *Document) SetScore(s float64) { d.score = s }

// SetVector sets the embedding vector in place.
func (d *Document) SetVector(v []float32) { d.vector = v }

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
