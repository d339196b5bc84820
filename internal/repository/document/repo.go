// Package document persists documents as Redis hashes, one per id, under the
// collection key prefix picked up by the collection's FT index.
package document

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/clauselab/regdex/internal/domain"
	domdoc "github.com/clauselab/regdex/internal/domain/document"
	"github.com/clauselab/regdex/internal/repository/collection"
)

// store is the consumer interface for document persistence (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements document storage over the hash store.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Add inserts one document with its embedding. An id already present in the
// collection returns domain.ErrDocumentExists; the stored copy is left as is,
// so repeated inserts of the same id observe exactly one logical entry.
func (r *Repo) Add(ctx context.Context, collectionName string, doc *domdoc.Document) error {
	key := docKey(collectionName, doc.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if exists {
		return fmt.Errorf("document %s in %s: %w", doc.ID(), collectionName, domain.ErrDocumentExists)
	}

	if err := r.store.HSet(ctx, key, docToHash(doc)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// GetAll returns a full unordered dump of the collection's documents,
// without vectors. Intended for lexical full scans; the corpus is assumed to
// fit in memory at this scale.
func (r *Repo) GetAll(ctx context.Context, collectionName string) ([]domdoc.Document, error) {
	keys, err := r.store.Scan(ctx, collection.KeyPrefix(collectionName)+"*")
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", collectionName, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", collectionName, err)
	}

	prefix := collection.KeyPrefix(collectionName)
	docs := make([]domdoc.Document, 0, len(hashes))
	for i, fields := range hashes {
		if len(fields) == 0 {
			continue // expired between SCAN and HGETALL
		}
		id := strings.TrimPrefix(keys[i], prefix)
		docs = append(docs, docFromHash(id, fields))
	}
	return docs, nil
}

func docKey(collectionName, id string) string {
	return collection.KeyPrefix(collectionName) + id
}

// docToHash flattens a document into hash fields: reserved __content and
// __vector fields plus one field per metadata key.
func docToHash(doc *domdoc.Document) map[string]string {
	fields := make(map[string]string, len(doc.Metadata())+2)
	for k, v := range doc.Metadata() {
		fields[k] = v
	}
	fields["__content"] = doc.Content()
	fields["__vector"] = vectorToBytes(doc.Vector())
	return fields
}

func docFromHash(id string, fields map[string]string) domdoc.Document {
	var content string
	metadata := make(map[string]string)

	for k, v := range fields {
		switch k {
		case "__content":
			content = v
		case "__vector":
			// vectors are not rehydrated on full scans
		default:
			metadata[k] = v
		}
	}

	return domdoc.Reconstruct(id, content, metadata, nil, 0)
}

// vectorToBytes serializes []float32 into the binary form the FT index expects.
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
