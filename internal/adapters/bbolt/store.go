// Package bbolt implements the ports.Storage interface using bbolt (embedded B+ tree).
// Definitions live JSON-serialized in the "definitions" bucket keyed by name.
// Evaluation history lives in "history", one sub-bucket per definition, with
// gob-encoded records keyed by the bucket sequence. Writes are transactional:
// a crash mid-write cannot corrupt previously committed data.
package bbolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/corey/fuzzy/internal/ports"
	bolt "go.etcd.io/bbolt"
)

// Bucket keys
var (
	bucketDefinitions = []byte("definitions")
	bucketHistory     = []byte("history")
)

// Store implements ports.Storage backed by bbolt.
type Store struct {
	db *bolt.DB
}

var _ ports.Storage = (*Store)(nil)

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDefinition stores def under its name, replacing any prior version.
func (s *Store) SaveDefinition(def *ports.Definition) error {
	if def == nil {
		return fmt.Errorf("nil definition")
	}
	if def.Name == "" {
		return fmt.Errorf("definition has no name")
	}

	data, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("marshal definition: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketDefinitions)
		if err != nil {
			return err
		}
		return b.Put([]byte(def.Name), data)
	})
}

// LoadDefinition retrieves a definition by name.
// Returns nil, nil if it does not exist.
func (s *Store) LoadDefinition(name string) (*ports.Definition, error) {
	var data []byte

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDefinitions)
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := b.Get([]byte(name)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var def ports.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("unmarshal definition %q: %w", name, err)
	}
	return &def, nil
}

// ListDefinitions returns all stored definition names in key order.
func (s *Store) ListDefinitions() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketDefinitions)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// DeleteDefinition removes a definition and its history.
// Idempotent: deleting a nonexistent definition is not an error.
func (s *Store) DeleteDefinition(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketDefinitions); b != nil {
			if err := b.Delete([]byte(name)); err != nil {
				return err
			}
		}
		h := tx.Bucket(bucketHistory)
		if h == nil {
			return nil
		}
		if err := h.DeleteBucket([]byte(name)); err == bolt.ErrBucketNotFound {
			return nil // idempotent
		} else {
			return err
		}
	})
}

// AppendEvaluation records one evaluation under rec.Definition.
func (s *Store) AppendEvaluation(rec *ports.EvaluationRecord) error {
	if rec == nil {
		return fmt.Errorf("nil evaluation record")
	}
	if rec.Definition == "" {
		return fmt.Errorf("evaluation record has no definition")
	}

	data, err := encodeGob(rec)
	if err != nil {
		return fmt.Errorf("encode evaluation: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		h, err := tx.CreateBucketIfNotExists(bucketHistory)
		if err != nil {
			return err
		}
		b, err := h.CreateBucketIfNotExists([]byte(rec.Definition))
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(seqKey(seq), data)
	})
}

// Evaluations returns up to limit records for a definition, newest first.
func (s *Store) Evaluations(name string, limit int) ([]ports.EvaluationRecord, error) {
	var blobs [][]byte

	err := s.db.View(func(tx *bolt.Tx) error {
		h := tx.Bucket(bucketHistory)
		if h == nil {
			return nil
		}
		b := h.Bucket([]byte(name))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(blobs) >= limit {
				break
			}
			blob := make([]byte, len(v))
			copy(blob, v)
			blobs = append(blobs, blob)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]ports.EvaluationRecord, len(blobs))
	for i, blob := range blobs {
		if err := decodeGob(blob, &out[i]); err != nil {
			return nil, fmt.Errorf("decode evaluation: %w", err)
		}
	}
	return out, nil
}
