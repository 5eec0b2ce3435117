// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. The fuzzy core depends
// on none of them; the app layer depends only on these interfaces, never on
// concrete implementations.
package ports

// Storage persists engine definitions and their evaluation history.
// Each definition name gets its own namespace. Concurrent reads are safe;
// writes are serialized by the adapter.
//
// Crash safety: every write is transactional. A crash mid-write must not
// corrupt previously committed data.
type Storage interface {
	// SaveDefinition stores def under def.Name, replacing any prior version.
	// Evaluation history for the name is kept.
	SaveDefinition(def *Definition) error

	// LoadDefinition retrieves a definition by name.
	// Returns nil, nil if no such definition exists.
	LoadDefinition(name string) (*Definition, error)

	// ListDefinitions returns all stored definition names, sorted.
	ListDefinitions() ([]string, error)

	// DeleteDefinition removes a definition and its history.
	// Idempotent: deleting a nonexistent definition is not an error.
	DeleteDefinition(name string) error

	// AppendEvaluation records one evaluation under rec.Definition.
	AppendEvaluation(rec *EvaluationRecord) error

	// Evaluations returns up to limit records for a definition, newest first.
	// limit <= 0 returns all of them.
	Evaluations(name string, limit int) ([]EvaluationRecord, error)
}
