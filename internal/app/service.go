// Package app wires the fuzzy core to its adapters. Service owns the current
// engine, swaps it atomically on reload, and records evaluations.
package app

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	yamldef "github.com/corey/fuzzy/internal/adapters/yaml"
	"github.com/corey/fuzzy/internal/domain/fuzzy"
	"github.com/corey/fuzzy/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNotLoaded reports an evaluation before any definition was loaded.
	ErrNotLoaded = errors.New("no definition loaded")

	// ErrNotFound reports a definition name absent from the store.
	ErrNotFound = errors.New("definition not found")

	// ErrNoStore reports a store operation on a service built without one.
	ErrNoStore = errors.New("no store configured")
)

// Options configures a Service. Every field is optional.
type Options struct {
	Logger  *zap.Logger
	Store   ports.Storage
	Watcher ports.Watcher

	// Record appends every evaluation, failed or not, to Store.
	Record bool

	// Workers applies to definitions that leave Workers unset.
	Workers int

	// OnReload runs after every watcher-triggered reload attempt.
	OnReload func(def *ports.Definition, err error)
}

// loaded pairs a definition with the engine built from it so readers never
// see one without the other.
type loaded struct {
	def    *ports.Definition
	engine *fuzzy.Engine
}

// Service evaluates inputs against the current definition. Evaluate is safe
// to call concurrently with reloads.
type Service struct {
	opts    Options
	logger  *zap.Logger
	current atomic.Pointer[loaded]

	mu     sync.Mutex // guards closed
	closed bool
}

// NewService creates a service with no definition loaded.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{opts: opts, logger: logger}
}

// Load builds def and makes it current. On failure the previous definition
// stays current.
func (s *Service) Load(def *ports.Definition) error {
	if def == nil {
		return fmt.Errorf("nil definition")
	}
	d := *def
	if d.Workers == 0 {
		d.Workers = s.opts.Workers
	}
	engine, err := BuildEngine(&d)
	if err != nil {
		return fmt.Errorf("definition %q: %w", d.Name, err)
	}
	s.current.Store(&loaded{def: &d, engine: engine})

	dom := engine.Domain()
	s.logger.Info("definition loaded",
		zap.String("name", d.Name),
		zap.String("strategy", d.Strategy),
		zap.Int("workers", d.Workers),
		zap.Int("rules", len(engine.Rules())),
		zap.Int("domain_start", dom.Start),
		zap.Int("domain_end", dom.End))
	return nil
}

// LoadFile reads a YAML definition file and makes it current.
func (s *Service) LoadFile(path string) error {
	def, err := yamldef.LoadDefinition(path)
	if err != nil {
		return err
	}
	return s.Load(def)
}

// LoadStored loads a definition saved in the store.
func (s *Service) LoadStored(name string) error {
	if s.opts.Store == nil {
		return ErrNoStore
	}
	def, err := s.opts.Store.LoadDefinition(name)
	if err != nil {
		return err
	}
	if def == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return s.Load(def)
}

// Save validates def by building it, then stores it.
func (s *Service) Save(def *ports.Definition) error {
	if s.opts.Store == nil {
		return ErrNoStore
	}
	if _, err := BuildEngine(def); err != nil {
		return fmt.Errorf("definition %q: %w", def.Name, err)
	}
	if err := s.opts.Store.SaveDefinition(def); err != nil {
		return err
	}
	s.logger.Info("definition saved", zap.String("name", def.Name))
	return nil
}

// Definitions lists stored definition names in sorted order.
func (s *Service) Definitions() ([]string, error) {
	if s.opts.Store == nil {
		return nil, ErrNoStore
	}
	return s.opts.Store.ListDefinitions()
}

// Delete removes a stored definition and its history.
func (s *Service) Delete(name string) error {
	if s.opts.Store == nil {
		return ErrNoStore
	}
	def, err := s.opts.Store.LoadDefinition(name)
	if err != nil {
		return err
	}
	if def == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err := s.opts.Store.DeleteDefinition(name); err != nil {
		return err
	}
	s.logger.Info("definition deleted", zap.String("name", name))
	return nil
}

// Definition returns the current definition, or nil.
func (s *Service) Definition() *ports.Definition {
	if cur := s.current.Load(); cur != nil {
		return cur.def
	}
	return nil
}

// Engine returns the current engine, or nil.
func (s *Service) Engine() *fuzzy.Engine {
	if cur := s.current.Load(); cur != nil {
		return cur.engine
	}
	return nil
}

// Evaluate runs the current engine on inputs. With recording enabled the
// outcome is appended to the store; a failed append is logged, not returned.
func (s *Service) Evaluate(inputs map[string]float64) (float64, error) {
	cur := s.current.Load()
	if cur == nil {
		return 0, ErrNotLoaded
	}

	out, err := cur.engine.Evaluate(inputs)
	if err != nil {
		s.logger.Debug("evaluation failed",
			zap.String("definition", cur.def.Name),
			zap.Any("inputs", inputs),
			zap.Error(err))
	} else {
		s.logger.Debug("evaluated",
			zap.String("definition", cur.def.Name),
			zap.Any("inputs", inputs),
			zap.Float64("output", out))
	}

	if s.opts.Record && s.opts.Store != nil {
		rec := &ports.EvaluationRecord{
			ID:         uuid.NewString(),
			Definition: cur.def.Name,
			Inputs:     inputs,
			Output:     out,
			At:         time.Now().UTC(),
		}
		if err != nil {
			rec.Error = err.Error()
		}
		if serr := s.opts.Store.AppendEvaluation(rec); serr != nil {
			s.logger.Warn("record evaluation", zap.String("definition", cur.def.Name), zap.Error(serr))
		}
	}
	return out, err
}

// History returns up to limit recorded evaluations of the named definition,
// newest first.
func (s *Service) History(name string, limit int) ([]ports.EvaluationRecord, error) {
	if s.opts.Store == nil {
		return nil, ErrNoStore
	}
	return s.opts.Store.Evaluations(name, limit)
}

// Watch loads path and reloads it whenever it changes. A reload that fails
// is logged and leaves the previous definition current.
func (s *Service) Watch(path string) error {
	if s.opts.Watcher == nil {
		return fmt.Errorf("no watcher configured")
	}
	if err := s.LoadFile(path); err != nil {
		return err
	}
	return s.opts.Watcher.Watch(path, s.reload)
}

func (s *Service) reload(path string) {
	err := s.LoadFile(path)
	if err != nil {
		s.logger.Warn("reload failed, keeping previous definition",
			zap.String("path", path),
			zap.Error(err))
	}
	if s.opts.OnReload != nil {
		s.opts.OnReload(s.Definition(), err)
	}
}

// Close stops the watcher and closes the store when it is closable.
// Safe to call multiple times.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.opts.Watcher != nil {
		errs = append(errs, s.opts.Watcher.Stop())
	}
	if c, ok := s.opts.Store.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
