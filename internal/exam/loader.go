package exam

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"
)

// LoadError reports a bank that could not be read or decoded.
type LoadError struct {
	ExamID string
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load exam %s (%s): %v", e.ExamID, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader resolves exam descriptors to question lists read from a bank tree.
type Loader struct {
	catalog *Catalog
	banks   fs.FS
	logger  *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithRand sets the random source used for shuffling. Tests pass a seeded one.
func WithRand(r *rand.Rand) LoaderOption {
	return func(l *Loader) { l.rng = r }
}

// WithLogger sets the logger used for skipped questions and failed banks.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a Loader reading bank files from banks.
func NewLoader(catalog *Catalog, banks fs.FS, opts ...LoaderOption) *Loader {
	now := uint64(time.Now().UnixNano())
	l := &Loader{
		catalog: catalog,
		banks:   banks,
		logger:  slog.Default(),
		rng:     rand.New(rand.NewPCG(now, now>>1)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the questions for d. Official exams come back in file order.
// The random exam is assembled from every official bank.
func (l *Loader) Load(ctx context.Context, d Descriptor) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.IsRandom() {
		return l.loadRandom(ctx)
	}
	return l.loadBank(d)
}

// loadBank reads one bank file. Questions that fail validation are dropped.
func (l *Loader) loadBank(d Descriptor) ([]Question, error) {
	data, err := fs.ReadFile(l.banks, d.Source)
	if err != nil {
		return nil, &LoadError{ExamID: d.ID, Source: d.Source, Err: err}
	}

	var raw []Question
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{ExamID: d.ID, Source: d.Source, Err: err}
	}

	questions := make([]Question, 0, len(raw))
	for i, q := range raw {
		if err := q.Validate(); err != nil {
			l.logger.Warn("skipping invalid question", "exam", d.ID, "index", i, "err", err)
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// shuffle permutes qs in place.
func (l *Loader) shuffle(qs []Question) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
}
