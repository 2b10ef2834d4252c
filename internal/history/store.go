package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/abhisek/medborger/internal/store"
)

// Key is the kv key holding the attempt log.
const Key = "medborgerskab_quiz_history"

// PersistenceParseError reports a stored history document that could not be
// decoded. Load never returns it; it is logged and the log degrades to empty.
type PersistenceParseError struct {
	Key string
	Err error
}

func (e *PersistenceParseError) Error() string {
	return fmt.Sprintf("parse persisted %s: %v", e.Key, e.Err)
}

func (e *PersistenceParseError) Unwrap() error { return e.Err }

// Store persists the attempt log as one JSON document in a KV.
type Store struct {
	kv     store.KV
	logger *slog.Logger
}

// NewStore creates a history Store backed by kv.
func NewStore(kv store.KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger}
}

// Load returns the persisted log, newest first. Missing or unreadable data
// yields an empty log. Legacy attempts are migrated and the migrated log is
// written back.
func (s *Store) Load(ctx context.Context) Log {
	return readable(s.entries(ctx))
}

// Append prepends attempt to the persisted log, writes the whole log, and
// returns it. Stored attempts are written back byte for byte, including ones
// this version cannot read.
func (s *Store) Append(ctx context.Context, attempt Attempt) (Log, error) {
	current := s.entries(ctx)
	data, err := json.Marshal(attempt)
	if err != nil {
		return readable(current), fmt.Errorf("encode attempt: %w", err)
	}

	next := make([]entry, 0, len(current)+1)
	next = append(next, entry{raw: data, attempt: attempt, ok: true})
	next = append(next, current...)

	if err := s.save(ctx, next); err != nil {
		return readable(current), err
	}
	return readable(next), nil
}

// Clear removes the persisted log.
func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, Key)
}

// entry is one element of the stored array. raw is kept verbatim so that
// saving never rewrites an attempt it did not change.
type entry struct {
	raw     json.RawMessage
	attempt Attempt
	ok      bool
}

func readable(entries []entry) Log {
	log := make(Log, 0, len(entries))
	for _, e := range entries {
		if e.ok {
			log = append(log, e.attempt)
		}
	}
	return log
}

// entries reads and migrates the stored array. A missing or corrupt document
// yields nil.
func (s *Store) entries(ctx context.Context) []entry {
	raw, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		s.logger.Warn("read history failed", "err", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	entries, err := s.decode(raw)
	if err != nil {
		s.logger.Warn("history is corrupt, starting empty", "err", err)
		return nil
	}

	migrated, err := migrateEntries(entries)
	if err != nil {
		s.logger.Warn("migrate history failed", "err", err)
		return entries
	}
	if migrated > 0 {
		if err := s.save(ctx, entries); err != nil {
			s.logger.Warn("persist migrated history failed", "err", err)
		} else {
			s.logger.Info("migrated legacy history", "attempts", migrated)
		}
	}
	return entries
}

// decode parses the stored array element by element so that one damaged
// attempt does not discard the rest.
func (s *Store) decode(raw string) ([]entry, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, &PersistenceParseError{Key: Key, Err: err}
	}

	entries := make([]entry, len(items))
	for i, item := range items {
		entries[i].raw = item
		if err := json.Unmarshal(item, &entries[i].attempt); err != nil {
			s.logger.Warn("skipping unreadable attempt", "index", i, "err", err)
			entries[i].attempt = Attempt{}
			continue
		}
		entries[i].ok = true
	}
	return entries, nil
}

// migrateEntries sets the exam id of readable legacy attempts, patching only
// that field of the stored object. It returns how many entries changed.
func migrateEntries(entries []entry) (int, error) {
	id, err := json.Marshal(UnknownExamID)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range entries {
		e := &entries[i]
		if !e.ok || e.attempt.ExamID != "" {
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(e.raw, &fields); err != nil {
			return n, fmt.Errorf("migrate attempt %d: %w", i, err)
		}
		if fields == nil {
			fields = map[string]json.RawMessage{}
		}
		fields["examId"] = id
		patched, err := json.Marshal(fields)
		if err != nil {
			return n, fmt.Errorf("migrate attempt %d: %w", i, err)
		}
		e.raw = patched
		e.attempt.ExamID = UnknownExamID
		n++
	}
	return n, nil
}

func (s *Store) save(ctx context.Context, entries []entry) error {
	items := make([]json.RawMessage, len(entries))
	for i, e := range entries {
		items[i] = e.raw
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.kv.Set(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}

// Migrate assigns UnknownExamID to every attempt without an exam id. Order and
// length are preserved and migrating twice changes nothing.
func Migrate(log Log) Log {
	out := make(Log, len(log))
	for i, a := range log {
		if a.ExamID == "" {
			a.ExamID = UnknownExamID
		}
		out[i] = a
	}
	return out
}
