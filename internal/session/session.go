package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/medborger/internal/exam"
	"github.com/abhisek/medborger/internal/history"
)

var (
	// ErrNoQuestions is returned by Start when the load produced nothing to ask.
	// The machine stays in PhaseSelecting.
	ErrNoQuestions = errors.New("no questions loaded")

	// ErrStaleLoad is returned by Start for a load that was cancelled or
	// superseded before it resolved. Its questions are discarded.
	ErrStaleLoad = errors.New("exam load was cancelled")
)

// PhaseError reports an operation attempted in the wrong phase.
type PhaseError struct {
	Op    string
	Phase Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s not allowed while %s", e.Op, e.Phase)
}

// Catalog resolves exam ids.
type Catalog interface {
	ByID(id string) (exam.Descriptor, error)
}

// ExamLoader produces question lists.
type ExamLoader interface {
	Load(ctx context.Context, d exam.Descriptor) ([]exam.Question, error)
	LoadPractice(ctx context.Context, wrong []history.WrongAnswer) ([]exam.Question, error)
}

// HistoryStore is the persisted attempt log.
type HistoryStore interface {
	Load(ctx context.Context) history.Log
	Append(ctx context.Context, attempt history.Attempt) (history.Log, error)
}

// Hooks are optional observers of run boundaries.
type Hooks struct {
	// OnBegin fires when the user picks an exam and its load is issued,
	// whether or not the load later yields questions.
	OnBegin  func(examID string)
	// OnStart fires when a run enters PhaseInProgress.
	OnStart  func(examID string, questions int)
	// OnFinish fires after an attempt has been finalized and appended.
	OnFinish func(attempt history.Attempt)
}

// Machine drives quiz runs: SelectingExam -> InProgress -> Completed, with
// cancel back to selecting from InProgress and restart from Completed.
type Machine struct {
	catalog Catalog
	history HistoryStore
	timer   Timer
	logger  *slog.Logger
	hooks   Hooks
	now     func() time.Time
	newID   func() string

	phase   Phase
	state   State
	ticket  uint64
	pending bool
	last    *history.Attempt
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the machine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) { m.logger = logger }
}

// WithHooks installs run observers.
func WithHooks(h Hooks) Option {
	return func(m *Machine) { m.hooks = h }
}

// WithClock overrides the time source used to date attempts.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithIDs overrides attempt id generation.
func WithIDs(newID func() string) Option {
	return func(m *Machine) { m.newID = newID }
}

// NewMachine creates a machine resting in PhaseSelecting.
func NewMachine(catalog Catalog, hist HistoryStore, timer Timer, opts ...Option) *Machine {
	m := &Machine{
		catalog: catalog,
		history: hist,
		timer:   timer,
		logger:  slog.Default(),
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
		phase:   PhaseSelecting,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LoadRequest is an exam load issued by Begin. Run it, possibly off the
// event loop, and hand the result to Start.
type LoadRequest struct {
	Ticket     uint64
	Descriptor exam.Descriptor
	Practice   bool
	Wrong      []history.WrongAnswer
}

// LoadResult is the outcome of running a LoadRequest.
type LoadResult struct {
	Ticket     uint64
	Descriptor exam.Descriptor
	Practice   bool
	Questions  []exam.Question
	Err        error
}

// Run performs the load.
func (r LoadRequest) Run(ctx context.Context, loader ExamLoader) LoadResult {
	res := LoadResult{Ticket: r.Ticket, Descriptor: r.Descriptor, Practice: r.Practice}
	if r.Practice {
		res.Questions, res.Err = loader.LoadPractice(ctx, r.Wrong)
	} else {
		res.Questions, res.Err = loader.Load(ctx, r.Descriptor)
	}
	return res
}

// Begin resolves examID and issues a load for it. Unknown ids return
// *exam.NotFoundError and leave the machine unchanged. A newer Begin
// supersedes an unresolved earlier one.
func (m *Machine) Begin(ctx context.Context, examID string) (LoadRequest, error) {
	if m.phase != PhaseSelecting {
		return LoadRequest{}, &PhaseError{Op: "select exam", Phase: m.phase}
	}

	req := LoadRequest{}
	if examID == exam.WrongAnswersID {
		req.Descriptor = exam.PracticeDescriptor
		req.Practice = true
		req.Wrong = history.WrongAnswers(m.history.Load(ctx))
	} else {
		d, err := m.catalog.ByID(examID)
		if err != nil {
			m.logger.Warn("exam not found", "exam", examID)
			return LoadRequest{}, err
		}
		req.Descriptor = d
	}

	m.ticket++
	m.pending = true
	req.Ticket = m.ticket
	if m.hooks.OnBegin != nil {
		m.hooks.OnBegin(req.Descriptor.ID)
	}
	return req, nil
}

// Start consumes a load result and begins the run. Results from a cancelled
// or superseded load return ErrStaleLoad. A failed or empty load returns
// ErrNoQuestions and the machine keeps selecting.
func (m *Machine) Start(res LoadResult) error {
	if !m.pending || res.Ticket != m.ticket {
		m.logger.Debug("discarding stale exam load", "exam", res.Descriptor.ID)
		return ErrStaleLoad
	}
	m.pending = false

	if res.Err != nil {
		m.logger.Warn("exam load failed", "exam", res.Descriptor.ID, "err", res.Err)
	}
	if len(res.Questions) == 0 {
		if res.Err != nil {
			return errors.Join(ErrNoQuestions, res.Err)
		}
		return ErrNoQuestions
	}

	m.timer.Cancel()
	m.last = nil
	m.state = State{
		ExamID:        res.Descriptor.ID,
		Questions:     res.Questions,
		Answers:       make([]history.AnsweredQuestion, 0, len(res.Questions)),
		TimeRemaining: DurationFor(len(res.Questions)),
		TimerRunning:  true,
		PracticeMode:  res.Practice,
		StartedAt:     m.now(),
	}
	m.phase = PhaseInProgress

	m.timer.Start(m.state.TimeRemaining,
		func(remaining int) { m.state.TimeRemaining = remaining },
		func() { m.Timeout(context.Background()) },
	)

	m.logger.Info("quiz started", "exam", m.state.ExamID, "questions", len(res.Questions), "seconds", m.state.TimeRemaining)
	if m.hooks.OnStart != nil {
		m.hooks.OnStart(m.state.ExamID, len(res.Questions))
	}
	return nil
}

// SelectExam runs Begin, the load, and Start in one call.
func (m *Machine) SelectExam(ctx context.Context, examID string, loader ExamLoader) error {
	req, err := m.Begin(ctx, examID)
	if err != nil {
		return err
	}
	return m.Start(req.Run(ctx, loader))
}

// SubmitAnswer records option for the current question and advances. The
// last answer finalizes the attempt.
func (m *Machine) SubmitAnswer(ctx context.Context, option string) (history.AnsweredQuestion, error) {
	if m.phase != PhaseInProgress {
		return history.AnsweredQuestion{}, &PhaseError{Op: "submit answer", Phase: m.phase}
	}
	q, ok := m.state.CurrentQuestion()
	if !ok {
		return history.AnsweredQuestion{}, &PhaseError{Op: "submit answer", Phase: m.phase}
	}

	ans := history.NewAnsweredQuestion(q.Text, option, q.Answer)
	m.state.Answers = append(m.state.Answers, ans)

	if m.state.CurrentIndex < len(m.state.Questions)-1 {
		m.state.CurrentIndex++
		return ans, nil
	}
	m.finalize(ctx, false)
	return ans, nil
}

// Timeout finalizes the run with the answers recorded so far. It reports
// false when no run is in progress, which makes a late expiry harmless.
func (m *Machine) Timeout(ctx context.Context) bool {
	if m.phase != PhaseInProgress {
		return false
	}
	m.finalize(ctx, true)
	return true
}

// Cancel abandons the current run, or a load that has not resolved yet,
// without recording anything.
func (m *Machine) Cancel() {
	if m.pending {
		m.pending = false
		m.ticket++
	}
	if m.phase == PhaseInProgress {
		m.timer.Cancel()
		m.logger.Info("quiz cancelled", "exam", m.state.ExamID, "answered", len(m.state.Answers))
		m.state = State{}
		m.phase = PhaseSelecting
	}
}

// Restart leaves the results of a completed run and returns to selecting.
func (m *Machine) Restart() {
	if m.phase != PhaseCompleted {
		return
	}
	m.timer.Cancel()
	m.state = State{}
	m.phase = PhaseSelecting
}

// finalize folds the run into an attempt and appends it to history. The
// timer is stopped first so no second finalization can follow.
func (m *Machine) finalize(ctx context.Context, expired bool) history.Attempt {
	m.timer.Cancel()
	m.state.TimerRunning = false
	m.state.Completed = true
	m.phase = PhaseCompleted

	total := len(m.state.Questions)
	if expired {
		total = len(m.state.Answers)
	}
	correct := m.state.CorrectCount()

	answers := make([]history.AnsweredQuestion, len(m.state.Answers))
	copy(answers, m.state.Answers)

	attempt := history.Attempt{
		ID:             m.newID(),
		ExamID:         m.state.ExamID,
		Date:           m.now().UTC(),
		Score:          Score(correct, total),
		CorrectAnswers: correct,
		TotalQuestions: total,
		Answers:        answers,
		TimeExpired:    expired,
	}
	m.last = &attempt

	if _, err := m.history.Append(ctx, attempt); err != nil {
		m.logger.Error("failed to persist attempt", "exam", attempt.ExamID, "err", err)
	}
	m.logger.Info("quiz finished", "exam", attempt.ExamID, "score", attempt.Score, "expired", expired)
	if m.hooks.OnFinish != nil {
		m.hooks.OnFinish(attempt)
	}
	return attempt
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// State returns a snapshot of the current run.
func (m *Machine) State() State {
	s := m.state
	s.Answers = append([]history.AnsweredQuestion(nil), m.state.Answers...)
	return s
}

// Pending reports whether a load has been issued and not yet consumed.
func (m *Machine) Pending() bool { return m.pending }

// LastAttempt returns the attempt produced by the most recent finalization.
func (m *Machine) LastAttempt() (history.Attempt, bool) {
	if m.last == nil {
		return history.Attempt{}, false
	}
	return *m.last, true
}
