// Package analytics reports anonymous usage events to a Google Forms
// endpoint. Reporting is best effort: failures are logged and dropped.
package analytics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Actions reported by the quiz.
const (
	ActionStartQuiz  = "start-quiz"
	ActionSubmitQuiz = "submit-quiz"
)

// DefaultEndpoint is the form that collected usage counts for the web app.
const DefaultEndpoint = "https://docs.google.com/forms/d/e/1FAIpQLSfz3UP2qa_JALCoz8BBIyaTgk3l3dVNd7N9XuaVZJG4gpEvFA/formResponse"

// Form field ids.
const (
	fieldAction    = "entry.1341205461"
	fieldTimestamp = "entry.1869831758"
)

// Config controls reporting.
type Config struct {
	Enabled  bool
	Endpoint string
	Timeout  time.Duration
}

// Reporter posts events in the background.
type Reporter struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
	now    func() time.Time
	wg     sync.WaitGroup
}

// New creates a Reporter. A disabled reporter accepts and drops events.
func New(cfg Config, logger *slog.Logger) *Reporter {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
		now:    time.Now,
	}
}

// Enabled reports whether events are sent.
func (r *Reporter) Enabled() bool {
	return r != nil && r.cfg.Enabled
}

// Track sends action without blocking the caller.
func (r *Reporter) Track(action string) {
	if !r.Enabled() {
		return
	}
	ts := r.now().UTC().Format(time.RFC3339)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.send(context.Background(), action, ts); err != nil {
			r.logger.Debug("analytics event dropped", "action", action, "err", err)
		}
	}()
}

// Wait blocks until in-flight events finish or ctx is done.
func (r *Reporter) Wait(ctx context.Context) {
	if r == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (r *Reporter) send(ctx context.Context, action, ts string) error {
	form := url.Values{}
	form.Set(fieldAction, action)
	form.Set(fieldTimestamp, ts)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
