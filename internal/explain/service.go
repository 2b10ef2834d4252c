package explain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/abhisek/medborger/internal/llm"
	"github.com/abhisek/medborger/internal/store"
)

// Config holds explanation generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig leaves room for a 200-word answer in any of the UI languages.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   600,
		Temperature: 0.4,
	}
}

// Request identifies the question to explain.
type Request struct {
	Question      string
	CorrectAnswer string
	// Language is the code of the language to answer in ("en", "zh", "vi").
	Language string
}

// Result is a finished explanation request.
type Result struct {
	Question string
	Text     string
	Err      error
}

// Service produces explanations for wrongly answered questions. Requests run
// in the background; callers poll Consume for finished ones.
type Service struct {
	provider llm.Provider
	setupErr error
	cache    *Cache
	cfg      Config
	logger   *slog.Logger

	mu      sync.Mutex
	loading map[string]bool
	ready   []Result
}

// NewService creates a service. A nil provider makes every uncached request
// fail with a ConfigurationError.
func NewService(provider llm.Provider, cache *Cache, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider: provider,
		cache:    cache,
		cfg:      cfg,
		logger:   logger,
		loading:  make(map[string]bool),
	}
}

// FromConfig builds the provider described by llmCfg and wraps it in a
// service. A provider that cannot be built is remembered and reported on
// each request, so the quiz keeps working without credentials.
func FromConfig(ctx context.Context, llmCfg llm.Config, repo store.EventRepo, kv store.KV, logger *slog.Logger) *Service {
	provider, err := llm.NewProvider(ctx, llmCfg, repo, logger)
	s := NewService(provider, NewCache(kv, logger), DefaultConfig(), logger)
	if err != nil {
		s.logger.Info("AI explanations unavailable", "err", err)
		s.provider = nil
		s.setupErr = err
	}
	return s
}

// Explain returns the explanation for req, from the cache when present.
func (s *Service) Explain(ctx context.Context, req Request) (string, error) {
	if text, ok := s.cache.Get(ctx, req.Question); ok {
		return text, nil
	}
	if s.provider == nil {
		err := s.setupErr
		if err == nil {
			err = &llm.ErrNotConfigured{Provider: llm.ProviderGemini}
		}
		return "", &ConfigurationError{Err: err}
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeExplanation)
	resp, err := s.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("explanation: %w", asConfigurationError(err))
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("explanation: empty response")
	}
	if err := s.cache.Put(ctx, req.Question, text); err != nil {
		s.logger.Warn("cache explanation", "err", err)
	}
	return text, nil
}

// Request starts explaining req in the background. A request for a question
// that is already loading is ignored.
func (s *Service) Request(ctx context.Context, req Request) {
	s.mu.Lock()
	if s.loading[req.Question] {
		s.mu.Unlock()
		return
	}
	s.loading[req.Question] = true
	s.mu.Unlock()

	go func() {
		text, err := s.Explain(ctx, req)
		if err != nil {
			s.logger.Debug("explanation failed", "err", err)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.loading, req.Question)
		s.ready = append(s.ready, Result{Question: req.Question, Text: text, Err: err})
	}()
}

// Consume returns the requests finished since the last call.
func (s *Service) Consume() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.ready
	s.ready = nil
	return out
}

// Loading reports whether a request for question is in flight.
func (s *Service) Loading(question string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading[question]
}

// Pending reports whether any request is in flight or unconsumed.
func (s *Service) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loading) > 0 || len(s.ready) > 0
}

// Cached returns a previously stored explanation.
func (s *Service) Cached(ctx context.Context, question string) (string, bool) {
	return s.cache.Get(ctx, question)
}

// Available reports whether uncached requests can reach a provider.
func (s *Service) Available() bool {
	return s.provider != nil
}

// ModelID names the model answering requests, or "" when unavailable.
func (s *Service) ModelID() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.ModelID()
}
