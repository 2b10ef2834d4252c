package explain

import (
	"errors"
	"fmt"

	"github.com/abhisek/medborger/internal/llm"
)

// ConfigurationError reports that no AI provider credential is available.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("AI explanations are not configured: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Translation ids shown in place of an explanation when a request fails.
const (
	MsgAPIKeyMissing = "results.apiKeyMissing"
	MsgFailed        = "results.aiExplanationError"
)

// MessageID returns the translation id describing err to the user.
func MessageID(err error) string {
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return MsgAPIKeyMissing
	}
	return MsgFailed
}

// asConfigurationError lifts provider configuration failures into a
// ConfigurationError and leaves other errors alone.
func asConfigurationError(err error) error {
	var notConf *llm.ErrNotConfigured
	var unknown *llm.ErrUnknownProvider
	if errors.As(err, &notConf) || errors.As(err, &unknown) {
		return &ConfigurationError{Err: err}
	}
	return err
}
