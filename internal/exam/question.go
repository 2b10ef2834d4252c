package exam

import (
	"fmt"
	"slices"
)

// Question is a single multiple-choice question from a bank file.
type Question struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"`

	// Source names the sitting a question came from, e.g. "2023 winter".
	// Only set on questions assembled for the random exam.
	Source string `json:"source,omitempty"`
}

// Validate checks that the question is answerable: it has text, options,
// and its answer is one of the options.
func (q Question) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("question has no text")
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("question %q has no options", q.Text)
	}
	if !slices.Contains(q.Options, q.Answer) {
		return fmt.Errorf("question %q: answer %q is not among the options", q.Text, q.Answer)
	}
	return nil
}
