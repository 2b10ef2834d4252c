package exam

import (
	"context"

	"github.com/abhisek/medborger/internal/history"
)

// PracticeDescriptor is the pseudo-exam for practicing missed questions.
var PracticeDescriptor = Descriptor{ID: WrongAnswersID}

// LoadPractice rebuilds full questions for previously missed ones by exact
// text match against every bank. A question no bank contains any more is
// offered with its correct answer as the only option. The result is shuffled.
func (l *Loader) LoadPractice(ctx context.Context, wrong []history.WrongAnswer) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pool, err := l.loadPool(ctx)
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	first := make(map[string]Question, len(pool))
	for _, q := range pool {
		if _, ok := first[q.Text]; !ok {
			first[q.Text] = q
		}
	}

	out := make([]Question, 0, len(wrong))
	for _, w := range wrong {
		if q, ok := first[w.Question]; ok {
			out = append(out, q)
			continue
		}
		l.logger.Debug("practice question not in any bank", "question", w.Question)
		out = append(out, Question{
			Text:    w.Question,
			Options: []string{w.Answer},
			Answer:  w.Answer,
		})
	}

	l.shuffle(out)
	return out, nil
}
