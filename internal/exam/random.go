package exam

import (
	"context"
	"errors"
	"fmt"
)

// RandomQuestionCount is the size of an assembled random exam.
const RandomQuestionCount = 25

// loadPool reads every official bank and tags each question with the sitting
// it came from. Banks that fail to load are skipped; the joined errors are
// returned alongside whatever did load.
func (l *Loader) loadPool(ctx context.Context) ([]Question, error) {
	var (
		pool []Question
		errs []error
	)
	for _, d := range l.catalog.Official() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		qs, err := l.loadBank(d)
		if err != nil {
			l.logger.Warn("skipping exam bank", "exam", d.ID, "err", err)
			errs = append(errs, err)
			continue
		}
		label := fmt.Sprintf("%d %s", d.Year, d.Season)
		for _, q := range qs {
			q.Source = label
			pool = append(pool, q)
		}
	}
	return pool, errors.Join(errs...)
}

// loadRandom assembles up to RandomQuestionCount distinct questions from all
// banks in random order. An empty pool is an error only when some bank failed.
func (l *Loader) loadRandom(ctx context.Context) ([]Question, error) {
	pool, err := l.loadPool(ctx)
	if len(pool) == 0 && err != nil {
		return nil, &LoadError{ExamID: RandomID, Err: err}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	distinct := dedupeByText(pool)
	l.shuffle(distinct)
	if len(distinct) > RandomQuestionCount {
		distinct = distinct[:RandomQuestionCount]
	}
	return distinct, nil
}

// dedupeByText keeps one question per text. A later duplicate replaces the
// earlier one in place.
func dedupeByText(qs []Question) []Question {
	index := make(map[string]int, len(qs))
	out := make([]Question, 0, len(qs))
	for _, q := range qs {
		if i, ok := index[q.Text]; ok {
			out[i] = q
			continue
		}
		index[q.Text] = len(out)
		out = append(out, q)
	}
	return out
}
