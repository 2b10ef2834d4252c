package stats

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/abhisek/medborger/internal/history"
)

const namespace = "medborger"

// Registry returns a private registry holding the metrics for log.
func Registry(log history.Log) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	register(reg, Compute(log))
	return reg
}

func register(reg prometheus.Registerer, s Stats) {
	f := promauto.With(reg)

	attempts := f.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "attempts",
		Help:      "Quiz attempts in the history, by how they ended.",
	}, []string{"result"})
	attempts.WithLabelValues("completed").Set(float64(s.Attempts - s.TimedOut))
	attempts.WithLabelValues("timed_out").Set(float64(s.TimedOut))

	answers := f.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "answers",
		Help:      "Answered questions across all attempts, by outcome.",
	}, []string{"outcome"})
	answers.WithLabelValues("correct").Set(float64(s.Correct))
	answers.WithLabelValues("incorrect").Set(float64(s.Answered - s.Correct))

	f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "wrong_answer_questions",
		Help:      "Distinct questions in the wrong-answer practice set.",
	}).Set(float64(s.Wrong))

	f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "average_score_percent",
		Help:      "Mean score over all attempts.",
	}).Set(s.Average)

	best := f.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "best_score_percent",
		Help:      "Best score per exam.",
	}, []string{"exam"})
	for _, e := range s.PerExam {
		best.WithLabelValues(e.ExamID).Set(float64(e.Best))
	}

	if !s.Latest.IsZero() {
		f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_attempt_timestamp_seconds",
			Help:      "Unix time of the most recent attempt.",
		}).Set(float64(s.Latest.Unix()))
	}

	scores := f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "attempt_score_percent",
		Help:      "Distribution of attempt scores.",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	})
	for _, v := range s.ScoreList {
		scores.Observe(float64(v))
	}
}

// WriteTextfile writes the metrics for log in the node exporter textfile
// format.
func WriteTextfile(path string, log history.Log) error {
	if err := prometheus.WriteToTextfile(path, Registry(log)); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
