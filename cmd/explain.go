package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/medborger/internal/exam"
	"github.com/abhisek/medborger/internal/explain"
)

var explainCmd = &cobra.Command{
	Use:   "explain <exam-id> <question-number>",
	Short: "Ask the AI to explain a question from an official exam",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid question number %q", args[1])
		}

		catalog := exam.DefaultCatalog()
		d, err := catalog.ByID(args[0])
		if err != nil {
			return err
		}
		if d.IsRandom() {
			return fmt.Errorf("the random exam is drawn anew each time; pick an official exam id")
		}

		ctx := cmd.Context()
		qs, err := exam.NewLoader(catalog, os.DirFS(cfg.BanksDir), exam.WithLogger(logger)).Load(ctx, d)
		if err != nil {
			return err
		}
		if n > len(qs) {
			return fmt.Errorf("exam %s has %d questions", d.ID, len(qs))
		}
		q := qs[n-1]

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		t, err := translator(ctx, st.KV())
		if err != nil {
			return err
		}
		svc := explain.FromConfig(ctx, cfg.LLM, st.EventRepo(), st.KV(), logger)

		fmt.Printf("%s\n→ %s\n\n", q.Text, q.Answer)
		text, err := svc.Explain(ctx, explain.Request{
			Question:      q.Text,
			CorrectAnswer: q.Answer,
			Language:      t.Lang(),
		})
		if err != nil {
			logger.Debug("explanation failed", "err", err)
			return fmt.Errorf("%s", t.T(explain.MessageID(err)))
		}
		fmt.Println(text)
		return nil
	},
}
