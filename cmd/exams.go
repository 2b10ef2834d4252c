package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/medborger/internal/exam"
	"github.com/abhisek/medborger/internal/history"
)

var examsCmd = &cobra.Command{
	Use:   "exams",
	Short: "List the available exams with your best scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		catalog := exam.DefaultCatalog()
		loader := exam.NewLoader(catalog, os.DirFS(cfg.BanksDir), exam.WithLogger(logger))
		log := history.NewStore(st.KV(), logger).Load(ctx)

		fmt.Printf("%-14s  %-6s  %-8s  %9s  %8s  %s\n", "ID", "Year", "Season", "Questions", "Attempts", "Best")
		fmt.Println(strings.Repeat("─", 64))

		for _, d := range exam.SortForSelector(catalog.List()) {
			year, season := "", ""
			if !d.IsRandom() {
				year, season = fmt.Sprint(d.Year), string(d.Season)
			}
			fmt.Printf("%-14s  %-6s  %-8s  %9s  %8d  %s\n",
				d.ID, year, season, questionCount(ctx, loader, d), len(history.AttemptsFor(log, d.ID)), bestLabel(log, d.ID))
		}

		if n := len(history.WrongAnswers(log)); n > 0 {
			fmt.Printf("\n%d questions to practice: medborger, then \"Practice wrong answers\".\n", n)
		}
		return nil
	},
}

// questionCount loads d to count its questions. The random exam is drawn
// anew each time, so it reports its fixed size.
func questionCount(ctx context.Context, loader *exam.Loader, d exam.Descriptor) string {
	if d.IsRandom() {
		return fmt.Sprint(exam.RandomQuestionCount)
	}
	qs, err := loader.Load(ctx, d)
	if err != nil {
		return "missing"
	}
	return fmt.Sprint(len(qs))
}

func bestLabel(log history.Log, id string) string {
	best, ok := history.BestScore(log, id)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%d%%", best)
}
