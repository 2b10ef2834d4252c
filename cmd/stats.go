package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/medborger/internal/history"
	"github.com/abhisek/medborger/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics over your attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		textfile, _ := cmd.Flags().GetString("textfile")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		log := history.NewStore(st.KV(), logger).Load(cmd.Context())

		if textfile != "" {
			if err := stats.WriteTextfile(textfile, log); err != nil {
				return fmt.Errorf("write metrics: %w", err)
			}
			logger.Info("wrote metrics", "path", textfile, "attempts", len(log))
		}

		s := stats.Compute(log)
		if s.Attempts == 0 {
			fmt.Println("No attempts yet.")
			return nil
		}

		fmt.Printf("Attempts:        %d (%d timed out)\n", s.Attempts, s.TimedOut)
		fmt.Printf("Average score:   %.0f%%\n", s.Average)
		fmt.Printf("Best score:      %d%%\n", s.Best)
		fmt.Printf("Accuracy:        %.0f%% (%d of %d answers)\n", s.Accuracy()*100, s.Correct, s.Answered)
		fmt.Printf("To practice:     %d questions\n", s.Wrong)
		fmt.Printf("Last attempt:    %s\n", s.Latest.Local().Format("2006-01-02 15:04"))

		fmt.Println()
		fmt.Printf("%-14s  %8s  %5s  %5s  %7s\n", "Exam", "Attempts", "Best", "Last", "Average")
		fmt.Println(strings.Repeat("─", 48))
		for _, e := range s.PerExam {
			fmt.Printf("%-14s  %8d  %4d%%  %4d%%  %6.0f%%\n", e.ExamID, e.Attempts, e.Best, e.Last, e.Average)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("textfile", "", "Also write Prometheus metrics to this file (node_exporter textfile format)")
}
