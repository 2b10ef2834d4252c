package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/medborger/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past attempts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		examID, _ := cmd.Flags().GetString("exam")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		log := history.NewStore(st.KV(), logger).Load(cmd.Context())
		if examID != "" {
			log = history.AttemptsFor(log, examID)
		}
		if len(log) == 0 {
			fmt.Println("No attempts yet.")
			return nil
		}

		fmt.Printf("%-16s  %-14s  %5s  %7s  %9s  %s\n", "Date", "Exam", "Score", "Correct", "Incorrect", "")
		fmt.Println(strings.Repeat("─", 72))
		for i, a := range log {
			if limit > 0 && i >= limit {
				break
			}
			expired := ""
			if a.TimeExpired {
				expired = "time expired"
			}
			fmt.Printf("%-16s  %-14s  %4d%%  %7s  %9d  %s\n",
				a.Date.Local().Format("2006-01-02 15:04"),
				a.ExamID,
				a.Score,
				fmt.Sprintf("%d/%d", a.CorrectAnswers, a.TotalQuestions),
				a.IncorrectCount(),
				expired,
			)
		}
		return nil
	},
}

var historyWrongCmd = &cobra.Command{
	Use:   "wrong",
	Short: "List the questions you have answered incorrectly",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		wrong := history.WrongAnswers(history.NewStore(st.KV(), logger).Load(cmd.Context()))
		if len(wrong) == 0 {
			fmt.Println("No incorrect answers recorded.")
			return nil
		}
		for i, w := range wrong {
			fmt.Printf("%3d. %s\n     → %s\n", i+1, w.Question, w.Answer)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 0, "Number of attempts to show (0 = all)")
	historyCmd.Flags().StringP("exam", "e", "", "Only show attempts at this exam id")
	historyCmd.AddCommand(historyWrongCmd)
}
