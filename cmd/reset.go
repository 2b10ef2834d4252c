package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/medborger/internal/explain"
	"github.com/abhisek/medborger/internal/history"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete your attempt history and cached AI explanations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("this deletes all attempts; run again with --yes to confirm")
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		kv := st.KV()
		if err := history.NewStore(kv, logger).Clear(ctx); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		if err := explain.NewCache(kv, logger).Clear(ctx); err != nil {
			return fmt.Errorf("clear explanations: %w", err)
		}
		fmt.Println("History and cached explanations deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
