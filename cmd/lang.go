package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/medborger/internal/i18n"
)

var langCmd = &cobra.Command{
	Use:   "lang",
	Short: "Show or change the interface language",
}

var langShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current language and the available ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		current := i18n.Resolve(cmd.Context(), st.KV(), cfg.Lang)
		for _, l := range i18n.Languages() {
			marker := " "
			if l.Code == current {
				marker = "*"
			}
			fmt.Printf("%s %-3s %-12s %s\n", marker, l.Code, l.English, l.Name)
		}
		return nil
	},
}

var langSetCmd = &cobra.Command{
	Use:   "set <code>",
	Short: "Save the interface language (en, zh, vi)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		// Regional tags such as zh-CN are stored as their base language.
		code := strings.ToLower(strings.SplitN(args[0], "-", 2)[0])
		if err := i18n.SavePreference(cmd.Context(), st.KV(), code); err != nil {
			return err
		}
		t, err := i18n.New(code)
		if err != nil {
			return err
		}
		for _, l := range i18n.Languages() {
			if l.Code == code {
				fmt.Println(t.Td("lang.changed", map[string]any{"Name": l.Name}))
			}
		}
		return nil
	},
}

func init() {
	langCmd.AddCommand(langShowCmd)
	langCmd.AddCommand(langSetCmd)
}
