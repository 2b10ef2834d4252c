package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/medborger/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update medborger to the latest release",
	Long: `Download the release archive for this platform, verify it against the
release checksums and replace the running binary.

Use --check to only report whether a newer release exists, or --to to
install a specific release tag.`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().Bool("check", false, "only report whether an update is available")
	updateCmd.Flags().String("to", "", "install this release tag instead of the latest")
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	checkOnly, _ := cmd.Flags().GetBool("check")
	target, _ := cmd.Flags().GetString("to")
	out := cmd.OutOrStdout()

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()
	checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))

	if checkOnly {
		res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if res.UpdateAvailable {
			fmt.Fprintf(out, "medborger %s is available (running %s)\n%s\n", res.LatestVersion, version, res.ReleaseURL)
		} else {
			fmt.Fprintf(out, "medborger %s is the latest release\n", version)
		}
		return nil
	}

	err := checker.Update(ctx, &selfupdate.UpdateInput{
		CurrentVersion: version,
		TargetVersion:  target,
	}, func(p selfupdate.UpdateProgress) {
		logger.Debug("update progress", "stage", p.Stage)
		fmt.Fprintln(out, p.Message)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, selfupdate.ErrDevBuild):
		fmt.Fprintln(out, "This is a development build. Install a release build to use update.")
		return nil
	case errors.Is(err, selfupdate.ErrAlreadyLatest):
		fmt.Fprintln(out, "Already running the latest release.")
		return nil
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w\n\nthe binary is not writable; try: sudo medborger update", err)
	}
	return err
}
