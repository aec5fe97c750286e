package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitelens/sitelens-mcp-server/internal/update"
	"github.com/sitelens/sitelens-mcp-server/internal/version"
)

var (
	updateChannel string
	updateCheck   bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the binary to the latest signed release",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		current := version.Get().Version

		manifest, newer, err := update.CheckLatest(ctx, updateChannel, current)
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}

		st, _ := update.LoadStatus()
		st.MarkCheck(manifest.Version)

		if !newer {
			_ = update.SaveStatus(st)
			fmt.Printf("sitelens-mcp %s is up to date (latest: %s)\n", current, manifest.Version)
			return nil
		}

		if updateCheck {
			_ = update.SaveStatus(st)
			fmt.Printf("update available: %s -> %s\n", current, manifest.Version)
			if manifest.Notes != "" {
				fmt.Println(manifest.Notes)
			}
			return nil
		}

		log.WithField("version", manifest.Version).Info("applying update")
		if err := update.Apply(ctx, manifest); err != nil {
			st.MarkError(err.Error())
			_ = update.SaveStatus(st)
			return fmt.Errorf("apply update: %w", err)
		}

		st.MarkApply(manifest.Version)
		_ = update.SaveStatus(st)
		fmt.Printf("updated to %s; restart to pick up the new binary\n", manifest.Version)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateChannel, "channel", "stable", "release channel")
	updateCmd.Flags().BoolVar(&updateCheck, "check", false, "only check for a newer release, do not apply it")
	rootCmd.AddCommand(updateCmd)
}
