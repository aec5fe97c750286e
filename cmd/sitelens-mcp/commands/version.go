package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitelens/sitelens-mcp-server/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		fmt.Printf("sitelens-mcp %s (commit %s, built %s)\n", info.Version, info.Commit, info.BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
