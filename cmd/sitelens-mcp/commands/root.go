package commands

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sitelens/sitelens-mcp-server/internal/app"
	"github.com/sitelens/sitelens-mcp-server/internal/config"
	"github.com/sitelens/sitelens-mcp-server/internal/logging"
	"github.com/sitelens/sitelens-mcp-server/internal/update"
	"github.com/sitelens/sitelens-mcp-server/internal/version"
)

var (
	verbose  bool
	httpAddr string

	log      *logrus.Entry
	closeLog func()
	cfg      config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sitelens-mcp",
	Short: "Sitelens MCP server exposes web analytics to AI assistants",
	Long: `An MCP server that lets AI assistants query Sitelens web analytics:
page and app traffic, element clicks, visitors, sessions, and user flows,
all read-only and rendered as plain-text reports.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		log, closeLog, err = logging.New("sitelens-mcp")
		if err != nil {
			return err
		}
		if verbose {
			logging.SetVerbose(log)
		}

		log.WithFields(logrus.Fields{
			"version":   version.Get().Version,
			"commit":    version.Get().Commit,
			"buildDate": version.Get().BuildDate,
		}).Info("sitelens-mcp starting")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeLog != nil {
			closeLog()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		notifyOfNewerRelease()

		ctx := cmd.Context()
		if httpAddr == "" {
			log.Info("serving MCP over stdio")
			return app.RunStdio(ctx, cfg, os.Stdin, os.Stdout, log)
		}

		// Both transports share one toolbox-backed server per run.
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return app.RunMCPHTTP(cfg, httpAddr, log)
		})
		g.Go(func() error {
			return app.RunStdio(ctx, cfg, os.Stdin, os.Stdout, log)
		})
		return g.Wait()
	},
}

// notifyOfNewerRelease logs when a newer release exists. It is bounded to
// three seconds and silent on any failure so startup never blocks on the
// release host.
func notifyOfNewerRelease() {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		manifest, newer, err := update.CheckLatest(ctx, "stable", version.Get().Version)
		if err != nil {
			log.WithError(err).Debug("update check failed")
			return
		}

		st, _ := update.LoadStatus()
		st.MarkCheck(manifest.Version)
		if newer && st.NotifiedOfVersion != manifest.Version {
			st.NotifiedOfVersion = manifest.Version
			log.WithField("latest", manifest.Version).Info("a newer release is available; run 'sitelens-mcp update'")
		}
		_ = update.SaveStatus(st)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().StringVar(&httpAddr, "http", "", "also serve MCP over HTTP on this address (e.g. :3333)")
}
