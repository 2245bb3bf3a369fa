package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/freitascorp/s3tui/pkg/config"
	"github.com/freitascorp/s3tui/pkg/logging"
	"github.com/freitascorp/s3tui/pkg/s3client"
	"github.com/freitascorp/s3tui/pkg/tui"
)

var (
	flagDebug     bool
	flagConfigDir string
)

// configError wraps a credentials-loading failure so main.go can tell it
// apart from any other fatal error and map it to exit code 2 instead of 1
// (SPEC_FULL.md CLI entrypoint section).
type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// newRootCmd builds the command tree: a root command that, absent a remote
// argument, starts the TUI at the remote picker; `s3tui <remote>` jumps
// straight into that remote's bucket list; `s3tui <remote> <bucket>` jumps
// straight into the browser for that bucket.
func newRootCmd() *cobra.Command {
	level := &logging.LevelVar{}
	ring := logging.NewRing(500)
	var logger *slog.Logger
	var registry *s3client.Registry
	var prefs config.Preferences

	root := &cobra.Command{
		Use:   "s3tui [remote] [bucket]",
		Short: "Interactive terminal file manager for S3-compatible object storage",
		Args:  cobra.MaximumNArgs(2),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagDebug {
				level.Set(slog.LevelDebug)
			}
			logger = logging.New(level, ring)

			remotes, err := config.LoadRemotes(logger)
			if err != nil {
				return &configError{err}
			}
			registry = s3client.NewRegistry(remotes)

			envOverrides, err := config.LoadEnvOverrides()
			if err != nil {
				return err
			}
			if envOverrides.Debug {
				level.Set(slog.LevelDebug)
			}

			// --config-dir beats S3TUI_CONFIG_DIR, which beats the default
			// (defaults < file < env < flags).
			configDir := flagConfigDir
			if configDir == "" {
				configDir = envOverrides.ConfigDir
			}

			prefs, err = config.LoadPreferences(configDir)
			if err != nil {
				return err
			}
			prefs = envOverrides.Apply(prefs)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var remote, bucket string
			if len(args) > 0 {
				remote = args[0]
			}
			if len(args) > 1 {
				bucket = args[1]
			}
			return tui.Run(logger, ring, registry, prefs, remote, bucket)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "directory containing config.yaml (default: ~/.config/s3tui)")

	return root
}
