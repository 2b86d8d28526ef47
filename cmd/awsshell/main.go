// Command awsshell is an interactive shell around the aws CLI: typed input
// is completed and documented as you type, and submitted lines are forwarded
// to aws (or, with a ! prefix, to the system shell).
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"awsshell/internal/config"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		verbose bool
		opts    shellOptions
		logger  *zap.Logger
	)

	root := &cobra.Command{
		Use:           "awsshell",
		Short:         "Interactive shell for the aws CLI",
		Long:          "awsshell wraps the aws CLI in an interactive prompt with completion,\ninline documentation, and command history.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(logger, opts)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().StringVar(&opts.profile, "profile", "", "AWS profile to run commands with")
	root.Flags().StringVar(&opts.indexPath, "index", "", "path to an alternative command index file")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the awsshell version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "awsshell", version)
		},
	})

	return root
}

// newLogger builds the session logger. Output goes to a file under the data
// directory, never the terminal, which belongs to the prompt surface.
func newLogger(verbose bool) (*zap.Logger, error) {
	dataDir, err := config.DataDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(dataDir, "awsshell.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
