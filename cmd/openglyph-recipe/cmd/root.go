package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openeaw/openglyph-recipe/internal/config"
	"github.com/openeaw/openglyph-recipe/internal/logger"
	"github.com/openeaw/openglyph-recipe/internal/version"
)

// errUnknownLogLevel is returned for --log-level values zap does not know.
var errUnknownLogLevel = errors.New("unknown log level")

// rootFlags are shared by every subcommand.
type rootFlags struct {
	// configPath to the recipe configuration YAML file.
	configPath string
	// logLevel is a zap level name; empty keeps the configured level.
	logLevel string
}

// newRootCommand builds the command tree.
func newRootCommand() *cobra.Command {
	flags := new(rootFlags)

	root := &cobra.Command{
		Use:   "openglyph-recipe",
		Short: "Configure and package the OpenGlyph native library.",
		Long: `Derives the OpenGlyph version from version control and hands it to the native build.

The version is "<major>.<minor>.<patch>+<commit>[.dirty]": the numbers come from the
nearest "v?X.Y.Z" tag (0.0.0 without one), the commit is the first 12 characters of
HEAD, and ".dirty" marks uncommitted changes. Without a readable revision the
"+<commit>" part is left out.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if flags.logLevel == "" {
				return nil
			}

			level, ok := logger.ParseLogLevel(flags.logLevel)
			if !ok {
				return fmt.Errorf("%w: %q", errUnknownLogLevel, flags.logLevel)
			}

			logger.SetLevel(level)

			return nil
		},
	}

	root.PersistentFlags().
		StringVarP(&flags.configPath, "config", "c", config.DefaultConfigFilename, "path to recipe configuration file")
	root.PersistentFlags().
		StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newResolveCommand(flags),
		newDecodeCommand(),
		newGenerateCommand(flags),
	)

	version.AttachCobraVersionCommand(root)

	return root
}

// Execute runs the openglyph-recipe CLI and exits with non-zero status on error.
func Execute() {
	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)

	err := newRootCommand().ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
