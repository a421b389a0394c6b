package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openeaw/openglyph-recipe/internal/buildvars"
	"github.com/openeaw/openglyph-recipe/internal/logger"
	"github.com/openeaw/openglyph-recipe/internal/service/recipe"
)

// newDecodeCommand prints the build variables of a version string.
func newDecodeCommand() *cobra.Command {
	var (
		format string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "decode <version>",
		Short: "Print the build variables encoded in a version string.",
		Long: `Decodes "<major>.<minor>.<patch>+<commit>[.dirty]" into build variables.

Strings in any other form, such as a bare "0.0.0", carry no structured version
information: nothing is printed and the command still succeeds.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := buildvars.ParseFormat(format)
			if err != nil {
				return err
			}

			res := recipe.Decode(args[0], prefix)
			if res.Decoded == nil {
				logger.WarnKV(cmd.Context(), "Version carries no structured version information", "version", args[0])
				return nil
			}

			return buildvars.Render(cmd.OutOrStdout(), f, res.Variables)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(buildvars.FormatEnv), "output format (cmake, env, json, yaml, toml)")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", buildvars.DefaultPrefix, "variable name prefix")

	return cmd
}
