package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openeaw/openglyph-recipe/internal/service/recipe"
)

// newGenerateCommand runs the full configuration step.
func newGenerateCommand(root *rootFlags) *cobra.Command {
	opts := new(recipe.Options)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write build variables and the package descriptor.",
		Long: `Resolves the version, writes the build variables for the native build and the
package descriptor with checksums of the exported sources.

Version control problems never fail the command: the version degrades to a bare
"<major>.<minor>.<patch>" or "0.0.0" and only <PREFIX>_STRING is written.
Pass "-" as --output or --descriptor to skip that file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.ConfigPath = root.configPath
			opts.LogLevel = root.logLevel

			res, err := recipe.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Version)

			return err
		},
	}

	cmd.Flags().StringVarP(&opts.Folder, "folder", "C", "", "recipe folder (defaults to the configuration file folder)")
	cmd.Flags().StringVarP(&opts.Backend, "backend", "b", "", "version control backend (git, go-git, none)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "build variable format (cmake, env, json, yaml, toml)")
	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "", "build variable file, \"-\" to skip")
	cmd.Flags().StringVarP(&opts.DescriptorPath, "descriptor", "d", "", "package descriptor file, \"-\" to skip")
	cmd.Flags().StringVarP(&opts.Prefix, "prefix", "p", "", "variable name prefix")

	return cmd
}
