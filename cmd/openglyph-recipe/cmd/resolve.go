package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openeaw/openglyph-recipe/internal/service/recipe"
)

// newResolveCommand prints the resolved version string.
func newResolveCommand(root *rootFlags) *cobra.Command {
	var (
		folder  string
		backend string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the version derived from version control.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := recipe.LoadConfig(&recipe.Options{
				ConfigPath: root.configPath,
				Folder:     folder,
				Backend:    backend,
			})
			if err != nil {
				return err
			}

			resolved, err := recipe.ResolveVersion(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), resolved)

			return err
		},
	}

	cmd.Flags().StringVarP(&folder, "folder", "C", "", "directory inside the repository to query")
	cmd.Flags().StringVarP(&backend, "backend", "b", "", "version control backend (git, go-git, none)")

	return cmd
}
