package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newReposCmd(fs afero.Fs, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repos",
		Short: "List the repositories of the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			c, err := newContainer(fs, opts, out)
			if err != nil {
				return err
			}
			defer c.close()
			ctx, cancel := withTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			repos, err := c.ghRepo.ListRepositories(ctx)
			if err != nil {
				return fmt.Errorf("failed to list repositories: %w", err)
			}
			for i, repo := range repos {
				fmt.Fprintf(out, "%d. %s\n", i+1, repo)
			}
			return nil
		},
	}
}
