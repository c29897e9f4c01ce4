package cmd

import (
	"fmt"

	"github.com/compozy/hellopr/internal/domain"
	"github.com/compozy/hellopr/internal/orchestrator"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// openPROptions are the flags of the root command.
type openPROptions struct {
	repo    string
	yes     bool
	branch  string
	file    string
	content string
	title   string
	body    string
}

// runOpenPR lists repositories, asks for a choice and opens the pull request.
func runOpenPR(cmd *cobra.Command, fs afero.Fs, opts *rootOptions, prOpts *openPROptions) error {
	out := cmd.OutOrStdout()
	c, err := newContainer(fs, opts, out)
	if err != nil {
		return err
	}
	defer c.close()
	ctx, cancel := withTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	p := newPrompter(cmd.InOrStdin(), out)
	repo := prOpts.repo
	if repo == "" {
		repos, err := c.ghRepo.ListRepositories(ctx)
		if err != nil {
			return fmt.Errorf("failed to list repositories: %w", err)
		}
		repo, err = p.SelectRepository(repos)
		if err != nil {
			return err
		}
	} else if err := orchestrator.ValidateRepoFullName(repo); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInput, err)
	}
	if !prOpts.yes {
		if err := p.Confirm(repo); err != nil {
			return err
		}
	}

	url, err := c.prOrch.CreatePullRequest(ctx, repo, prOpts.branch, prOpts.file,
		[]byte(prOpts.content), prOpts.title, prOpts.body)
	if err != nil {
		if state := c.prOrch.LastState(); state != nil && state.LeftoverBranch() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Note: branch %q was created on %s and has not been removed.\n",
				state.BranchName, state.Repository)
		}
		return fmt.Errorf("failed to create pull request: %w", err)
	}
	fmt.Fprintln(out, "Pull request created successfully!")
	fmt.Fprintf(out, "You can view it here: %s\n", url)
	return nil
}
