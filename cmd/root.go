package cmd

import (
	"time"

	"github.com/compozy/hellopr/internal/config"
	"github.com/compozy/hellopr/internal/orchestrator"
	"github.com/compozy/hellopr/pkg/version"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	verbose    bool
	timeout    time.Duration
}

var rootCmd = newRootCmd(afero.NewOsFs())

func newRootCmd(fs afero.Fs) *cobra.Command {
	opts := &rootOptions{}
	prOpts := &openPROptions{}
	cmd := &cobra.Command{
		Use:   "hellopr",
		Short: "Open a pull request that adds a hello world file to one of your repositories",
		Long: `hellopr lists the repositories of the authenticated GitHub user, lets you
pick one, and opens a pull request that adds a single file on a new branch.

The GitHub token is read from a JSON configuration file ("config.json" by
default) of the form {"token": "<token>"}.`,
		Version:       version.Summary(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOpenPR(cmd, fs, opts, prOpts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultConfigPath, "Path to the JSON configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "Abort the whole run after this duration (0 disables)")

	cmd.Flags().StringVar(&prOpts.repo, "repo", "", "Repository (owner/name) to use instead of the interactive menu")
	cmd.Flags().BoolVarP(&prOpts.yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().StringVar(&prOpts.branch, "branch", orchestrator.DefaultBranchName, "Name of the branch to create")
	cmd.Flags().StringVar(&prOpts.file, "file", orchestrator.DefaultFilePath, "Path of the file to add")
	cmd.Flags().StringVar(&prOpts.content, "content", orchestrator.DefaultFileContents, "Contents of the file to add")
	cmd.Flags().StringVar(&prOpts.title, "title", orchestrator.DefaultPRTitle, "Pull request title")
	cmd.Flags().StringVar(&prOpts.body, "body", orchestrator.DefaultPRBody, "Pull request body")

	cmd.AddCommand(newReposCmd(fs, opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func Execute() error {
	return rootCmd.Execute()
}
