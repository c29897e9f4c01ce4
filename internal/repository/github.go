package repository

import (
	"context"

	"github.com/compozy/hellopr/internal/domain"
)

// GithubRepository defines the GitHub API operations used by hellopr.
type GithubRepository interface {
	// ListRepositories returns "owner/name" for every repository of the authenticated user.
	ListRepositories(ctx context.Context) ([]string, error)
	// GetDefaultBranch returns the default branch name of repo.
	GetDefaultBranch(ctx context.Context, repo string) (string, error)
	// GetBranch returns a branch with its tip commit.
	GetBranch(ctx context.Context, repo, branch string) (*domain.Branch, error)
	// CreateBranch creates refs/heads/<name> pointing at sha.
	CreateBranch(ctx context.Context, repo, name, sha string) error
	// AddFile commits a new file onto a branch.
	AddFile(ctx context.Context, repo string, file domain.FileAddition) error
	// CreatePullRequest opens a pull request and returns its web URL.
	CreatePullRequest(ctx context.Context, repo string, pr domain.PullRequestSpec) (string, error)
}
