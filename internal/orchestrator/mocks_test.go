package orchestrator

import (
	"context"

	"github.com/compozy/hellopr/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mock for GithubRepository
type mockGithubRepository struct{ mock.Mock }

func (m *mockGithubRepository) ListRepositories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if names := args.Get(0); names != nil {
		return names.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGithubRepository) GetDefaultBranch(ctx context.Context, repo string) (string, error) {
	args := m.Called(ctx, repo)
	return args.String(0), args.Error(1)
}

func (m *mockGithubRepository) GetBranch(ctx context.Context, repo, branch string) (*domain.Branch, error) {
	args := m.Called(ctx, repo, branch)
	if b := args.Get(0); b != nil {
		return b.(*domain.Branch), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGithubRepository) CreateBranch(ctx context.Context, repo, name, sha string) error {
	args := m.Called(ctx, repo, name, sha)
	return args.Error(0)
}

func (m *mockGithubRepository) AddFile(ctx context.Context, repo string, file domain.FileAddition) error {
	args := m.Called(ctx, repo, file)
	return args.Error(0)
}

func (m *mockGithubRepository) CreatePullRequest(
	ctx context.Context,
	repo string,
	pr domain.PullRequestSpec,
) (string, error) {
	args := m.Called(ctx, repo, pr)
	return args.String(0), args.Error(1)
}
