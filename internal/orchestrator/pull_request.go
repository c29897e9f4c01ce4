package orchestrator

import (
	"context"
	"fmt"

	"github.com/compozy/hellopr/internal/domain"
	"github.com/compozy/hellopr/internal/repository"
	"go.uber.org/zap"
)

// PullRequestConfig contains the arguments of one pull request workflow run.
type PullRequestConfig struct {
	Repository    string
	BranchName    string
	FilePath      string
	FileContents  []byte
	CommitMessage string
	Title         string
	Body          string
}

// Validate checks the arguments before any request is issued.
func (c *PullRequestConfig) Validate() error {
	if err := ValidateRepoFullName(c.Repository); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInput, err)
	}
	if err := ValidateBranchName(c.BranchName); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInput, err)
	}
	if err := ValidateFilePath(c.FilePath); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInput, err)
	}
	return nil
}

// PullRequestOrchestrator opens a pull request that adds one file on a new branch.
type PullRequestOrchestrator struct {
	githubRepo repository.GithubRepository
	logger     *zap.Logger
	lastState  *domain.WorkflowState
}

// NewPullRequestOrchestrator creates a new pull request orchestrator.
func NewPullRequestOrchestrator(githubRepo repository.GithubRepository, logger *zap.Logger) *PullRequestOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PullRequestOrchestrator{githubRepo: githubRepo, logger: logger}
}

// CreatePullRequest runs the workflow with the given arguments and returns the
// pull request web URL.
func (o *PullRequestOrchestrator) CreatePullRequest(
	ctx context.Context,
	repoFullName, newBranchName, filePath string,
	fileContents []byte,
	prTitle, prBody string,
) (string, error) {
	return o.Execute(ctx, PullRequestConfig{
		Repository:    repoFullName,
		BranchName:    newBranchName,
		FilePath:      filePath,
		FileContents:  fileContents,
		CommitMessage: DefaultCommitMessage,
		Title:         prTitle,
		Body:          prBody,
	})
}

// Execute runs the five workflow steps in order:
// resolve default branch, read its tip, create the branch, add the file, open the PR.
func (o *PullRequestOrchestrator) Execute(ctx context.Context, cfg PullRequestConfig) (string, error) {
	o.lastState = nil
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if cfg.CommitMessage == "" {
		cfg.CommitMessage = DefaultCommitMessage
	}
	if DefaultWorkflowTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultWorkflowTimeout)
		defer cancel()
	}
	executor := NewStepExecutor(o.logger)
	state := executor.GetState()
	state.Repository = cfg.Repository
	state.BranchName = cfg.BranchName
	o.lastState = state

	var (
		defaultBranch string
		tip           *domain.Branch
		htmlURL       string
	)
	executor.AddStep(WorkflowStep{
		Type: domain.StepTypeGetRepository,
		Execute: func(ctx context.Context) error {
			branch, err := o.githubRepo.GetDefaultBranch(ctx, cfg.Repository)
			if err != nil {
				return err
			}
			defaultBranch = branch
			state.BaseBranch = branch
			return nil
		},
	})
	executor.AddStep(WorkflowStep{
		Type: domain.StepTypeGetBranch,
		Execute: func(ctx context.Context) error {
			branch, err := o.githubRepo.GetBranch(ctx, cfg.Repository, defaultBranch)
			if err != nil {
				return err
			}
			tip = branch
			return nil
		},
	})
	executor.AddStep(WorkflowStep{
		Type: domain.StepTypeCreateBranch,
		Execute: func(ctx context.Context) error {
			return o.githubRepo.CreateBranch(ctx, cfg.Repository, cfg.BranchName, tip.TipSHA)
		},
	})
	executor.AddStep(WorkflowStep{
		Type: domain.StepTypeAddFile,
		Execute: func(ctx context.Context) error {
			return o.githubRepo.AddFile(ctx, cfg.Repository, domain.FileAddition{
				Path:     cfg.FilePath,
				Contents: cfg.FileContents,
				Branch:   cfg.BranchName,
				Message:  cfg.CommitMessage,
			})
		},
	})
	executor.AddStep(WorkflowStep{
		Type: domain.StepTypeCreatePullRequest,
		Execute: func(ctx context.Context) error {
			url, err := o.githubRepo.CreatePullRequest(ctx, cfg.Repository, domain.PullRequestSpec{
				Title: cfg.Title,
				Head:  cfg.BranchName,
				Base:  defaultBranch,
				Body:  cfg.Body,
			})
			if err != nil {
				return err
			}
			htmlURL = url
			state.PullRequestURL = url
			return nil
		},
	})

	if err := executor.Execute(ctx); err != nil {
		if state.LeftoverBranch() {
			o.logger.Warn("branch left on remote after failure",
				zap.String("repository", cfg.Repository),
				zap.String("branch", cfg.BranchName),
			)
		}
		return "", err
	}
	o.logger.Debug("pull request created",
		zap.String("repository", cfg.Repository),
		zap.String("url", htmlURL),
	)
	return htmlURL, nil
}

// LastState returns the state of the most recent run, or nil before the first run.
func (o *PullRequestOrchestrator) LastState() *domain.WorkflowState {
	return o.lastState
}
