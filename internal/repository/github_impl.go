package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/compozy/hellopr/internal/domain"
	"github.com/google/go-github/v74/github"
)

// DefaultPerPage is the page size used when listing repositories.
const DefaultPerPage = 10

// githubRepository is the implementation of the GithubRepository interface.
type githubRepository struct {
	transport *Transport
	perPage   int
}

// createRefRequest is the body of POST /repos/{repo}/git/refs.
type createRefRequest struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

// NewGithubRepository creates a GithubRepository on top of transport.
// A non-positive perPage falls back to DefaultPerPage.
func NewGithubRepository(transport *Transport, perPage int) GithubRepository {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &githubRepository{transport: transport, perPage: perPage}
}

// ListRepositories walks /user/repos until a short page is returned.
func (r *githubRepository) ListRepositories(ctx context.Context) ([]string, error) {
	var names []string
	for page := 1; ; page++ {
		path := fmt.Sprintf("/user/repos?per_page=%d&page=%d", r.perPage, page)
		resp, err := r.transport.Get(ctx, path)
		if err != nil {
			return nil, err
		}
		if !domain.IsSuccess(resp.StatusCode) {
			return nil, domain.NewStatusError("list repositories", resp.StatusCode)
		}
		var repos []*github.Repository
		if err := json.Unmarshal([]byte(resp.Body), &repos); err != nil {
			return nil, fmt.Errorf("failed to decode repositories page %d: %w", page, err)
		}
		for _, repo := range repos {
			names = append(names, repo.GetFullName())
		}
		if len(repos) < r.perPage {
			return names, nil
		}
	}
}

// GetDefaultBranch reads default_branch from /repos/{repo}.
func (r *githubRepository) GetDefaultBranch(ctx context.Context, repo string) (string, error) {
	resp, err := r.transport.Get(ctx, "/repos/"+repo)
	if err != nil {
		return "", err
	}
	if !domain.IsSuccess(resp.StatusCode) {
		return "", domain.NewStatusError(string(domain.StepTypeGetRepository), resp.StatusCode)
	}
	var info github.Repository
	if err := json.Unmarshal([]byte(resp.Body), &info); err != nil {
		return "", fmt.Errorf("failed to decode repository %s: %w", repo, err)
	}
	if info.GetDefaultBranch() == "" {
		return "", fmt.Errorf("repository %s has no default branch", repo)
	}
	return info.GetDefaultBranch(), nil
}

// GetBranch reads the tip commit of a branch.
func (r *githubRepository) GetBranch(ctx context.Context, repo, branch string) (*domain.Branch, error) {
	resp, err := r.transport.Get(ctx, "/repos/"+repo+"/branches/"+url.PathEscape(branch))
	if err != nil {
		return nil, err
	}
	if !domain.IsSuccess(resp.StatusCode) {
		return nil, domain.NewStatusError(string(domain.StepTypeGetBranch), resp.StatusCode)
	}
	var info github.Branch
	if err := json.Unmarshal([]byte(resp.Body), &info); err != nil {
		return nil, fmt.Errorf("failed to decode branch %s: %w", branch, err)
	}
	sha := info.GetCommit().GetSHA()
	if sha == "" {
		return nil, fmt.Errorf("branch %s of %s has no commit sha", branch, repo)
	}
	return &domain.Branch{Name: branch, TipSHA: sha}, nil
}

// CreateBranch creates a new ref pointing at sha.
func (r *githubRepository) CreateBranch(ctx context.Context, repo, name, sha string) error {
	resp, err := r.transport.Post(ctx, "/repos/"+repo+"/git/refs", createRefRequest{
		Ref: "refs/heads/" + name,
		SHA: sha,
	})
	if err != nil {
		return err
	}
	if !domain.IsSuccess(resp.StatusCode) {
		return domain.NewStatusError(string(domain.StepTypeCreateBranch), resp.StatusCode)
	}
	return nil
}

// AddFile creates a file through the contents API. The contents are sent as
// standard Base64 by the []byte JSON encoding of RepositoryContentFileOptions.
func (r *githubRepository) AddFile(ctx context.Context, repo string, file domain.FileAddition) error {
	resp, err := r.transport.Put(ctx, "/repos/"+repo+"/contents/"+escapePath(file.Path), &github.RepositoryContentFileOptions{
		Message: github.Ptr(file.Message),
		Content: file.Contents,
		Branch:  github.Ptr(file.Branch),
	})
	if err != nil {
		return err
	}
	if !domain.IsSuccess(resp.StatusCode) {
		return domain.NewStatusError(string(domain.StepTypeAddFile), resp.StatusCode)
	}
	return nil
}

// CreatePullRequest opens a pull request and returns its html_url.
func (r *githubRepository) CreatePullRequest(
	ctx context.Context,
	repo string,
	pr domain.PullRequestSpec,
) (string, error) {
	resp, err := r.transport.Post(ctx, "/repos/"+repo+"/pulls", &github.NewPullRequest{
		Title: github.Ptr(pr.Title),
		Head:  github.Ptr(pr.Head),
		Base:  github.Ptr(pr.Base),
		Body:  github.Ptr(pr.Body),
	})
	if err != nil {
		return "", err
	}
	if !domain.IsSuccess(resp.StatusCode) {
		return "", domain.NewStatusError(string(domain.StepTypeCreatePullRequest), resp.StatusCode)
	}
	var created github.PullRequest
	if err := json.Unmarshal([]byte(resp.Body), &created); err != nil {
		return "", fmt.Errorf("failed to decode pull request: %w", err)
	}
	if created.GetHTMLURL() == "" {
		return "", fmt.Errorf("pull request response for %s has no html_url", repo)
	}
	return created.GetHTMLURL(), nil
}

// escapePath escapes each segment of a repository file path.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
