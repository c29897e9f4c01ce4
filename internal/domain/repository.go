package domain

// Branch is a branch name and the SHA of its tip commit.
type Branch struct {
	Name   string
	TipSHA string
}

// FileAddition describes a single file committed onto a branch.
type FileAddition struct {
	Path     string
	Contents []byte
	Branch   string
	Message  string
}

// PullRequestSpec describes the pull request to open.
type PullRequestSpec struct {
	Title string
	Head  string
	Base  string
	Body  string
}
