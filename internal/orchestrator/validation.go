package orchestrator

import (
	"fmt"
	"path"
	"strings"

	"github.com/compozy/hellopr/internal/config"
)

// ValidateRepoFullName validates an "owner/name" repository identifier.
func ValidateRepoFullName(fullName string) error {
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok {
		return fmt.Errorf("repository must be in owner/name form: %q", fullName)
	}
	return config.ValidateGitHubOwnerRepo(owner, repo)
}

// ValidateBranchName applies the git ref-format rules to a branch name. Any
// other character, quotes and non-ASCII included, is allowed.
func ValidateBranchName(branch string) error {
	if branch == "" {
		return fmt.Errorf("branch name cannot be empty")
	}
	if len(branch) > 255 {
		return fmt.Errorf("branch name too long: %d characters (max: 255)", len(branch))
	}
	if branch == "@" {
		return fmt.Errorf("branch name cannot be a single @")
	}
	for _, r := range branch {
		if r < 0x20 || r == 0x7f || r == ' ' || strings.ContainsRune(`~^:?*[\`, r) {
			return fmt.Errorf("branch name contains forbidden character %q: %s", r, branch)
		}
	}
	if strings.Contains(branch, "..") {
		return fmt.Errorf("branch name cannot contain consecutive dots: %s", branch)
	}
	if strings.Contains(branch, "@{") {
		return fmt.Errorf("branch name cannot contain @{: %s", branch)
	}
	if strings.HasPrefix(branch, "/") || strings.HasSuffix(branch, "/") {
		return fmt.Errorf("branch name cannot start or end with slash: %s", branch)
	}
	if strings.HasSuffix(branch, ".") {
		return fmt.Errorf("branch name cannot end with a dot: %s", branch)
	}
	for _, component := range strings.Split(branch, "/") {
		if component == "" {
			return fmt.Errorf("branch name cannot contain consecutive slashes: %s", branch)
		}
		if strings.HasPrefix(component, ".") {
			return fmt.Errorf("branch name component cannot start with a dot: %s", branch)
		}
		if strings.HasSuffix(component, ".lock") {
			return fmt.Errorf("branch name component cannot end with .lock: %s", branch)
		}
	}
	return nil
}

// ValidateFilePath validates a repository-relative file path.
func ValidateFilePath(filePath string) error {
	if strings.TrimSpace(filePath) == "" {
		return fmt.Errorf("file path cannot be empty")
	}
	if strings.HasPrefix(filePath, "/") || strings.HasSuffix(filePath, "/") {
		return fmt.Errorf("file path cannot start or end with slash: %s", filePath)
	}
	for _, segment := range strings.Split(filePath, "/") {
		if segment == ".." || segment == "." || segment == "" {
			return fmt.Errorf("file path contains invalid segment: %s", filePath)
		}
	}
	if path.Clean(filePath) != filePath {
		return fmt.Errorf("file path is not clean: %s", filePath)
	}
	return nil
}
