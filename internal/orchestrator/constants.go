package orchestrator

import (
	"os"
	"time"
)

// Arguments the interactive front end passes to CreatePullRequest.
const (
	DefaultBranchName    = "hello_world"
	DefaultFilePath      = "Hello.txt"
	DefaultFileContents  = "Hello world"
	DefaultPRTitle       = "Add new file"
	DefaultPRBody        = "Add hello world file."
	DefaultCommitMessage = "Add new file"
)

// DefaultWorkflowTimeout bounds a whole run; zero disables the bound.
var DefaultWorkflowTimeout = getTimeoutOrDefault("HELLOPR_WORKFLOW_TIMEOUT", 0)

// getTimeoutOrDefault returns the duration from envVar or the default
func getTimeoutOrDefault(envVar string, def time.Duration) time.Duration {
	if env := os.Getenv(envVar); env != "" {
		if duration, err := time.ParseDuration(env); err == nil {
			return duration
		}
	}
	return def
}
