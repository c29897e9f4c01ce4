package domain

import (
	"time"
)

// WorkflowStatus represents the overall status of a pull request workflow
type WorkflowStatus string

const (
	WorkflowStatusPending   WorkflowStatus = "pending"
	WorkflowStatusRunning   WorkflowStatus = "running"
	WorkflowStatusCompleted WorkflowStatus = "completed"
	WorkflowStatusFailed    WorkflowStatus = "failed"
)

// StepStatus represents the status of an individual step
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusRunning   StepStatus = "running"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
)

// StepType identifies a workflow step. The values double as the action
// names reported in StatusError.
type StepType string

const (
	StepTypeGetRepository     StepType = "get repository"
	StepTypeGetBranch         StepType = "get branch"
	StepTypeCreateBranch      StepType = "create branch"
	StepTypeAddFile           StepType = "add file"
	StepTypeCreatePullRequest StepType = "create pull request"
)

// WorkflowState tracks one run of the pull request workflow. It lives in
// memory only.
type WorkflowState struct {
	SessionID      string
	StartedAt      time.Time
	UpdatedAt      time.Time
	Repository     string
	BranchName     string
	BaseBranch     string
	PullRequestURL string
	Steps          []StepRecord
	Status         WorkflowStatus
	Error          string
}

// StepRecord represents a single step in the workflow
type StepRecord struct {
	Type        StepType
	Status      StepStatus
	StartedAt   *time.Time
	CompletedAt *time.Time
	Error       string
}

// NewWorkflowState creates a new workflow state
func NewWorkflowState(sessionID string) *WorkflowState {
	now := time.Now()
	return &WorkflowState{
		SessionID: sessionID,
		StartedAt: now,
		UpdatedAt: now,
		Steps:     []StepRecord{},
		Status:    WorkflowStatusPending,
	}
}

// AddStep appends a pending step record
func (ws *WorkflowState) AddStep(stepType StepType) {
	ws.Steps = append(ws.Steps, StepRecord{Type: stepType, Status: StepStatusPending})
	ws.UpdatedAt = time.Now()
}

// MarkStepStarted marks the first pending step of the given type as running
func (ws *WorkflowState) MarkStepStarted(stepType StepType) {
	now := time.Now()
	for i := range ws.Steps {
		if ws.Steps[i].Type == stepType && ws.Steps[i].Status == StepStatusPending {
			ws.Steps[i].Status = StepStatusRunning
			ws.Steps[i].StartedAt = &now
			ws.UpdatedAt = now
			break
		}
	}
	ws.Status = WorkflowStatusRunning
}

// MarkStepCompleted marks a running step as completed
func (ws *WorkflowState) MarkStepCompleted(stepType StepType) {
	now := time.Now()
	for i := range ws.Steps {
		if ws.Steps[i].Type == stepType && ws.Steps[i].Status == StepStatusRunning {
			ws.Steps[i].Status = StepStatusCompleted
			ws.Steps[i].CompletedAt = &now
			ws.UpdatedAt = now
			break
		}
	}
}

// MarkStepFailed marks a running step as failed and fails the workflow
func (ws *WorkflowState) MarkStepFailed(stepType StepType, err error) {
	now := time.Now()
	for i := range ws.Steps {
		if ws.Steps[i].Type == stepType && ws.Steps[i].Status == StepStatusRunning {
			ws.Steps[i].Status = StepStatusFailed
			ws.Steps[i].CompletedAt = &now
			ws.Steps[i].Error = err.Error()
			ws.UpdatedAt = now
			break
		}
	}
	ws.Status = WorkflowStatusFailed
	ws.Error = err.Error()
}

// MarkCompleted marks the whole workflow as completed
func (ws *WorkflowState) MarkCompleted() {
	ws.Status = WorkflowStatusCompleted
	ws.UpdatedAt = time.Now()
}

// StepCompleted reports whether a step of the given type has completed
func (ws *WorkflowState) StepCompleted(stepType StepType) bool {
	for i := range ws.Steps {
		if ws.Steps[i].Type == stepType && ws.Steps[i].Status == StepStatusCompleted {
			return true
		}
	}
	return false
}

// CompletedSteps returns completed step types in execution order
func (ws *WorkflowState) CompletedSteps() []StepType {
	var completed []StepType
	for i := range ws.Steps {
		if ws.Steps[i].Status == StepStatusCompleted {
			completed = append(completed, ws.Steps[i].Type)
		}
	}
	return completed
}

// LeftoverBranch reports whether the new branch exists on the remote while
// the workflow did not finish.
func (ws *WorkflowState) LeftoverBranch() bool {
	return ws.Status == WorkflowStatusFailed && ws.StepCompleted(StepTypeCreateBranch)
}
