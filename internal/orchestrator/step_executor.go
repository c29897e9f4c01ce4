package orchestrator

import (
	"context"
	"fmt"

	"github.com/compozy/hellopr/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WorkflowStep represents a single step in the workflow
type WorkflowStep struct {
	Type    domain.StepType
	Execute func(ctx context.Context) error
}

// StepExecutor runs workflow steps strictly in order and stops at the first
// failure. Completed steps are never compensated.
type StepExecutor struct {
	state  *domain.WorkflowState
	steps  []WorkflowStep
	logger *zap.Logger
}

// NewStepExecutor creates a new step executor with a fresh session id
func NewStepExecutor(logger *zap.Logger) *StepExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	sessionID := uuid.New().String()
	return &StepExecutor{
		state:  domain.NewWorkflowState(sessionID),
		steps:  []WorkflowStep{},
		logger: logger.With(zap.String("session_id", sessionID)),
	}
}

// AddStep adds a step to the workflow
func (s *StepExecutor) AddStep(step WorkflowStep) {
	s.steps = append(s.steps, step)
	s.state.AddStep(step.Type)
}

// Execute runs all steps
func (s *StepExecutor) Execute(ctx context.Context) error {
	for _, step := range s.steps {
		if err := ctx.Err(); err != nil {
			wrapped := fmt.Errorf("%w: step '%s' not started: %w", domain.ErrTransport, step.Type, err)
			s.state.MarkStepStarted(step.Type)
			s.state.MarkStepFailed(step.Type, wrapped)
			return wrapped
		}
		s.state.MarkStepStarted(step.Type)
		s.logger.Debug("step started", zap.String("step", string(step.Type)))
		if err := step.Execute(ctx); err != nil {
			s.state.MarkStepFailed(step.Type, err)
			s.logger.Debug("step failed", zap.String("step", string(step.Type)), zap.Error(err))
			return fmt.Errorf("step '%s' failed: %w", step.Type, err)
		}
		s.state.MarkStepCompleted(step.Type)
		s.logger.Debug("step completed", zap.String("step", string(step.Type)))
	}
	s.state.MarkCompleted()
	return nil
}

// GetState returns the current workflow state
func (s *StepExecutor) GetState() *domain.WorkflowState {
	return s.state
}
