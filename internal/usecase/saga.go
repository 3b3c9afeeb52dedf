package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"fad/pkg/errors"
	"fad/pkg/logger"
)

// SagaStep is one write in a multi-step operation. Compensate undoes Run and
// may be nil when there is nothing to undo.
type SagaStep struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga runs steps in order. When a step fails the completed steps are
// compensated in reverse order.
type Saga struct {
	name  string
	steps []SagaStep
}

func NewSaga(name string) *Saga {
	return &Saga{name: name}
}

func (s *Saga) Step(name string, run, compensate func(ctx context.Context) error) *Saga {
	s.steps = append(s.steps, SagaStep{Name: name, Run: run, Compensate: compensate})
	return s
}

type SagaError struct {
	Saga               string
	FailedStep         string
	CompletedSteps     []string
	Err                error
	CompensationErrors []error
}

func (e *SagaError) Error() string {
	msg := fmt.Sprintf("%s: step %q failed: %v", e.Saga, e.FailedStep, e.Err)
	if len(e.CompensationErrors) > 0 {
		msg += fmt.Sprintf(" (%d compensation errors)", len(e.CompensationErrors))
	}
	return msg
}

func (e *SagaError) Unwrap() error {
	return e.Err
}

// RolledBack reports whether every completed step was undone.
func (e *SagaError) RolledBack() bool {
	return len(e.CompensationErrors) == 0
}

func (s *Saga) Execute(ctx context.Context) error {
	completed := make([]SagaStep, 0, len(s.steps))

	for _, step := range s.steps {
		if err := step.Run(ctx); err != nil {
			sagaErr := &SagaError{
				Saga:       s.name,
				FailedStep: step.Name,
				Err:        err,
			}
			for _, done := range completed {
				sagaErr.CompletedSteps = append(sagaErr.CompletedSteps, done.Name)
			}

			for i := len(completed) - 1; i >= 0; i-- {
				done := completed[i]
				if done.Compensate == nil {
					continue
				}
				if cerr := done.Compensate(ctx); cerr != nil {
					logger.Error("Saga %s: compensation of %q failed: %v", s.name, done.Name, cerr)
					sagaErr.CompensationErrors = append(sagaErr.CompensationErrors, cerr)
				}
			}
			return sagaErr
		}
		completed = append(completed, step)
	}

	return nil
}

// sagaFailure maps a saga error to an API error. A client error from a step
// whose earlier writes were fully undone is returned as is; anything else is
// a partial failure the caller can detect and retry.
func sagaFailure(err error) error {
	var sagaErr *SagaError
	if !stderrors.As(err, &sagaErr) {
		return err
	}

	var appErr *errors.AppError
	if stderrors.As(sagaErr.Err, &appErr) && appErr.Status < 500 && sagaErr.RolledBack() {
		return appErr
	}

	compensation := make([]string, 0, len(sagaErr.CompensationErrors))
	for _, cerr := range sagaErr.CompensationErrors {
		compensation = append(compensation, cerr.Error())
	}

	return errors.PartialFailure(sagaErr.FailedStep, sagaErr, map[string]interface{}{
		"operation":           sagaErr.Saga,
		"failed_step":         sagaErr.FailedStep,
		"completed_steps":     sagaErr.CompletedSteps,
		"rolled_back":         sagaErr.RolledBack(),
		"compensation_errors": compensation,
		"retryable":           true,
		"summary":             strings.TrimSpace(sagaErr.Err.Error()),
	})
}
