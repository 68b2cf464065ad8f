// Package saga runs multi-step workflows with compensation. Steps execute in
// order; when one fails, the compensations of every previously completed step
// run in reverse order to undo the partial work.
package saga

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrCompensationFailed marks the case where the workflow failed AND one or
// more compensations failed too, leaving the system partially modified.
var ErrCompensationFailed = errors.New("compensating actions failed")

// Step is one unit of a workflow. Run performs the forward action.
// Compensate undoes it; a nil Compensate marks the step as not undoable.
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// CompensationError reports a workflow failure whose rollback also failed.
// Cause is the error that aborted the workflow; Failures holds one error per
// compensation that did not succeed.
type CompensationError struct {
	Cause    error
	Failures []error
}

// Error implements the error interface.
func (e *CompensationError) Error() string {
	return fmt.Sprintf("%s: cause: %s, failures: %s",
		ErrCompensationFailed, e.Cause, errors.Join(e.Failures...))
}

// Unwrap exposes ErrCompensationFailed, the original cause and every
// compensation failure to errors.Is and errors.As.
func (e *CompensationError) Unwrap() []error {
	unwrapped := make([]error, 0, len(e.Failures)+2)
	unwrapped = append(unwrapped, ErrCompensationFailed, e.Cause)
	unwrapped = append(unwrapped, e.Failures...)
	return unwrapped
}

// Coordinator executes step lists and logs compensation activity.
type Coordinator struct {
	logger *slog.Logger
}

// NewCoordinator creates a saga coordinator.
func NewCoordinator(logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{logger: logger.With("component", "saga")}
}

// Execute runs the steps in order. On failure it compensates the completed
// steps in reverse order and returns the failing step's error, or a
// *CompensationError when rollback itself failed. Each compensation runs even
// when an earlier one fails.
func (c *Coordinator) Execute(ctx context.Context, steps []Step) error {
	for i, step := range steps {
		if err := step.Run(ctx); err != nil {
			cause := fmt.Errorf("step %q: %w", step.Name, err)
			c.logger.Error("workflow step failed, compensating",
				"step", step.Name, "error", err)
			return c.compensate(ctx, steps[:i], cause)
		}
	}
	return nil
}

func (c *Coordinator) compensate(ctx context.Context, completed []Step, cause error) error {
	var failures []error

	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if step.Compensate == nil {
			continue
		}

		if err := step.Compensate(ctx); err != nil {
			c.logger.Error("compensation failed",
				"step", step.Name, "error", err)
			failures = append(failures, fmt.Errorf("compensate %q: %w", step.Name, err))
		}
	}

	if len(failures) > 0 {
		return &CompensationError{Cause: cause, Failures: failures}
	}
	return cause
}
