package commands

import (
	"errors"
	"time"

	"parcelflow/internal/pkg/guard"
)

var (
	ErrAdvanceJobsCommandIsNotConstructed = errors.New(
		"AdvanceJobsCommand must be created via NewAdvanceJobsCommand constructor",
	)
	ErrNowIsRequired = errors.New("now is required")
)

// AdvanceJobsCommand represents one sweep of the progress generator at the
// given wall-clock time. Carrying the time on the command keeps the sweep
// deterministic under test.
type AdvanceJobsCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

// NewAdvanceJobsCommand creates a command to run one progress sweep.
func NewAdvanceJobsCommand(now time.Time) (AdvanceJobsCommand, error) {
	cmd := AdvanceJobsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if now.IsZero() {
		return AdvanceJobsCommand{}, ErrNowIsRequired
	}
	cmd.now = now

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceJobsCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceJobsCommandIsNotConstructed)
}

// Now returns the sweep's wall-clock time.
func (c AdvanceJobsCommand) Now() time.Time {
	return c.now
}
