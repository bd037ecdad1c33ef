package commands

import (
	"errors"
	"fmt"
	"time"

	"orderboard/internal/pkg/errs"
	"orderboard/internal/pkg/guard"
)

var (
	ErrPurgeOrdersCommandIsNotConstructed = errors.New(
		"PurgeOrdersCommand must be created via NewPurgeOrdersCommand constructor",
	)
)

// PurgeOrdersCommand represents a request to delete terminal orders older than
// a retention window, together with their delivery records.
type PurgeOrdersCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

// NewPurgeOrdersCommand creates a command to purge settled history.
// The retention duration must be positive.
func NewPurgeOrdersCommand(retention time.Duration) (PurgeOrdersCommand, error) {
	purgeCommand := PurgeOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := purgeCommand.setRetention(retention); err != nil {
		return PurgeOrdersCommand{}, err
	}

	return purgeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPurgeOrdersCommandIsNotConstructed if validation fails.
func (c PurgeOrdersCommand) Validate() error {
	return c.guard.Validate(ErrPurgeOrdersCommandIsNotConstructed)
}

// Retention returns how long terminal orders are kept before deletion.
func (c PurgeOrdersCommand) Retention() time.Duration {
	return c.retention
}

func (c *PurgeOrdersCommand) setRetention(retention time.Duration) error {
	if retention <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"retention is invalid",
			fmt.Errorf("%s is not greater than 0", retention),
		)
	}

	c.retention = retention
	return nil
}
