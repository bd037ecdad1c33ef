package commands

import (
	"errors"

	"orderboard/internal/pkg/guard"
)

var (
	ErrExpireOrdersCommandIsNotConstructed = errors.New(
		"ExpireOrdersCommand must be created via NewExpireOrdersCommand constructor",
	)
)

// ExpireOrdersCommand represents a request to sweep all pending orders whose
// expiry has passed and settle each one with a refund.
type ExpireOrdersCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewExpireOrdersCommand creates a command to run the expiry sweep.
func NewExpireOrdersCommand() (ExpireOrdersCommand, error) {
	return ExpireOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrExpireOrdersCommandIsNotConstructed if validation fails.
func (c ExpireOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireOrdersCommandIsNotConstructed)
}
