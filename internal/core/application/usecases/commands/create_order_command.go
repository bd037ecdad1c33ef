package commands

import (
	"errors"
	"fmt"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/pkg/errs"
	"orderboard/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to post a new order: an owner asking
// for a quantity of an item at a fixed unit price, funded up front.
//
// Example:
//
//	spec, _ := order.NewItemSpec("oak_log", nil)
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), ownerID, spec, 64, 2.5, 10,
//	    time.Now().Add(24*time.Hour))
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, ledger, policy, publisher, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	ownerID      kernel.UUID
	itemSpec     order.ItemSpec
	quantity     int
	pricePerUnit float64
	fee          float64
	expiresAt    time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to post a new order.
// Validates identifiers, the item spec, a positive quantity, non-negative price
// and fee, and a future expiry. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	ownerID kernel.UUID,
	itemSpec order.ItemSpec,
	quantity int,
	pricePerUnit float64,
	fee float64,
	expiresAt time.Time,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setOwnerID(ownerID),
		orderCommand.setItemSpec(itemSpec),
		orderCommand.setQuantity(quantity),
		orderCommand.setPricePerUnit(pricePerUnit),
		orderCommand.setFee(fee),
		orderCommand.setExpiresAt(expiresAt),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OwnerID returns the participant posting the order.
func (c CreateOrderCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// ItemSpec returns the specification of the requested item.
func (c CreateOrderCommand) ItemSpec() order.ItemSpec {
	return c.itemSpec
}

// Quantity returns the total units requested.
func (c CreateOrderCommand) Quantity() int {
	return c.quantity
}

// PricePerUnit returns the unit price offered per delivered unit.
func (c CreateOrderCommand) PricePerUnit() float64 {
	return c.pricePerUnit
}

// Fee returns the flat creation fee.
func (c CreateOrderCommand) Fee() float64 {
	return c.fee
}

// ExpiresAt returns when the order becomes eligible for the expiry sweep.
func (c CreateOrderCommand) ExpiresAt() time.Time {
	return c.expiresAt
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	c.ownerID = ownerID
	return nil
}

func (c *CreateOrderCommand) setItemSpec(itemSpec order.ItemSpec) error {
	if err := itemSpec.Validate(); err != nil {
		return err
	}

	c.itemSpec = itemSpec
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}

	c.quantity = quantity
	return nil
}

func (c *CreateOrderCommand) setPricePerUnit(pricePerUnit float64) error {
	if pricePerUnit < 0 {
		return errs.NewValueIsInvalidErrorWithCause("pricePerUnit is invalid", fmt.Errorf("%f is negative", pricePerUnit))
	}

	c.pricePerUnit = pricePerUnit
	return nil
}

func (c *CreateOrderCommand) setFee(fee float64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("fee is invalid", fmt.Errorf("%f is negative", fee))
	}

	c.fee = fee
	return nil
}

func (c *CreateOrderCommand) setExpiresAt(expiresAt time.Time) error {
	if expiresAt.IsZero() {
		return errs.NewValueIsRequiredError("expiresAt")
	}

	c.expiresAt = expiresAt
	return nil
}
