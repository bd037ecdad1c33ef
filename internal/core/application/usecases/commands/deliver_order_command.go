package commands

import (
	"errors"
	"fmt"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/pkg/errs"
	"orderboard/internal/pkg/guard"
)

var (
	ErrDeliverOrderCommandIsNotConstructed = errors.New(
		"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
	)
)

// DeliverOrderCommand represents a deliverer's offer to fulfill part or all of
// an order with a quantity of a concrete item.
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	delivererID     kernel.UUID
	offeredItem     order.ItemSpec
	offeredQuantity int

	guard guard.ConstructorGuard
}

// NewDeliverOrderCommand creates a command to deliver against an order.
// Validates identifiers, the offered item spec, and a positive quantity.
func NewDeliverOrderCommand(
	orderID kernel.UUID,
	delivererID kernel.UUID,
	offeredItem order.ItemSpec,
	offeredQuantity int,
) (DeliverOrderCommand, error) {
	deliverCommand := DeliverOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		deliverCommand.setOrderID(orderID),
		deliverCommand.setDelivererID(delivererID),
		deliverCommand.setOfferedItem(offeredItem),
		deliverCommand.setOfferedQuantity(offeredQuantity),
	); err != nil {
		return DeliverOrderCommand{}, err
	}

	return deliverCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDeliverOrderCommandIsNotConstructed if validation fails.
func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being delivered against.
func (c DeliverOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DelivererID returns the participant fulfilling the order.
func (c DeliverOrderCommand) DelivererID() kernel.UUID {
	return c.delivererID
}

// OfferedItem returns the specification of the item being handed over.
func (c DeliverOrderCommand) OfferedItem() order.ItemSpec {
	return c.offeredItem
}

// OfferedQuantity returns the units the deliverer offers.
func (c DeliverOrderCommand) OfferedQuantity() int {
	return c.offeredQuantity
}

func (c *DeliverOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *DeliverOrderCommand) setDelivererID(delivererID kernel.UUID) error {
	if err := delivererID.Validate(); err != nil {
		return err
	}

	c.delivererID = delivererID
	return nil
}

func (c *DeliverOrderCommand) setOfferedItem(offeredItem order.ItemSpec) error {
	if err := offeredItem.Validate(); err != nil {
		return err
	}

	c.offeredItem = offeredItem
	return nil
}

func (c *DeliverOrderCommand) setOfferedQuantity(offeredQuantity int) error {
	if offeredQuantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"offeredQuantity is invalid",
			fmt.Errorf("%d is not greater than 0", offeredQuantity),
		)
	}

	c.offeredQuantity = offeredQuantity
	return nil
}
