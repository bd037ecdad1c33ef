package services

import (
	"context"
	"fmt"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/pkg/errs"
)

// MaxActiveOrdersPolicy is the default creation-quota policy: a participant may
// hold at most a fixed number of pending orders at once. Richer deployments can
// substitute their own implementation of ports.CreationPolicy (permission tiers,
// reputation, rate limits); the lifecycle engine only consumes the yes/no answer.
//
// Example:
//
//	policy, _ := services.NewMaxActiveOrdersPolicy(10)
//	allowed, _ := policy.CanCreateOrder(ctx, participantID, activeCount)
//	if !allowed {
//	    // reject with quota error
//	}
type MaxActiveOrdersPolicy struct {
	maxActiveOrders int
}

// NewMaxActiveOrdersPolicy creates the policy with the given cap.
// The cap must be positive.
func NewMaxActiveOrdersPolicy(maxActiveOrders int) (MaxActiveOrdersPolicy, error) {
	if maxActiveOrders <= 0 {
		return MaxActiveOrdersPolicy{}, errs.NewValueIsInvalidErrorWithCause(
			"maxActiveOrders is invalid",
			fmt.Errorf("%d is not greater than 0", maxActiveOrders),
		)
	}
	return MaxActiveOrdersPolicy{maxActiveOrders: maxActiveOrders}, nil
}

// CanCreateOrder reports whether the participant may post another order given
// their current number of pending orders.
func (p MaxActiveOrdersPolicy) CanCreateOrder(_ context.Context, _ kernel.UUID, currentActiveCount int) (bool, error) {
	return currentActiveCount < p.maxActiveOrders, nil
}
