// Package stats provides the per-participant counters maintained as a side effect
// of order lifecycle transitions: orders created, completed, and delivered, plus
// money spent and earned. The counters are observational read models for display;
// they are never consulted for money safety.
package stats

import (
	"errors"
	"fmt"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/pkg/errs"
)

// ErrParticipantStatsIsNotConstructed is returned when a ParticipantStats instance
// was not created through NewParticipantStats or RestoreParticipantStats.
var ErrParticipantStatsIsNotConstructed = errors.New("ParticipantStats must be created via NewParticipantStats or RestoreParticipantStats constructor")

// ParticipantStats accumulates a participant's running totals. Each lifecycle
// transition applies its deltas through a transition-named method inside the same
// transaction as the order mutation, so the counters never drift independently.
type ParticipantStats struct {
	participantID   kernel.UUID
	ordersCreated   int
	ordersCompleted int
	ordersDelivered int
	totalSpent      float64
	totalEarned     float64

	isConstructed bool
}

// NewParticipantStats creates an empty stats row for a participant.
func NewParticipantStats(participantID kernel.UUID) (*ParticipantStats, error) {
	return RestoreParticipantStats(participantID, 0, 0, 0, 0, 0)
}

// RestoreParticipantStats reconstructs a stats row from persistence.
// Counters and totals must be non-negative.
func RestoreParticipantStats(
	participantID kernel.UUID,
	ordersCreated int,
	ordersCompleted int,
	ordersDelivered int,
	totalSpent float64,
	totalEarned float64,
) (*ParticipantStats, error) {
	if err := participantID.Validate(); err != nil {
		return nil, err
	}
	if ordersCreated < 0 || ordersCompleted < 0 || ordersDelivered < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"stats counters are invalid",
			fmt.Errorf("counters %d/%d/%d must not be negative", ordersCreated, ordersCompleted, ordersDelivered),
		)
	}
	if totalSpent < 0 || totalEarned < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"stats totals are invalid",
			fmt.Errorf("totals %f/%f must not be negative", totalSpent, totalEarned),
		)
	}

	return &ParticipantStats{
		participantID:   participantID,
		ordersCreated:   ordersCreated,
		ordersCompleted: ordersCompleted,
		ordersDelivered: ordersDelivered,
		totalSpent:      totalSpent,
		totalEarned:     totalEarned,
		isConstructed:   true,
	}, nil
}

// Validate ensures the instance was created through a constructor.
func (s *ParticipantStats) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrParticipantStatsIsNotConstructed
	}
	return nil
}

// ParticipantID returns the participant these counters belong to.
func (s *ParticipantStats) ParticipantID() kernel.UUID {
	return s.participantID
}

// OrdersCreated returns the number of orders the participant has posted.
func (s *ParticipantStats) OrdersCreated() int {
	return s.ordersCreated
}

// OrdersCompleted returns the number of the participant's orders that reached
// full delivery.
func (s *ParticipantStats) OrdersCompleted() int {
	return s.ordersCompleted
}

// OrdersDelivered returns the number of deliveries the participant has made
// against other participants' orders.
func (s *ParticipantStats) OrdersDelivered() int {
	return s.ordersDelivered
}

// TotalSpent returns the money withdrawn from the participant for order creation.
func (s *ParticipantStats) TotalSpent() float64 {
	return s.totalSpent
}

// TotalEarned returns the money paid to the participant for deliveries.
func (s *ParticipantStats) TotalEarned() float64 {
	return s.totalEarned
}

// ApplyOrderCreated records a posted order and the total cost withdrawn for it.
func (s *ParticipantStats) ApplyOrderCreated(totalCost float64) {
	s.ordersCreated++
	s.totalSpent += totalCost
}

// ApplyOrderCompleted records that one of the participant's orders reached full
// delivery.
func (s *ParticipantStats) ApplyOrderCompleted() {
	s.ordersCompleted++
}

// ApplyDelivery records a delivery the participant made and the payment received.
func (s *ParticipantStats) ApplyDelivery(payment float64) {
	s.ordersDelivered++
	s.totalEarned += payment
}
