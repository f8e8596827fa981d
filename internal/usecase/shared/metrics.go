package shared

import (
	"innkeeper/internal/domain/reservation"
)

// EngineMetrics receives lifecycle events from the use cases.
type EngineMetrics interface {
	ReservationCreated(roomType string)
	AvailabilityConflict()
	Transition(from, to reservation.State)
	HoldExpired()
	IdempotentReplay()
}

type NopMetrics struct{}

func (NopMetrics) ReservationCreated(string)         {}
func (NopMetrics) AvailabilityConflict()             {}
func (NopMetrics) Transition(_, _ reservation.State) {}
func (NopMetrics) HoldExpired()                      {}
func (NopMetrics) IdempotentReplay()                 {}
