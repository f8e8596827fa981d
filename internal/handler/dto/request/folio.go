package request

import (
	"strings"

	"innkeeper/internal/domain/folio"
	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/pkg/patch"
	"innkeeper/internal/usecase/commands"

	"github.com/google/uuid"
)

type AddConsumptionRequest struct {
	Description string `json:"description" binding:"required,max=200"`
	Category    string `json:"category" binding:"required,oneof=restaurant minibar spa laundry other"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
	UnitPrice   *int64 `json:"unitPrice" binding:"required,min=0"`
}

func (r AddConsumptionRequest) ToInput(reservationID uuid.UUID) commands.AddConsumptionInput {
	return commands.AddConsumptionInput{
		ReservationID: reservationID,
		Description:   strings.TrimSpace(r.Description),
		Category:      folio.Category(r.Category),
		Quantity:      r.Quantity,
		UnitPrice:     pricing.NewMoney(*r.UnitPrice),
	}
}

// Amount may be negative (a courtesy discount) but never zero.
type AddExtraChargeRequest struct {
	Description string  `json:"description" binding:"required,max=200"`
	Amount      int64   `json:"amount" binding:"required"`
	Reason      *string `json:"reason,omitempty" binding:"omitempty,max=500"`
}

func (r AddExtraChargeRequest) ToInput(reservationID uuid.UUID) commands.AddExtraChargeInput {
	return commands.AddExtraChargeInput{
		ReservationID: reservationID,
		Description:   strings.TrimSpace(r.Description),
		Amount:        pricing.NewMoney(r.Amount),
		Reason:        strings.TrimSpace(patch.Coalesce(r.Reason, "")),
	}
}

type PaymentRequest struct {
	Amount int64   `json:"amount" binding:"required,min=1"`
	Method string  `json:"method" binding:"required,oneof=cash card transfer other"`
	Status *string `json:"status,omitempty" binding:"omitempty,oneof=SUCCEEDED PENDING FAILED"`
}

func (r PaymentRequest) ToInput(reservationID uuid.UUID) commands.PaymentInput {
	return commands.PaymentInput{
		ReservationID: reservationID,
		Amount:        pricing.NewMoney(r.Amount),
		Method:        folio.PaymentMethod(r.Method),
		Status:        folio.PaymentStatus(patch.Coalesce(r.Status, "")),
	}
}
