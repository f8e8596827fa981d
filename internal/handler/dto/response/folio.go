package response

import (
	"time"

	"innkeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ConsumptionResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unitPrice"`
	LineTotal   int64     `json:"lineTotal"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ExtraChargeResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Reason      *string   `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type PaymentResponse struct {
	ID        uuid.UUID `json:"id"`
	Amount    int64     `json:"amount"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type FolioResponse struct {
	ReservationID     uuid.UUID             `json:"reservationId"`
	BaseTotal         int64                 `json:"baseTotal"`
	Consumptions      []ConsumptionResponse `json:"consumptions"`
	ExtraCharges      []ExtraChargeResponse `json:"extraCharges"`
	Payments          []PaymentResponse     `json:"payments"`
	ConsumptionsTotal int64                 `json:"consumptionsTotal"`
	ExtraChargesTotal int64                 `json:"extraChargesTotal"`
	Tip               int64                 `json:"tip"`
	Total             int64                 `json:"total"`
	AmountPaid        int64                 `json:"amountPaid"`
	Paid              bool                  `json:"paid"`
	BalanceDue        int64                 `json:"balanceDue"`
	Warnings          []string              `json:"warnings,omitempty"`
}

func FromFolioView(v *queries.FolioView) *FolioResponse {
	resp := FolioResponse{
		Consumptions: []ConsumptionResponse{},
		ExtraCharges: []ExtraChargeResponse{},
		Payments:     []PaymentResponse{},
	}
	_ = copier.Copy(&resp, v)
	return &resp
}

type SettleResponse struct {
	Payment *PaymentResponse `json:"payment"`
	Folio   *FolioResponse   `json:"folio"`
}

func FromConsumptionView(v queries.ConsumptionView) *ConsumptionResponse {
	var resp ConsumptionResponse
	_ = copier.Copy(&resp, &v)
	return &resp
}

func FromExtraChargeView(v queries.ExtraChargeView) *ExtraChargeResponse {
	var resp ExtraChargeResponse
	_ = copier.Copy(&resp, &v)
	return &resp
}

func FromPaymentView(v queries.PaymentView) *PaymentResponse {
	var resp PaymentResponse
	_ = copier.Copy(&resp, &v)
	return &resp
}
