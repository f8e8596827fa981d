package queries

import (
	"time"

	"innkeeper/internal/domain/folio"
	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/domain/room"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID           uuid.UUID `json:"id"`
	RoomID       uuid.UUID `json:"room_id"`
	GuestID      uuid.UUID `json:"guest_id"`
	CheckIn      string    `json:"check_in"`
	CheckOut     string    `json:"check_out"`
	Nights       int       `json:"nights"`
	Guests       int       `json:"guests"`
	BaseTotal    int64     `json:"base_total"`
	Paid         bool      `json:"paid"`
	State        string    `json:"state"`
	CancelReason *string   `json:"cancel_reason,omitempty"`
	Note         *string   `json:"note,omitempty"`
	Version      int64     `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewReservationView(res *reservation.Reservation) *ReservationView {
	v := &ReservationView{
		ID:        res.ID(),
		RoomID:    res.RoomID(),
		GuestID:   res.GuestID(),
		CheckIn:   res.Stay().CheckIn().Format(time.DateOnly),
		CheckOut:  res.Stay().CheckOut().Format(time.DateOnly),
		Nights:    res.Nights(),
		Guests:    res.Guests(),
		BaseTotal: res.BaseTotal().Minor(),
		Paid:      res.Paid(),
		State:     res.State().String(),
		Version:   res.Version(),
		CreatedAt: res.CreatedAt(),
		UpdatedAt: res.UpdatedAt(),
	}
	if reason := res.CancelReason(); reason != "" {
		s := string(reason)
		v.CancelReason = &s
	}
	if !res.Note().IsEmpty() {
		s := res.Note().String()
		v.Note = &s
	}
	return v
}

type RoomView struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"number"`
	Type      string    `json:"type"`
	Rate      int64     `json:"rate"`
	Capacity  int       `json:"capacity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewRoomView(rm *room.Room) *RoomView {
	return &RoomView{
		ID:        rm.ID(),
		Number:    rm.Number(),
		Type:      rm.Type().String(),
		Rate:      rm.Rate().Minor(),
		Capacity:  rm.Capacity(),
		Status:    rm.Status().String(),
		CreatedAt: rm.CreatedAt(),
		UpdatedAt: rm.UpdatedAt(),
	}
}

type ConsumptionView struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unit_price"`
	LineTotal   int64     `json:"line_total"`
	CreatedAt   time.Time `json:"created_at"`
}

type ExtraChargeView struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Reason      *string   `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type PaymentView struct {
	ID        uuid.UUID `json:"id"`
	Amount    int64     `json:"amount"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type FolioView struct {
	ReservationID     uuid.UUID         `json:"reservation_id"`
	BaseTotal         int64             `json:"base_total"`
	Consumptions      []ConsumptionView `json:"consumptions"`
	ExtraCharges      []ExtraChargeView `json:"extra_charges"`
	Payments          []PaymentView     `json:"payments"`
	ConsumptionsTotal int64             `json:"consumptions_total"`
	ExtraChargesTotal int64             `json:"extra_charges_total"`
	Tip               int64             `json:"tip"`
	Total             int64             `json:"total"`
	AmountPaid        int64             `json:"amount_paid"`
	Paid              bool              `json:"paid"`
	BalanceDue        int64             `json:"balance_due"`
	Warnings          []string          `json:"warnings,omitempty"`
}

func NewFolioView(f folio.Folio) *FolioView {
	v := &FolioView{
		ReservationID:     f.ReservationID,
		BaseTotal:         f.BaseTotal.Minor(),
		Consumptions:      make([]ConsumptionView, 0, len(f.Consumptions)),
		ExtraCharges:      make([]ExtraChargeView, 0, len(f.ExtraCharges)),
		Payments:          make([]PaymentView, 0, len(f.Payments)),
		ConsumptionsTotal: f.ConsumptionsTotal.Minor(),
		ExtraChargesTotal: f.ExtraChargesTotal.Minor(),
		Tip:               f.Tip.Minor(),
		Total:             f.Total.Minor(),
		AmountPaid:        f.AmountPaid.Minor(),
		Paid:              f.Paid(),
		BalanceDue:        f.BalanceDue.Minor(),
	}
	for _, c := range f.Consumptions {
		v.Consumptions = append(v.Consumptions, NewConsumptionView(c))
	}
	for _, c := range f.ExtraCharges {
		v.ExtraCharges = append(v.ExtraCharges, NewExtraChargeView(c))
	}
	for _, p := range f.Payments {
		v.Payments = append(v.Payments, NewPaymentView(p))
	}
	for _, w := range f.Warnings {
		v.Warnings = append(v.Warnings, string(w))
	}
	return v
}

func NewConsumptionView(c *folio.Consumption) ConsumptionView {
	// line totals were validated when the consumption was recorded
	lt, _ := c.LineTotal()
	return ConsumptionView{
		ID:          c.ID,
		Description: c.Description,
		Category:    string(c.Category),
		Quantity:    c.Quantity,
		UnitPrice:   c.UnitPrice.Minor(),
		LineTotal:   lt.Minor(),
		CreatedAt:   c.CreatedAt,
	}
}

func NewExtraChargeView(c *folio.ExtraCharge) ExtraChargeView {
	v := ExtraChargeView{
		ID:          c.ID,
		Description: c.Description,
		Amount:      c.Amount.Minor(),
		CreatedAt:   c.CreatedAt,
	}
	if c.Reason != "" {
		reason := c.Reason
		v.Reason = &reason
	}
	return v
}

func NewPaymentView(p *folio.Payment) PaymentView {
	return PaymentView{
		ID:        p.ID,
		Amount:    p.Amount.Minor(),
		Method:    string(p.Method),
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

type AvailabilityView struct {
	RoomID    uuid.UUID `json:"room_id"`
	CheckIn   string    `json:"check_in"`
	CheckOut  string    `json:"check_out"`
	Available bool      `json:"available"`
}

type ClaimView struct {
	ReservationID uuid.UUID  `json:"reservation_id"`
	CheckIn       string     `json:"check_in"`
	CheckOut      string     `json:"check_out"`
	Kind          string     `json:"kind"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}
