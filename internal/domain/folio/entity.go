package folio

import (
	"strings"
	"time"

	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyDescription   = errs.Wrap(errs.ErrValidation, "description cannot be empty")
	ErrDescriptionTooLong = errs.Wrap(errs.ErrValidation, "description is too long (max 200 characters)")
	ErrInvalidCategory    = errs.Wrap(errs.ErrValidation, "invalid consumption category")
	ErrInvalidQuantity    = errs.Wrap(errs.ErrValidation, "quantity must be greater than zero")
	ErrNegativeUnitPrice  = errs.Wrap(errs.ErrValidation, "unit price cannot be negative")
	ErrZeroCharge         = errs.Wrap(errs.ErrValidation, "extra charge amount cannot be zero")
	ErrInvalidPayment     = errs.Wrap(errs.ErrValidation, "payment amount must be greater than zero")
	ErrInvalidMethod      = errs.Wrap(errs.ErrValidation, "invalid payment method")
	ErrInvalidStatus      = errs.Wrap(errs.ErrValidation, "invalid payment status")
	ErrNegativeTip        = errs.Wrap(errs.ErrValidation, "tip cannot be negative")
)

const MaxDescriptionLength = 200

func validateDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyDescription
	}
	if len([]rune(s)) > MaxDescriptionLength {
		return "", ErrDescriptionTooLong
	}
	return s, nil
}

type Consumption struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	Description   string
	Category      Category
	Quantity      int
	UnitPrice     pricing.Money
	CreatedAt     time.Time
}

func NewConsumption(reservationID uuid.UUID, description string, category Category, quantity int, unitPrice pricing.Money, now time.Time) (*Consumption, error) {
	desc, err := validateDescription(description)
	if err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return nil, ErrNegativeUnitPrice
	}
	return &Consumption{
		ID:            uuid.New(),
		ReservationID: reservationID,
		Description:   desc,
		Category:      category,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CreatedAt:     now,
	}, nil
}

func (c *Consumption) LineTotal() (pricing.Money, error) {
	return pricing.LineTotal(c.Quantity, c.UnitPrice)
}

// ExtraCharge may carry a negative amount for credits and adjustments.
type ExtraCharge struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	Description   string
	Amount        pricing.Money
	Reason        string
	CreatedAt     time.Time
}

func NewExtraCharge(reservationID uuid.UUID, description string, amount pricing.Money, reason string, now time.Time) (*ExtraCharge, error) {
	desc, err := validateDescription(description)
	if err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, ErrZeroCharge
	}
	return &ExtraCharge{
		ID:            uuid.New(),
		ReservationID: reservationID,
		Description:   desc,
		Amount:        amount,
		Reason:        strings.TrimSpace(reason),
		CreatedAt:     now,
	}, nil
}

type Payment struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	Amount        pricing.Money
	Method        PaymentMethod
	Status        PaymentStatus
	CreatedAt     time.Time
}

func NewPayment(reservationID uuid.UUID, amount pricing.Money, method PaymentMethod, status PaymentStatus, now time.Time) (*Payment, error) {
	if amount <= 0 {
		return nil, ErrInvalidPayment
	}
	if !method.IsValid() {
		return nil, ErrInvalidMethod
	}
	if status == "" {
		status = PaymentSucceeded
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Payment{
		ID:            uuid.New(),
		ReservationID: reservationID,
		Amount:        amount,
		Method:        method,
		Status:        status,
		CreatedAt:     now,
	}, nil
}
