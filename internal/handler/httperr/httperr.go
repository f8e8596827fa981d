package httperr

import (
	"errors"
	"net/http"
	"time"

	"innkeeper/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

type ConflictDetail struct {
	ReservationID uuid.UUID `json:"reservationId"`
	CheckIn       string    `json:"checkIn"`
	CheckOut      string    `json:"checkOut"`
}

type BalanceDetail struct {
	AmountDue int64 `json:"amountDue"`
}

type ValidationDetail struct {
	Reason string `json:"reason"`
}

var statusByKind = map[string]int{
	errs.ErrNotFound.Error():             http.StatusNotFound,
	errs.ErrAvailabilityConflict.Error(): http.StatusConflict,
	errs.ErrIdempotencyConflict.Error():  http.StatusConflict,
	errs.ErrInvalidTransition.Error():    http.StatusConflict,
	errs.ErrReservationClosed.Error():    http.StatusConflict,
	errs.ErrCapacityExceeded.Error():     http.StatusUnprocessableEntity,
	errs.ErrInvalidRange.Error():         http.StatusBadRequest,
	errs.ErrValidation.Error():           http.StatusBadRequest,
	errs.ErrBalanceNotSettled.Error():    http.StatusPaymentRequired,
}

func StatusOf(kind string) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, kind, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Kind = kind
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort maps a use-case error onto its status code, kind and detail.
// Internal failures never leak their message.
func Abort(c *gin.Context, err error) {
	kind := errs.KindOf(err)
	status := StatusOf(kind)
	if status == http.StatusInternalServerError {
		AbortWithError(c, status, err, errs.KindInternal, "Internal server error", nil)
		return
	}
	AbortWithError(c, status, err, kind, err.Error(), detailOf(err))
}

// Validation aborts with 400 for malformed input caught before the use case.
func Validation(c *gin.Context, err error, msg string) {
	AbortWithError(c, http.StatusBadRequest, err, errs.ErrValidation.Error(), msg, ValidationDetail{Reason: err.Error()})
}

func detailOf(err error) any {
	var conflict *errs.ConflictError
	if errors.As(err, &conflict) {
		return ConflictDetail{
			ReservationID: conflict.ReservationID,
			CheckIn:       conflict.CheckIn.Format(time.DateOnly),
			CheckOut:      conflict.CheckOut.Format(time.DateOnly),
		}
	}
	var balance *errs.BalanceError
	if errors.As(err, &balance) {
		return BalanceDetail{AmountDue: balance.AmountDue}
	}
	return nil
}
