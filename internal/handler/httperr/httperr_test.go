//go:build unit

package httperr_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"innkeeper/internal/handler/httperr"
	"innkeeper/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abort(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	httperr.Abort(c, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestStatusOf(t *testing.T) {
	cases := map[error]int{
		errs.ErrNotFound:             http.StatusNotFound,
		errs.ErrAvailabilityConflict: http.StatusConflict,
		errs.ErrIdempotencyConflict:  http.StatusConflict,
		errs.ErrInvalidTransition:    http.StatusConflict,
		errs.ErrReservationClosed:    http.StatusConflict,
		errs.ErrCapacityExceeded:     http.StatusUnprocessableEntity,
		errs.ErrInvalidRange:         http.StatusBadRequest,
		errs.ErrValidation:           http.StatusBadRequest,
		errs.ErrBalanceNotSettled:    http.StatusPaymentRequired,
	}
	for kind, status := range cases {
		assert.Equal(t, status, httperr.StatusOf(kind.Error()), kind.Error())
	}
	assert.Equal(t, http.StatusInternalServerError, httperr.StatusOf("Whatever"))
}

func TestAbort(t *testing.T) {
	t.Run("conflict carries the blocking stay", func(t *testing.T) {
		blocking := uuid.New()
		err := errs.Wrap(&errs.ConflictError{
			RoomID:        uuid.New(),
			ReservationID: blocking,
			CheckIn:       time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC),
			CheckOut:      time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC),
		}, "create reservation")

		rec, body := abort(t, err)
		assert.Equal(t, http.StatusConflict, rec.Code)
		detail := body["detail"].(map[string]any)
		assert.Equal(t, blocking.String(), detail["reservationId"])
		assert.Equal(t, "2025-11-12", detail["checkIn"])
		assert.Equal(t, "2025-11-14", detail["checkOut"])
	})

	t.Run("balance carries the amount due", func(t *testing.T) {
		rec, body := abort(t, &errs.BalanceError{ReservationID: uuid.New(), AmountDue: 4200})
		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		assert.EqualValues(t, 4200, body["detail"].(map[string]any)["amountDue"])
	})

	t.Run("plain kinds omit detail", func(t *testing.T) {
		rec, body := abort(t, errs.Wrap(errs.ErrNotFound, "reservation"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NotContains(t, body, "detail")
		assert.Equal(t, "NotFound", body["error"].(map[string]any)["kind"])
	})

	t.Run("internal failures hide their message", func(t *testing.T) {
		for _, err := range []error{
			errors.New("pq: connection refused"),
			errs.AssertionFailed("claim for %s vanished", uuid.New()),
		} {
			rec, body := abort(t, err)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			e := body["error"].(map[string]any)
			assert.Equal(t, errs.KindInternal, e["kind"])
			assert.Equal(t, "Internal server error", e["message"])
		}
	})
}

func TestValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	httperr.Validation(c, errors.New("quantity: min"), "Invalid request")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body httperr.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Validation", body.Error.Kind)
	assert.Equal(t, "Invalid request", body.Error.Message)
	require.Len(t, c.Errors, 1)
}
