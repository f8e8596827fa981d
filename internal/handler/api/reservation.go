package api

import (
	"context"
	"net/http"

	"innkeeper/internal/domain/reservation"
	reqdto "innkeeper/internal/handler/dto/request"
	resdto "innkeeper/internal/handler/dto/response"
	"innkeeper/internal/handler/httperr"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/commands"
	"innkeeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	idempotencyKeyHeader   = "Idempotency-Key"
	idempotentReplayHeader = "Idempotent-Replayed"
	maxIdempotencyKeyLen   = 255
)

var errIdempotencyKeyTooLong = errs.Wrap(errs.ErrValidation, "idempotency key exceeds 255 characters")

type ReservationHandler struct {
	ledger commands.ReservationLedger
	q      queries.ReservationQueries
}

func NewReservationHandler(ledger commands.ReservationLedger, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		ledger: ledger,
		q:      q,
	}
}

// @Summary Create reservation
// @Description Place a PENDING hold on a room for a half-open stay range
// @Tags reservations
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first result for a repeated request"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	key := c.GetHeader(idempotencyKeyHeader)
	if len(key) > maxIdempotencyKeyLen {
		httperr.Validation(c, errIdempotencyKeyTooLong, "Invalid Idempotency-Key")
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err, "Invalid request")
		return
	}
	in, err := req.ToInput(key)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	result, err := h.ledger.CreateReservation(c.Request.Context(), in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	id := result.Reservation.ID()
	c.Header("Location", "/api/reservations/"+id.String())
	if result.IsReplayed {
		c.Header(idempotentReplayHeader, "true")
	}
	c.JSON(http.StatusCreated, resdto.FromReservationView(queries.NewReservationView(result.Reservation)))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Confirm reservation
// @Description PENDING to CONFIRMED. Fails when the hold has expired or the deposit is missing.
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/confirm [post]
func (h *ReservationHandler) Confirm(c *gin.Context) {
	h.transition(c, h.ledger.Confirm)
}

// @Summary Check in
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/check-in [post]
func (h *ReservationHandler) CheckIn(c *gin.Context) {
	h.transition(c, h.ledger.CheckIn)
}

// @Summary Cancel reservation
// @Description Idempotent. Cancelling a CANCELLED reservation returns it unchanged.
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	h.transition(c, h.ledger.Cancel)
}

// @Summary Check out
// @Description Settles the folio and releases the room. Requires a zero balance unless override is set.
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CheckOutRequest false "Checkout options"
// @Success 200 {object} resdto.CheckOutResponse
// @Failure 402 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/check-out [post]
func (h *ReservationHandler) CheckOut(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.CheckOutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.Validation(c, err, "Invalid request")
			return
		}
	}

	result, err := h.ledger.CheckOut(c.Request.Context(), req.ToInput(id))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.CheckOutResponse{
		Reservation: resdto.FromReservationView(queries.NewReservationView(result.Reservation)),
		Folio:       resdto.FromFolioView(queries.NewFolioView(result.Folio)),
	})
}

func (h *ReservationHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := fn(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(queries.NewReservationView(res)))
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Validation(c, err, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}
