package api

import (
	"net/http"
	"strconv"

	"innkeeper/internal/domain/pricing"
	reqdto "innkeeper/internal/handler/dto/request"
	resdto "innkeeper/internal/handler/dto/response"
	"innkeeper/internal/handler/httperr"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/commands"
	"innkeeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type FolioHandler struct {
	folios commands.FolioService
}

func NewFolioHandler(folios commands.FolioService) *FolioHandler {
	return &FolioHandler{folios: folios}
}

// @Summary Get folio
// @Description Computes the running account. Never writes; tip only previews a different tip.
// @Tags folio
// @Produce json
// @Param id path string true "Reservation ID"
// @Param tip query int false "Tip to preview, minor units"
// @Success 200 {object} resdto.FolioResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/folio [get]
func (h *FolioHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var tip *pricing.Money
	if raw, present := c.GetQuery("tip"); present {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			httperr.Validation(c, errs.Wrapf(errs.ErrValidation, "tip %q", raw), "tip must be a non-negative integer")
			return
		}
		m := pricing.NewMoney(n)
		tip = &m
	}

	f, err := h.folios.ComputeFolio(c.Request.Context(), id, tip)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFolioView(queries.NewFolioView(f)))
}

// @Summary Add consumption
// @Description Append a service consumption (restaurant, minibar, spa, laundry, other)
// @Tags folio
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.AddConsumptionRequest true "Consumption"
// @Success 201 {object} resdto.ConsumptionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/consumptions [post]
func (h *FolioHandler) AddConsumption(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.AddConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err, "Invalid request")
		return
	}
	added, err := h.folios.AddConsumption(c.Request.Context(), req.ToInput(id))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromConsumptionView(queries.NewConsumptionView(added)))
}

// @Summary Void consumption
// @Tags folio
// @Param id path string true "Consumption ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /consumptions/{id} [delete]
func (h *FolioHandler) RemoveConsumption(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.folios.RemoveConsumption(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Add extra charge
// @Description Manual adjustment. Negative amounts are discounts.
// @Tags folio
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.AddExtraChargeRequest true "Extra charge"
// @Success 201 {object} resdto.ExtraChargeResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/extra-charges [post]
func (h *FolioHandler) AddExtraCharge(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.AddExtraChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err, "Invalid request")
		return
	}
	added, err := h.folios.AddExtraCharge(c.Request.Context(), req.ToInput(id))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromExtraChargeView(queries.NewExtraChargeView(added)))
}

// @Summary Record payment
// @Description Records a payment against the folio. Never transitions the reservation.
// @Tags folio
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.PaymentRequest true "Payment"
// @Success 201 {object} resdto.SettleResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/payments [post]
func (h *FolioHandler) Settle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err, "Invalid request")
		return
	}
	result, err := h.folios.Settle(c.Request.Context(), req.ToInput(id))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.SettleResponse{
		Payment: resdto.FromPaymentView(queries.NewPaymentView(result.Payment)),
		Folio:   resdto.FromFolioView(queries.NewFolioView(result.Folio)),
	})
}
