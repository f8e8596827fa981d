package api

import (
	"net/http"

	"innkeeper/internal/domain/room"
	reqdto "innkeeper/internal/handler/dto/request"
	resdto "innkeeper/internal/handler/dto/response"
	"innkeeper/internal/handler/httperr"
	"innkeeper/internal/usecase/commands"
	"innkeeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	catalog commands.RoomCatalog
	avail   queries.AvailabilityQueries
}

func NewRoomHandler(catalog commands.RoomCatalog, avail queries.AvailabilityQueries) *RoomHandler {
	return &RoomHandler{catalog: catalog, avail: avail}
}

// @Summary Register room
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRoomRequest true "Room"
// @Success 201 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Router /rooms [post]
func (h *RoomHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err, "Invalid request")
		return
	}
	rm, err := h.catalog.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/rooms/"+rm.ID().String())
	c.JSON(http.StatusCreated, resdto.FromRoomView(queries.NewRoomView(rm)))
}

// @Summary List rooms
// @Tags rooms
// @Produce json
// @Success 200 {array} resdto.RoomResponse
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.catalog.List(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp := make([]*resdto.RoomResponse, len(rooms))
	for i, rm := range rooms {
		resp[i] = resdto.FromRoomView(queries.NewRoomView(rm))
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get room
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 404 {object} httperr.Response
// @Router /rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rm, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomView(queries.NewRoomView(rm)))
}

// @Summary Update room status
// @Description Operational flag only; availability never reads it.
// @Tags rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body reqdto.UpdateRoomStatusRequest true "Status"
// @Success 200 {object} resdto.RoomResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rooms/{id}/status [patch]
func (h *RoomHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err, "Invalid request")
		return
	}
	rm, err := h.catalog.UpdateStatus(c.Request.Context(), id, room.Status(req.Status))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomView(queries.NewRoomView(rm)))
}

// @Summary List room claims
// @Description Holds and confirmed stays currently blocking the room
// @Tags availability
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {array} resdto.ClaimResponse
// @Failure 404 {object} httperr.Response
// @Router /rooms/{id}/claims [get]
func (h *RoomHandler) Claims(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	claims, err := h.avail.Claims(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromClaimViews(claims))
}

// @Summary Check availability
// @Description True when no hold or confirmed stay overlaps [checkIn, checkOut)
// @Tags availability
// @Produce json
// @Param roomId query string true "Room ID"
// @Param checkIn query string true "YYYY-MM-DD"
// @Param checkOut query string true "YYYY-MM-DD"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /availability [get]
func (h *RoomHandler) Availability(c *gin.Context) {
	var req reqdto.AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.Validation(c, err, "Invalid request")
		return
	}
	roomID, stay, err := req.Parse()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.avail.IsAvailable(c.Request.Context(), roomID, stay)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
