//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/domain/room"
	"innkeeper/internal/handler/api"
	resdto "innkeeper/internal/handler/dto/response"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/commands"
	"innkeeper/internal/usecase/queries"
	"innkeeper/tests/common/builder"
	"innkeeper/tests/common/httptest"
	"innkeeper/tests/common/testutil"
	commandsmock "innkeeper/tests/mock/commands"
	queriesmock "innkeeper/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RoomHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockCatalog *commandsmock.MockRoomCatalog
	mockAvail   *queriesmock.MockAvailabilityQueries
	handler     *api.RoomHandler
}

func (s *RoomHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCatalog = commandsmock.NewMockRoomCatalog(s.mockCtrl)
	s.mockAvail = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewRoomHandler(s.mockCatalog, s.mockAvail)

	s.router.POST("/rooms", s.handler.Register)
	s.router.GET("/rooms", s.handler.List)
	s.router.GET("/rooms/:id", s.handler.Get)
	s.router.PATCH("/rooms/:id/status", s.handler.UpdateStatus)
	s.router.GET("/rooms/:id/claims", s.handler.Claims)
	s.router.GET("/availability", s.handler.Availability)
}

func (s *RoomHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRoomHandlerSuite(t *testing.T) {
	suite.Run(t, new(RoomHandlerTestSuite))
}

func (s *RoomHandlerTestSuite) TestRegister() {
	b := builder.NewRoomBuilder()
	reqBody := b.BuildRegisterRequestDTO()
	rm := b.BuildDomain()

	s.Run("success", func() {
		s.mockCatalog.EXPECT().Register(gomock.Any(), b.BuildInput()).Return(rm, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rooms", reqBody)
		var body resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(rm.ID(), body.ID)
		s.Equal("SUITE", body.Type)
		s.Equal(int64(150000), body.Rate)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/rooms/" + rm.ID().String()})
	})

	s.Run("error: 400 on invalid input", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "unknown type", mutate: testutil.Field("type", "PENTHOUSE")},
			{name: "negative rate", mutate: testutil.Field("rate", -1)},
			{name: "missing rate", mutate: testutil.Field("rate", nil)},
			{name: "zero capacity", mutate: testutil.Field("capacity", 0)},
			{name: "number too long", mutate: testutil.Field("number", "12345678901234567")},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rooms", body)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Validation")
			})
		}
	})

	s.Run("error: duplicate number", func() {
		s.mockCatalog.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrDuplicateRoomNumber).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rooms", reqBody)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Validation")
	})
}

func (s *RoomHandlerTestSuite) TestListAndGet() {
	rooms := []*room.Room{
		builder.NewRoomBuilder().WithNumber("099").BuildDomain(),
		builder.NewRoomBuilder().BuildDomain(),
	}

	s.Run("list", func() {
		s.mockCatalog.EXPECT().List(gomock.Any()).Return(rooms, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms", nil)
		var body []resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 2)
		s.Equal("099", body[0].Number)
	})

	s.Run("get unknown", func() {
		s.mockCatalog.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(nil, errs.Wrap(errs.ErrNotFound, "room")).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms/"+uuid.NewString(), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "NotFound")
	})
}

func (s *RoomHandlerTestSuite) TestUpdateStatus() {
	rm := builder.NewRoomBuilder().BuildDomain()
	url := "/rooms/" + rm.ID().String() + "/status"

	s.Run("success", func() {
		s.mockCatalog.EXPECT().UpdateStatus(gomock.Any(), rm.ID(), room.StatusMaintenance).Return(rm, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "MAINTENANCE"})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "BROKEN"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Validation")
	})
}

func (s *RoomHandlerTestSuite) TestAvailability() {
	roomID := uuid.New()

	s.Run("success", func() {
		stay, err := reservation.ParseStayRange("2025-11-12", "2025-11-14")
		s.Require().NoError(err)
		s.mockAvail.EXPECT().IsAvailable(gomock.Any(), roomID, stay).
			Return(&queries.AvailabilityView{RoomID: roomID, CheckIn: "2025-11-12", CheckOut: "2025-11-14", Available: false}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/availability?roomId="+roomID.String()+"&checkIn=2025-11-12&checkOut=2025-11-14", nil)
		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Available)
		s.Equal(roomID, body.RoomID)
	})

	s.Run("error: bad query", func() {
		testCases := []struct {
			query string
			kind  string
		}{
			{query: "checkIn=2025-11-12&checkOut=2025-11-14", kind: "Validation"},
			{query: "roomId=abc&checkIn=2025-11-12&checkOut=2025-11-14", kind: "Validation"},
			{query: "roomId=" + roomID.String() + "&checkIn=2025-11-14&checkOut=2025-11-12", kind: "InvalidRange"},
		}
		for _, tc := range testCases {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/availability?"+tc.query, nil)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, tc.kind)
		}
	})

	s.Run("claims", func() {
		claims := []queries.ClaimView{{ReservationID: uuid.New(), CheckIn: "2025-11-12", CheckOut: "2025-11-14", Kind: "CONFIRMED"}}
		s.mockAvail.EXPECT().Claims(gomock.Any(), roomID).Return(claims, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms/"+roomID.String()+"/claims", nil)
		var body []resdto.ClaimResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal("CONFIRMED", body[0].Kind)
		s.Nil(body[0].ExpiresAt)
	})
}
