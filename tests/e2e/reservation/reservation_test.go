//go:build e2e

package reservation_test

import (
	"net/http"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	"innkeeper/internal/domain/reservation"
	reqdto "innkeeper/internal/handler/dto/request"
	resdto "innkeeper/internal/handler/dto/response"
	"innkeeper/tests/common/dbtest"
	"innkeeper/tests/common/httptest"
	"innkeeper/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ReservationE2ESuite struct {
	e2e.SharedSuite
}

func TestReservationE2E(t *testing.T) {
	suite.Run(t, new(ReservationE2ESuite))
}

// stay starts today in the property zone so check-in is open right away.
func stayFromToday(nights int) (string, string) {
	today := time.Now().UTC()
	return today.Format(time.DateOnly), today.AddDate(0, 0, nights).Format(time.DateOnly)
}

func (s *ReservationE2ESuite) registerSuite(number string) resdto.RoomResponse {
	rate := int64(150000)
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/rooms", reqdto.RegisterRoomRequest{
		Number:   number,
		Type:     "SUITE",
		Rate:     &rate,
		Capacity: 2,
	})
	var rm resdto.RoomResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &rm)
	return rm
}

func (s *ReservationE2ESuite) book(roomID uuid.UUID, checkIn, checkOut string, guests int, headers map[string]string) *nethttptest.ResponseRecorder {
	return httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/reservations", reqdto.CreateReservationRequest{
		RoomID:   roomID,
		GuestID:  uuid.New(),
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   guests,
	}, headers)
}

func (s *ReservationE2ESuite) TestStayLifecycle() {
	s.Run("book, stay, settle and check out", func() {
		rm := s.registerSuite("201")
		checkIn, checkOut := stayFromToday(2)

		rec := s.book(rm.ID, checkIn, checkOut, 2, nil)
		var res resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)
		s.Equal("PENDING", res.State)
		s.Equal(int64(300000), res.BaseTotal)
		s.Equal("/api/reservations/"+res.ID.String(), rec.Header().Get("Location"))

		base := "/api/reservations/" + res.ID.String()
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, base+"/confirm", nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("CONFIRMED", res.State)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, base+"/check-in", nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("CHECKED_IN", res.State)

		price := int64(25000)
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, base+"/consumptions", reqdto.AddConsumptionRequest{
			Description: "massage",
			Category:    "spa",
			Quantity:    1,
			UnitPrice:   &price,
		})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, base+"/folio", nil)
		var f resdto.FolioResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &f)
		s.Equal(int64(325000), f.Total)
		s.Equal(int64(325000), f.BalanceDue)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, base+"/check-out", nil)
		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusPaymentRequired, "BalanceNotSettled")
		s.EqualValues(325000, body.Detail["amountDue"])

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, base+"/payments", reqdto.PaymentRequest{
			Amount: 325000,
			Method: "card",
		})
		var settled resdto.SettleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &settled)
		s.True(settled.Folio.Paid)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, base+"/check-out", nil)
		var out resdto.CheckOutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &out)
		s.Equal("CHECKED_OUT", out.Reservation.State)
		s.True(out.Reservation.Paid)

		state, _ := dbtest.ReservationState(s.T(), s.DB, res.ID)
		s.Equal(reservation.StateCheckedOut, state)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			"/api/availability?roomId="+rm.ID.String()+"&checkIn="+checkIn+"&checkOut="+checkOut, nil)
		var avail resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &avail)
		s.True(avail.Available)
	})
}

func (s *ReservationE2ESuite) TestBookingGuards() {
	s.Run("overlap is rejected with the blocking reservation", func() {
		rm := s.registerSuite("301")

		rec := s.book(rm.ID, "2031-03-10", "2031-03-12", 2, nil)
		var first resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &first)

		rec = s.book(rm.ID, "2031-03-11", "2031-03-13", 1, nil)
		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "AvailabilityConflict")
		s.Equal(first.ID.String(), body.Detail["reservationId"])

		rec = s.book(rm.ID, "2031-03-12", "2031-03-13", 1, nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("capacity is checked before claiming", func() {
		rm := s.registerSuite("302")

		rec := s.book(rm.ID, "2031-04-01", "2031-04-02", 3, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "CapacityExceeded")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/rooms/"+rm.ID.String()+"/claims", nil)
		var claims []resdto.ClaimResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &claims)
		s.Empty(claims)
	})

	s.Run("idempotent replay returns the original reservation", func() {
		rm := s.registerSuite("303")
		headers := map[string]string{"Idempotency-Key": uuid.NewString()}
		req := reqdto.CreateReservationRequest{
			RoomID:   rm.ID,
			GuestID:  uuid.New(),
			CheckIn:  "2031-05-01",
			CheckOut: "2031-05-03",
			Guests:   2,
		}

		rec := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/reservations", req, headers)
		var first resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &first)

		rec = httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/reservations", req, headers)
		var replay resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &replay)
		s.Equal("true", rec.Header().Get("Idempotent-Replayed"))
		s.Equal(first.ID, replay.ID)

		req.Guests = 1
		rec = httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/reservations", req, headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "IdempotencyConflict")
	})

	s.Run("cancel is idempotent and frees the range", func() {
		rm := s.registerSuite("304")

		rec := s.book(rm.ID, "2031-06-01", "2031-06-03", 2, nil)
		var res resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &res)

		for range 2 {
			rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations/"+res.ID.String()+"/cancel", nil)
			var cancelled resdto.ReservationResponse
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &cancelled)
			s.Equal("CANCELLED", cancelled.State)
		}
		_, version := dbtest.ReservationState(s.T(), s.DB, res.ID)
		s.Equal(int64(2), version)

		rec = s.book(rm.ID, "2031-06-01", "2031-06-03", 2, nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("unknown reservation", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reservations/"+uuid.NewString(), nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "NotFound")
	})
}
