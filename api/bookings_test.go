package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkrivosheev/aeroreserve/internal/domain"
	"github.com/mkrivosheev/aeroreserve/internal/service/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Create(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Get(ctx context.Context, bookingNumber int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Confirm(ctx context.Context, bookingNumber int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) UpdateSeat(ctx context.Context, bookingNumber int64, seatNumber string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingNumber, seatNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, bookingNumber int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Purge(ctx context.Context, bookingNumber int64) error {
	args := m.Called(ctx, bookingNumber)
	return args.Error(0)
}

func (m *MockBookingUseCase) MarkRefunded(ctx context.Context, bookingNumber int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ExpirePendingBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func newBookingRouter(service booking.BookingUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewBookingHandler(service).Register(router.Group("/"))
	return router
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:            "b9a6e2e4-1111-4222-8333-444455556666",
		BookingNumber: 7,
		UserID:        1,
		FlightNumber:  100,
		SeatNumber:    "1A",
		FlightDetails: domain.FlightSnapshot{Airline: "AeroJet", Price: 200, FlightClass: domain.FlightClassEconomy},
		Status:        domain.BookingStatusPending,
		FlightStatus:  domain.BookingFlightScheduled,
		PaymentStatus: domain.PaymentStatusPending,
		PaymentAmount: 200,
		ExpiresAt:     time.Now().Add(15 * time.Minute),
	}
}

func TestBookingHandler_Create_Success(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	service.On("Create", mock.Anything, booking.CreateBookingInput{
		UserID:       1,
		FlightNumber: 100,
		SeatNumber:   "1A",
	}).Return(testBooking(), nil)

	body, _ := json.Marshal(gin.H{"user_id": 1, "flight_number": 100, "seat_number": "1A"})
	req := httptest.NewRequest(http.MethodPost, "/bookflight", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp bookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.BookingNumber)
	assert.Equal(t, "pending", resp.BookingStatus)
	assert.Equal(t, int64(200), resp.PaymentAmount)
	service.AssertExpectations(t)
}

func TestBookingHandler_Create_MissingFields(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	body, _ := json.Marshal(gin.H{"user_id": 1})
	req := httptest.NewRequest(http.MethodPost, "/bookflight", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	service.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingHandler_Create_NoSeats(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	service.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrNoSeatsAvailable)

	body, _ := json.Marshal(gin.H{"user_id": 1, "flight_number": 100, "seat_number": "1A"})
	req := httptest.NewRequest(http.MethodPost, "/bookflight", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestBookingHandler_Get_NotFound(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	service.On("Get", mock.Anything, int64(999)).Return(nil, domain.ErrBookingNotFound)

	req := httptest.NewRequest(http.MethodGet, "/bookings/999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingHandler_Get_BadNumber(t *testing.T) {
	router := newBookingRouter(new(MockBookingUseCase))

	req := httptest.NewRequest(http.MethodGet, "/bookings/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingHandler_ListByUser(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	service.On("ListByUser", mock.Anything, int64(1)).Return([]domain.Booking{*testBooking()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/1/bookings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []bookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
}

func TestBookingHandler_Confirm_AlreadyConfirmed(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	service.On("Confirm", mock.Anything, int64(7)).Return(nil, domain.ErrInvalidTransition)

	req := httptest.NewRequest(http.MethodPut, "/bookings/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestBookingHandler_Cancel_Success(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	cancelled := testBooking()
	cancelled.Status = domain.BookingStatusCancelled
	service.On("Cancel", mock.Anything, int64(7)).Return(cancelled, nil)

	req := httptest.NewRequest(http.MethodPut, "/bookings/7/cancel", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp bookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.BookingStatus)
}

func TestBookingHandler_UpdateSeat(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	moved := testBooking()
	moved.SeatNumber = "2B"
	service.On("UpdateSeat", mock.Anything, int64(7), "2B").Return(moved, nil)

	body, _ := json.Marshal(gin.H{"seat_number": "2B"})
	req := httptest.NewRequest(http.MethodPut, "/bookings/7/seat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp bookingResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2B", resp.SeatNumber)
}

func TestBookingHandler_Purge(t *testing.T) {
	service := new(MockBookingUseCase)
	router := newBookingRouter(service)

	service.On("Purge", mock.Anything, int64(7)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/bookings/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	service.AssertExpectations(t)
}
