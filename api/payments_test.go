package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mkrivosheev/aeroreserve/internal/domain"
	"github.com/mkrivosheev/aeroreserve/internal/service/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPaymentUseCase struct {
	mock.Mock
}

func (m *MockPaymentUseCase) Store(ctx context.Context, input payment.StorePaymentInput) (*domain.Payment, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentUseCase) ListByBooking(ctx context.Context, bookingNumber int64) ([]domain.Payment, error) {
	args := m.Called(ctx, bookingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func newPaymentRouter(service payment.PaymentUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewPaymentHandler(service).Register(router.Group("/"))
	return router
}

func TestPaymentHandler_Store_Success(t *testing.T) {
	service := new(MockPaymentUseCase)
	router := newPaymentRouter(service)

	service.On("Store", mock.Anything, mock.MatchedBy(func(in payment.StorePaymentInput) bool {
		return in.BookingNumber == 42 && in.CardNumber == "4242424242424242"
	})).Return(&domain.Payment{
		ID:            "p1",
		BookingNumber: 42,
		CardNumber:    "4242424242424242",
		CVV:           "123",
		Amount:        200,
		Status:        domain.PaymentRecordCompleted,
	}, nil)

	body, _ := json.Marshal(gin.H{
		"booking_number": 42,
		"card_type":      "visa",
		"card_number":    "4242424242424242",
		"card_expiry":    "12/27",
		"cvv":            "123",
		"name_on_card":   "IVAN PETROV",
	})
	req := httptest.NewRequest(http.MethodPost, "/storepayment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(200), resp["amount"])
	assert.NotContains(t, resp, "card_number")
	assert.NotContains(t, resp, "cvv")
}

func TestPaymentHandler_Store_BookingNotFound(t *testing.T) {
	service := new(MockPaymentUseCase)
	router := newPaymentRouter(service)

	service.On("Store", mock.Anything, mock.Anything).Return(nil, domain.ErrBookingNotFound)

	body, _ := json.Marshal(gin.H{
		"booking_number": 999,
		"card_type":      "visa",
		"card_number":    "4242424242424242",
		"card_expiry":    "12/27",
		"cvv":            "123",
		"name_on_card":   "IVAN PETROV",
	})
	req := httptest.NewRequest(http.MethodPost, "/storepayment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentHandler_Store_InvalidCard(t *testing.T) {
	service := new(MockPaymentUseCase)
	router := newPaymentRouter(service)

	service.On("Store", mock.Anything, mock.Anything).Return(nil, domain.ErrValidation)

	body, _ := json.Marshal(gin.H{
		"booking_number": 42,
		"card_number":    "1234",
	})
	req := httptest.NewRequest(http.MethodPost, "/storepayment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
