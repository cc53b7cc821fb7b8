package payment

import (
	"context"
	"testing"

	"github.com/mkrivosheev/aeroreserve/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByBooking(ctx context.Context, bookingNumber int64) ([]domain.Payment, error) {
	args := m.Called(ctx, bookingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) GetByNumber(ctx context.Context, bookingNumber int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func validInput() StorePaymentInput {
	return StorePaymentInput{
		BookingNumber: 42,
		CardType:      "visa",
		CardNumber:    "4242424242424242",
		CardExpiry:    "12/27",
		CVV:           "123",
		NameOnCard:    "IVAN PETROV",
	}
}

func TestPaymentService_Store_AmountFromSnapshot(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	service := NewPaymentService(payments, bookings)

	bookings.On("GetByNumber", mock.Anything, int64(42)).Return(&domain.Booking{
		BookingNumber: 42,
		UserID:        5,
		FlightDetails: domain.FlightSnapshot{Airline: "AeroJet", Price: 200},
	}, nil)
	payments.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.BookingNumber == 42 &&
			p.UserID == 5 &&
			p.Amount == 200 &&
			p.Status == domain.PaymentRecordCompleted &&
			p.ID != ""
	})).Return(nil)

	payment, err := service.Store(context.Background(), validInput())

	assert.NoError(t, err)
	assert.Equal(t, int64(200), payment.Amount)
	payments.AssertExpectations(t)
	bookings.AssertExpectations(t)
}

func TestPaymentService_Store_BookingNotFound(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	service := NewPaymentService(payments, bookings)

	bookings.On("GetByNumber", mock.Anything, int64(42)).Return(nil, domain.ErrBookingNotFound)

	_, err := service.Store(context.Background(), validInput())

	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentService_Store_ValidationErrors(t *testing.T) {
	service := NewPaymentService(new(MockPaymentRepository), new(MockBookingReader))

	cases := []struct {
		name   string
		mutate func(*StorePaymentInput)
	}{
		{"missing booking number", func(in *StorePaymentInput) { in.BookingNumber = 0 }},
		{"bad card number", func(in *StorePaymentInput) { in.CardNumber = "1234" }},
		{"short cvv", func(in *StorePaymentInput) { in.CVV = "12" }},
		{"missing name", func(in *StorePaymentInput) { in.NameOnCard = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := service.Store(context.Background(), input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestPaymentService_ListByBooking(t *testing.T) {
	payments := new(MockPaymentRepository)
	service := NewPaymentService(payments, new(MockBookingReader))

	payments.On("ListByBooking", mock.Anything, int64(42)).Return([]domain.Payment{
		{ID: "p1", BookingNumber: 42, Amount: 200},
	}, nil)

	list, err := service.ListByBooking(context.Background(), 42)

	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "p1", list[0].ID)
}
