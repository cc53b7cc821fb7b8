package payment

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mkrivosheev/aeroreserve/internal/domain"
	"github.com/mkrivosheev/aeroreserve/internal/repository"
)

type PaymentUseCase interface {
	Store(ctx context.Context, input StorePaymentInput) (*domain.Payment, error)
	ListByBooking(ctx context.Context, bookingNumber int64) ([]domain.Payment, error)
}

type StorePaymentInput struct {
	BookingNumber int64  `json:"booking_number" validate:"required,gt=0"`
	CardType      string `json:"card_type" validate:"required"`
	CardNumber    string `json:"card_number" validate:"required,credit_card"`
	CardExpiry    string `json:"card_expiry" validate:"required"`
	CVV           string `json:"cvv" validate:"required,len=3"`
	NameOnCard    string `json:"name_on_card" validate:"required"`
}

// BookingReader is the lookup slice of the booking repository the capture
// path needs.
type BookingReader interface {
	GetByNumber(ctx context.Context, bookingNumber int64) (*domain.Booking, error)
}

type PaymentService struct {
	payments repository.PaymentRepository
	bookings BookingReader
	validate *validator.Validate
}

func NewPaymentService(payments repository.PaymentRepository, bookings BookingReader) *PaymentService {
	return &PaymentService{
		payments: payments,
		bookings: bookings,
		validate: validator.New(),
	}
}

// Store captures a payment for an existing booking. The amount always comes
// from the booking's flight snapshot, never from the request, so a tampered
// client cannot pay less than the booked fare.
func (s *PaymentService) Store(ctx context.Context, input StorePaymentInput) (*domain.Payment, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: payment details: %v", domain.ErrValidation, err)
	}

	booking, err := s.bookings.GetByNumber(ctx, input.BookingNumber)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ID:            uuid.NewString(),
		UserID:        booking.UserID,
		BookingNumber: booking.BookingNumber,
		CardType:      input.CardType,
		CardNumber:    input.CardNumber,
		CardExpiry:    input.CardExpiry,
		CVV:           input.CVV,
		NameOnCard:    input.NameOnCard,
		Amount:        booking.FlightDetails.Price,
		Status:        domain.PaymentRecordCompleted,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) ListByBooking(ctx context.Context, bookingNumber int64) ([]domain.Payment, error) {
	return s.payments.ListByBooking(ctx, bookingNumber)
}

var _ PaymentUseCase = (*PaymentService)(nil)
