package refund

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/mkrivosheev/aeroreserve/internal/domain"
	"github.com/mkrivosheev/aeroreserve/internal/kafka"
	"github.com/mkrivosheev/aeroreserve/internal/repository"
)

type RefundUseCase interface {
	Request(ctx context.Context, input RequestRefundInput) (*domain.Refund, error)
	Decide(ctx context.Context, refundID string, status domain.RefundStatus) (*domain.Refund, error)
	Get(ctx context.Context, refundID string) (*domain.Refund, error)
	List(ctx context.Context) ([]domain.Refund, error)
	Delete(ctx context.Context, refundID string) error
}

// BookingGateway is the slice of the booking service the refund cascade
// needs: cancel (which releases the seat) and the payment-status flip.
type BookingGateway interface {
	Cancel(ctx context.Context, bookingNumber int64) (*domain.Booking, error)
	MarkRefunded(ctx context.Context, bookingNumber int64) (*domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type RequestRefundInput struct {
	UserID         int64  `json:"user_id"`
	BookingNumber  int64  `json:"booking_number"`
	RefundedAmount int64  `json:"refunded_amount"`
	RefundMethod   string `json:"refund_method"`
	Reason         string `json:"reason"`
	Comment        string `json:"comment"`
}

type RefundService struct {
	refunds     repository.RefundRepository
	bookings    BookingGateway
	producer    Producer
	refundTopic string
}

type RefundServiceOption func(*RefundService)

func WithProducer(producer Producer, topic string) RefundServiceOption {
	return func(s *RefundService) {
		s.producer = producer
		s.refundTopic = topic
	}
}

func NewRefundService(refunds repository.RefundRepository, bookings BookingGateway, opts ...RefundServiceOption) *RefundService {
	service := &RefundService{
		refunds:  refunds,
		bookings: bookings,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Request records a refund in Pending. Nothing is touched on the booking or
// its flight until an administrator decides the refund.
func (s *RefundService) Request(ctx context.Context, input RequestRefundInput) (*domain.Refund, error) {
	if input.UserID <= 0 {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	if input.BookingNumber <= 0 {
		return nil, fmt.Errorf("%w: booking number is required", domain.ErrValidation)
	}

	refund := &domain.Refund{
		ID:             uuid.NewString(),
		UserID:         input.UserID,
		BookingNumber:  input.BookingNumber,
		RefundedAmount: input.RefundedAmount,
		RefundMethod:   input.RefundMethod,
		Reason:         input.Reason,
		Comment:        input.Comment,
		Status:         domain.RefundStatusPending,
	}
	if err := s.refunds.Create(ctx, refund); err != nil {
		return nil, err
	}
	return refund, nil
}

// Decide applies an administrative decision. Moving into Processed cascades:
// the booking is cancelled (releasing its seat) and its payment marked
// refunded. The cascade runs before the status flip, so a failed cascade
// leaves the refund in its prior state and the decision can be retried; a
// refund only becomes Processed once the booking side has been applied. A
// refund that is already Processed stays terminal.
func (s *RefundService) Decide(ctx context.Context, refundID string, status domain.RefundStatus) (*domain.Refund, error) {
	if !domain.ValidRefundStatus(status) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRefundStatus, status)
	}

	if status == domain.RefundStatusProcessed {
		current, err := s.refunds.GetByID(ctx, refundID)
		if err != nil {
			return nil, err
		}
		if current.Status == domain.RefundStatusProcessed {
			return nil, domain.ErrInvalidTransition
		}
		if err := s.cascade(ctx, current); err != nil {
			return nil, err
		}
	}

	updated, err := s.refunds.UpdateStatus(ctx, refundID, status)
	if err != nil {
		return nil, err
	}

	if status == domain.RefundStatusProcessed {
		s.publishRefund(ctx, "refund_processed", updated)
	}
	return updated, nil
}

// cascade cancels the refunded booking and flips its payment status. A
// booking cancelled out-of-band loses the cancel guard; that is fine, its
// seat is already back in inventory, so only the refunded flag remains.
func (s *RefundService) cascade(ctx context.Context, refund *domain.Refund) error {
	_, err := s.bookings.Cancel(ctx, refund.BookingNumber)
	if err != nil && !errors.Is(err, domain.ErrInvalidTransition) {
		return fmt.Errorf("cancel booking %d for refund %s: %w", refund.BookingNumber, refund.ID, err)
	}

	if _, err := s.bookings.MarkRefunded(ctx, refund.BookingNumber); err != nil && !errors.Is(err, domain.ErrInvalidTransition) {
		return fmt.Errorf("mark booking %d refunded: %w", refund.BookingNumber, err)
	}
	return nil
}

func (s *RefundService) Get(ctx context.Context, refundID string) (*domain.Refund, error) {
	return s.refunds.GetByID(ctx, refundID)
}

func (s *RefundService) List(ctx context.Context) ([]domain.Refund, error) {
	return s.refunds.List(ctx)
}

func (s *RefundService) Delete(ctx context.Context, refundID string) error {
	return s.refunds.Delete(ctx, refundID)
}

func (s *RefundService) publishRefund(ctx context.Context, eventType string, refund *domain.Refund) {
	if s.producer == nil || s.refundTopic == "" {
		return
	}
	event := kafka.RefundEvent{
		Type:          eventType,
		RefundID:      refund.ID,
		BookingNumber: refund.BookingNumber,
		UserID:        refund.UserID,
		Amount:        refund.RefundedAmount,
		Status:        string(refund.Status),
	}
	if err := s.producer.Publish(ctx, s.refundTopic, refund.ID, event); err != nil {
		log.Printf("publish %s for refund %s: %v", eventType, refund.ID, err)
	}
}

var _ RefundUseCase = (*RefundService)(nil)
