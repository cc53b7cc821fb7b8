package domain

import "time"

type PaymentRecordStatus string

const (
	PaymentRecordCompleted PaymentRecordStatus = "completed"
	PaymentRecordPending   PaymentRecordStatus = "pending"
	PaymentRecordFailed    PaymentRecordStatus = "failed"
)

// Payment is the record of a captured payment attempt. Rows are never updated
// after insert; corrections go through a Refund.
type Payment struct {
	ID            string
	UserID        int64
	BookingNumber int64
	CardType      string
	CardNumber    string
	CardExpiry    string
	CVV           string
	NameOnCard    string
	Amount        int64
	Status        PaymentRecordStatus
	CreatedAt     time.Time
}
