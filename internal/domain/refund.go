package domain

import "time"

type RefundStatus string

// Refund statuses keep the capitalised spelling the admin frontend sends.
const (
	RefundStatusPending   RefundStatus = "Pending"
	RefundStatusProcessed RefundStatus = "Processed"
	RefundStatusFailed    RefundStatus = "Failed"
)

func ValidRefundStatus(s RefundStatus) bool {
	switch s {
	case RefundStatusPending, RefundStatusProcessed, RefundStatusFailed:
		return true
	}
	return false
}

type Refund struct {
	ID             string       `json:"id"`
	UserID         int64        `json:"user_id"`
	BookingNumber  int64        `json:"booking_number"`
	RefundedAmount int64        `json:"refunded_amount"`
	RefundMethod   string       `json:"refund_method"`
	Reason         string       `json:"reason"`
	Comment        string       `json:"comment"`
	Status         RefundStatus `json:"refund_status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
