package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// BookingEvent is published on every booking lifecycle change.
type BookingEvent struct {
	Type          string    `json:"type"`
	BookingNumber int64     `json:"booking_number"`
	FlightNumber  int64     `json:"flight_number"`
	UserID        int64     `json:"user_id"`
	SeatNumber    string    `json:"seat_number"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// RefundEvent is published when a refund decision lands.
type RefundEvent struct {
	Type          string `json:"type"`
	RefundID      string `json:"refund_id"`
	BookingNumber int64  `json:"booking_number"`
	UserID        int64  `json:"user_id"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write message to %s: %w", topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
