package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkrivosheev/aeroreserve/config"
	"github.com/mkrivosheev/aeroreserve/internal/bootstrap"
	"github.com/mkrivosheev/aeroreserve/internal/cache"
	"github.com/mkrivosheev/aeroreserve/internal/kafka"
	"github.com/mkrivosheev/aeroreserve/internal/repository"
	"github.com/mkrivosheev/aeroreserve/internal/service/booking"
	"github.com/mkrivosheev/aeroreserve/internal/service/flights"
	"github.com/mkrivosheev/aeroreserve/internal/service/payment"
	"github.com/mkrivosheev/aeroreserve/internal/service/refund"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	sequences := repository.NewSequenceAllocator(pool)
	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	refundRepo := repository.NewRefundRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	flightService := flights.NewFlightService(flightRepo, sequences, redisCache, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		userRepo,
		sequences,
		time.Duration(cfg.Booking.HoldTTLMinutes)*time.Minute,
		booking.WithCache(redisCache),
		booking.WithProducer(producer, cfg.Kafka.BookingTopic),
	)
	refundService := refund.NewRefundService(
		refundRepo,
		bookingService,
		refund.WithProducer(producer, cfg.Kafka.RefundTopic),
	)
	paymentService := payment.NewPaymentService(paymentRepo, bookingRepo)

	services := bootstrap.Services{
		Flights:  flightService,
		Bookings: bookingService,
		Refunds:  refundService,
		Payments: paymentService,
	}
	if err := bootstrap.Run(ctx, cfg, services); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
