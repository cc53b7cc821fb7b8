package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkrivosheev/aeroreserve/api"
	"github.com/mkrivosheev/aeroreserve/config"
	"github.com/mkrivosheev/aeroreserve/internal/service/booking"
	"github.com/mkrivosheev/aeroreserve/internal/service/flights"
	"github.com/mkrivosheev/aeroreserve/internal/service/payment"
	"github.com/mkrivosheev/aeroreserve/internal/service/refund"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Services struct {
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Refunds  refund.RefundUseCase
	Payments payment.PaymentUseCase
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services) error {
	srv := newServer(cfg, svc)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServer(cfg *config.Config, svc Services) *http.Server {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	root := engine.Group("/")
	api.NewFlightHandler(svc.Flights).Register(root)
	api.NewBookingHandler(svc.Bookings).Register(root)
	api.NewRefundHandler(svc.Refunds).Register(root)
	api.NewPaymentHandler(svc.Payments).Register(root)

	if cfg.HTTP.SwaggerDir != "" {
		engine.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		engine.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/openapi.json"),
		)))
	}

	return &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: engine,
	}
}
