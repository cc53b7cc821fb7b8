package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkrivosheev/aeroreserve/internal/domain"
	"github.com/mkrivosheev/aeroreserve/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	UserID       int64  `json:"user_id" binding:"required"`
	FlightNumber int64  `json:"flight_number" binding:"required"`
	SeatNumber   string `json:"seat_number" binding:"required"`
}

type updateSeatRequest struct {
	SeatNumber string `json:"seat_number" binding:"required"`
}

type bookingResponse struct {
	BookingNumber int64                 `json:"booking_number"`
	UserID        int64                 `json:"user_id"`
	FlightNumber  int64                 `json:"flight_number"`
	SeatNumber    string                `json:"seat_number"`
	FlightDetails domain.FlightSnapshot `json:"flight_details"`
	BookingStatus string                `json:"booking_status"`
	FlightStatus  string                `json:"flight_status"`
	PaymentStatus string                `json:"payment_status"`
	PaymentAmount int64                 `json:"payment_amount"`
	ExpiresAt     string                `json:"expires_at"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookflight", h.create)
	router.GET("/bookings/:bookingNumber", h.get)
	router.GET("/users/:userId/bookings", h.listByUser)
	router.PUT("/bookings/:bookingNumber", h.confirm)
	router.PUT("/bookings/:bookingNumber/cancel", h.cancel)
	router.PUT("/bookings/:bookingNumber/seat", h.updateSeat)
	router.DELETE("/bookings/:bookingNumber", h.purge)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateBookingInput{
		UserID:       req.UserID,
		FlightNumber: req.FlightNumber,
		SeatNumber:   req.SeatNumber,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (h *BookingHandler) get(c *gin.Context) {
	number, ok := bookingNumberParam(c)
	if !ok {
		return
	}
	b, err := h.service.Get(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) listByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	bookings, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	responses := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *BookingHandler) confirm(c *gin.Context) {
	number, ok := bookingNumberParam(c)
	if !ok {
		return
	}
	b, err := h.service.Confirm(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	number, ok := bookingNumberParam(c)
	if !ok {
		return
	}
	b, err := h.service.Cancel(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) updateSeat(c *gin.Context) {
	number, ok := bookingNumberParam(c)
	if !ok {
		return
	}
	var req updateSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.service.UpdateSeat(c.Request.Context(), number, req.SeatNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) purge(c *gin.Context) {
	number, ok := bookingNumberParam(c)
	if !ok {
		return
	}
	if err := h.service.Purge(c.Request.Context(), number); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled and removed"})
}

func bookingNumberParam(c *gin.Context) (int64, bool) {
	number, err := strconv.ParseInt(c.Param("bookingNumber"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking number"})
		return 0, false
	}
	return number, true
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		BookingNumber: b.BookingNumber,
		UserID:        b.UserID,
		FlightNumber:  b.FlightNumber,
		SeatNumber:    b.SeatNumber,
		FlightDetails: b.FlightDetails,
		BookingStatus: string(b.Status),
		FlightStatus:  string(b.FlightStatus),
		PaymentStatus: string(b.PaymentStatus),
		PaymentAmount: b.PaymentAmount,
		ExpiresAt:     b.ExpiresAt.Format(time.RFC3339),
	}
}
