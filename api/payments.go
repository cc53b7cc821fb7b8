package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkrivosheev/aeroreserve/internal/service/payment"
)

type PaymentHandler struct {
	service payment.PaymentUseCase
}

func NewPaymentHandler(service payment.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.POST("/storepayment", h.store)
}

func (h *PaymentHandler) store(c *gin.Context) {
	var input payment.StorePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.Store(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	// Card details stay out of the response.
	c.JSON(http.StatusCreated, gin.H{
		"payment_id":     p.ID,
		"booking_number": p.BookingNumber,
		"amount":         p.Amount,
		"status":         p.Status,
	})
}
