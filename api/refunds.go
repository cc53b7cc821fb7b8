package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mkrivosheev/aeroreserve/internal/domain"
	"github.com/mkrivosheev/aeroreserve/internal/service/refund"
)

type RefundHandler struct {
	service refund.RefundUseCase
}

type requestRefundBody struct {
	BookingNumber  int64  `json:"booking_number" binding:"required"`
	RefundedAmount int64  `json:"refunded_amount"`
	RefundMethod   string `json:"refund_method"`
	Reason         string `json:"reason"`
	Comment        string `json:"comment"`
}

type decideRefundBody struct {
	RefundStatus string `json:"refund_status" binding:"required"`
}

func NewRefundHandler(service refund.RefundUseCase) *RefundHandler {
	return &RefundHandler{service: service}
}

func (h *RefundHandler) Register(router *gin.RouterGroup) {
	router.POST("/bookings/refund/:userId", h.request)
	router.PATCH("/updateRefund/:refundId", h.decide)
	router.GET("/refunds", h.list)
	router.GET("/refunds/:refundId", h.get)
	router.DELETE("/deleteRefund/:refundId", h.delete)
}

func (h *RefundHandler) request(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var body requestRefundBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Request(c.Request.Context(), refund.RequestRefundInput{
		UserID:         userID,
		BookingNumber:  body.BookingNumber,
		RefundedAmount: body.RefundedAmount,
		RefundMethod:   body.RefundMethod,
		Reason:         body.Reason,
		Comment:        body.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RefundHandler) decide(c *gin.Context) {
	var body decideRefundBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Decide(c.Request.Context(), c.Param("refundId"), domain.RefundStatus(body.RefundStatus))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *RefundHandler) get(c *gin.Context) {
	found, err := h.service.Get(c.Request.Context(), c.Param("refundId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *RefundHandler) list(c *gin.Context) {
	refunds, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, refunds)
}

func (h *RefundHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("refundId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refund deleted"})
}
