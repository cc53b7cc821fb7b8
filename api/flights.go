package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mkrivosheev/aeroreserve/internal/domain"
	"github.com/mkrivosheev/aeroreserve/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/flights", h.list)
	router.GET("/flights/:flightNumber", h.get)
	router.POST("/flights", h.create)
	router.PUT("/flights/:flightNumber", h.update)
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FlightHandler) get(c *gin.Context) {
	number, err := strconv.ParseInt(c.Param("flightNumber"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight number"})
		return
	}
	flight, err := h.service.GetByNumber(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

type updateFlightRequest struct {
	Status         *string        `json:"status"`
	AvailableSeats *int           `json:"available_seats"`
	Prices         *domain.Prices `json:"prices"`
}

// update touches status, seat count and prices only. Existing bookings keep
// their snapshot, so price edits never affect what was already sold.
func (h *FlightHandler) update(c *gin.Context) {
	number, err := strconv.ParseInt(c.Param("flightNumber"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight number"})
		return
	}

	var req updateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.service.GetByNumber(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.Status != nil {
		flight.Status = domain.FlightStatus(*req.Status)
	}
	if req.AvailableSeats != nil {
		flight.AvailableSeats = *req.AvailableSeats
	}
	if req.Prices != nil {
		flight.Prices = *req.Prices
	}

	if err := h.service.Update(c.Request.Context(), flight); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) create(c *gin.Context) {
	var input flights.CreateFlightInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	flight, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}
