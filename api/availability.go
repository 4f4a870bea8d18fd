package api

import (
	"net/http"

	"github.com/Domenick1991/studiobooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	service booking.BookingUseCase
}

func NewAvailabilityHandler(service booking.BookingUseCase) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

func (h *AvailabilityHandler) Register(router *gin.RouterGroup) {
	router.GET("/start-times", h.startTimes)
	router.GET("/end-times", h.endTimes)
}

func (h *AvailabilityHandler) startTimes(c *gin.Context) {
	studio, date := c.Query("studio"), c.Query("date")
	if studio == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "studio and date query parameters are required"})
		return
	}

	slots, err := h.service.AvailableStartTimes(c.Request.Context(), studio, date)
	if err != nil {
		respondError(c, err)
		return
	}
	if slots == nil {
		slots = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"start_times": slots})
}

func (h *AvailabilityHandler) endTimes(c *gin.Context) {
	studio, date := c.Query("studio"), c.Query("date")
	if studio == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "studio and date query parameters are required"})
		return
	}

	slots, err := h.service.AvailableEndTimes(c.Request.Context(), studio, date, c.Query("start"), c.Query("exclude"))
	if err != nil {
		respondError(c, err)
		return
	}
	if slots == nil {
		slots = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"end_times": slots})
}
