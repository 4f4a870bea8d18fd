package api

import (
	"net/http"

	"github.com/Domenick1991/studiobooking/internal/domain"
	"github.com/Domenick1991/studiobooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	Studio    string `json:"studio" binding:"required"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Name      string `json:"name"`
	Purpose   string `json:"recording_purpose"`
	Subject   string `json:"subject"`
}

type updateBookingRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Name      string `json:"name"`
	Purpose   string `json:"recording_purpose"`
	Subject   string `json:"subject"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *BookingHandler) list(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	bookings, err := h.service.ListDay(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		Studio:    req.Studio,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Name:      req.Name,
		Purpose:   domain.RecordingPurpose(req.Purpose),
		Subject:   req.Subject,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) update(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateBooking(c.Request.Context(), booking.UpdateBookingInput{
		ID:        c.Param("id"),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Name:      req.Name,
		Purpose:   domain.RecordingPurpose(req.Purpose),
		Subject:   req.Subject,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) delete(c *gin.Context) {
	if err := h.service.DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
