package api

import (
	"net/http"

	"github.com/Domenick1991/studiobooking/internal/domain"
	"github.com/gin-gonic/gin"
)

// StudioHandler serves the fixed studio catalog and the recording-purpose
// set so clients never hardcode either.
type StudioHandler struct {
	catalog *domain.Catalog
}

func NewStudioHandler(catalog *domain.Catalog) *StudioHandler {
	return &StudioHandler{catalog: catalog}
}

func (h *StudioHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
}

type purposeResponse struct {
	Purpose domain.RecordingPurpose `json:"purpose"`
	Color   string                  `json:"color"`
}

func (h *StudioHandler) list(c *gin.Context) {
	purposes := make([]purposeResponse, 0, len(domain.RecordingPurposes))
	for _, p := range domain.RecordingPurposes {
		purposes = append(purposes, purposeResponse{Purpose: p, Color: p.Style().Color})
	}

	c.JSON(http.StatusOK, gin.H{
		"studios":            h.catalog.Studios(),
		"recording_purposes": purposes,
	})
}
