package web

import (
	"net/http"

	"github.com/BerylCAtieno/content-generator/internal/content"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	version string
	service *content.Service
}

func NewHealthHandler(version string, service *content.Service) *HealthHandler {
	return &HealthHandler{version: version, service: service}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Version: h.version})
}

// Ready reports 503 while no generator is configured. It does not call the model.
func (h *HealthHandler) Ready(c *gin.Context) {
	availability := h.service.Availability()
	if !availability.Available() {
		resp := HealthResponse{Status: "not_ready"}
		if availability.Err != nil {
			resp.Error = availability.Err.Error()
		}
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ready"})
}

func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "alive"})
}
