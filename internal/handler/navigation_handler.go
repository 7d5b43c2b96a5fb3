package handler

import (
	"io"
	"strconv"

	"github.com/Sajal-97/Blind-Stick-Server/internal/application"
	"github.com/Sajal-97/Blind-Stick-Server/internal/domain/navigation"
	"github.com/Sajal-97/Blind-Stick-Server/internal/middleware"
	"github.com/Sajal-97/Blind-Stick-Server/internal/response"
	"github.com/gin-gonic/gin"
)

// NavigationHandler handles HTTP requests for the voice navigation pipeline.
type NavigationHandler struct {
	service *application.NavigationService
}

// NewNavigationHandler creates a new NavigationHandler.
func NewNavigationHandler(service *application.NavigationService) *NavigationHandler {
	return &NavigationHandler{service: service}
}

// RegisterRoutes registers the navigation routes, guarded by the shared
// X-API-Key secret.
func (h *NavigationHandler) RegisterRoutes(r *gin.RouterGroup, apiKey string) {
	nav := r.Group("")
	nav.Use(middleware.APIKeyMiddleware(apiKey))
	{
		nav.POST("/navigate", h.Navigate)
	}
}

// Navigate handles POST /navigate. Accepts multipart form data with fields
// device_id (optional), lat, lng (required), heading (optional) and an
// audio file, and returns the assembled NavigationResponse.
func (h *NavigationHandler) Navigate(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.PostForm("lat"), 64)
	if err != nil {
		response.BadRequest(c, "lat must be a valid number")
		return
	}
	lng, err := strconv.ParseFloat(c.PostForm("lng"), 64)
	if err != nil {
		response.BadRequest(c, "lng must be a valid number")
		return
	}

	var heading *float64
	if raw := c.PostForm("heading"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.BadRequest(c, "heading must be a valid number")
			return
		}
		if value < 0 || value > 360 {
			response.BadRequest(c, "heading must be between 0 and 360 degrees")
			return
		}
		heading = &value
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		response.BadRequest(c, "audio file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "failed to open audio file")
		return
	}
	defer file.Close()
	audio, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "failed to read audio file")
		return
	}

	req := application.NavigateRequest{
		DeviceID: c.PostForm("device_id"),
		Origin:   navigation.Coordinate{Lat: lat, Lng: lng},
		Heading:  heading,
		Audio:    audio,
	}

	result, err := h.service.Navigate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
