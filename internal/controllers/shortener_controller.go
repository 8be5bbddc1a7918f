package controllers

import (
	"errors"
	"net/http"

	"github.com/SANTHOSH-VJ/url-saas/internal/models"
	"github.com/SANTHOSH-VJ/url-saas/internal/service"

	"github.com/gin-gonic/gin"
)

type ShortenerController struct {
	urlService service.URLService
	baseURL    string
}

func NewShortenerController(urlService service.URLService, baseURL string) *ShortenerController {
	return &ShortenerController{
		urlService: urlService,
		baseURL:    baseURL,
	}
}

// CreateShortURL handles POST /api/v1/shorten
func (sc *ShortenerController) CreateShortURL(c *gin.Context) {
	var req models.CreateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := sc.urlService.Shorten(c.Request.Context(), &req, sc.baseURL)
	if err != nil {
		status, message := shortenStatus(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// RedirectToURL handles GET /:shortCode - redirects to original URL
func (sc *ShortenerController) RedirectToURL(c *gin.Context) {
	shortCode := c.Param("shortCode")

	longURL, err := sc.urlService.Resolve(c.Request.Context(), shortCode)
	if err != nil {
		status, message := resolveStatus(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.Redirect(http.StatusFound, longURL)
}

// GetURLStats handles GET /api/v1/url/:shortCode - returns URL statistics
func (sc *ShortenerController) GetURLStats(c *gin.Context) {
	shortCode := c.Param("shortCode")

	stats, err := sc.urlService.Stats(c.Request.Context(), shortCode)
	if err != nil {
		status, message := resolveStatus(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// shortenStatus maps service errors from the shorten path onto HTTP statuses.
func shortenStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidURL), errors.Is(err, service.ErrInvalidAlias):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrAliasTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, service.ErrStoreUnavailable.Error()
	case errors.Is(err, service.ErrGenerationExhausted):
		return http.StatusInternalServerError, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// resolveStatus maps service errors from the resolve/stats path. Expired is
// deliberately 410, not 404: the link existed and lapsed, and clients render
// a dedicated "link expired" page for it.
func resolveStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidCode):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrExpired):
		return http.StatusGone, err.Error()
	case errors.Is(err, service.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, service.ErrStoreUnavailable.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
