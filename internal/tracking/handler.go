package tracking

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	v1 "github.com/storefront-lab/pulse/internal/api/v1"
	httperr "github.com/storefront-lab/pulse/internal/core/errors"
)

const (
	msgReadBodyFailed     = "Failed to read request body"
	msgInvalidJSON        = "Invalid JSON body"
	msgPathRequired       = "path is required"
	msgInvalidDestination = "url must be an absolute http or https URL"
)

// trackingError carries the structured HTTP error shape from a helper back to the handler.
type trackingError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *trackingError) Error() string {
	return e.message
}

type pageViewRequest struct {
	Path     string `json:"path"`
	Referrer string `json:"referrer"`
	Screen   string `json:"screen"`
}

// PageViewHandler records a page render. Visitors always get 202, whether
// the event was stored, suppressed or failed.
func (s *Service) PageViewHandler(c *gin.Context) {
	req, err := s.parsePageView(c)
	if err != nil {
		writeError(c, err)
		return
	}

	referrer := req.Referrer
	if referrer == "" {
		referrer = c.Request.Referer()
	}

	s.recorder.Record(c.Request.Context(), v1.EventPageView,
		v1.PageViewMetadata(req.Path, referrer, req.Screen))

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// BuyHandler records an affiliate click and redirects to the destination.
// The redirect happens regardless of the record outcome.
func (s *Service) BuyHandler(c *gin.Context) {
	destination, err := parseDestination(c.Query("url"))
	if err != nil {
		slog.Warn("[Tracking] Rejected buy redirect", "url", c.Query("url"))
		writeError(c, err)
		return
	}

	s.recorder.Record(c.Request.Context(), v1.EventClickBuy,
		v1.ClickBuyMetadata(c.Query("product"), c.Query("price"), destination, c.Request.Referer()))

	c.Redirect(http.StatusFound, destination)
}

func (s *Service) parsePageView(c *gin.Context) (*pageViewRequest, *trackingError) {
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("[Tracking] Failed to read request body", "error", err)
		return nil, &trackingError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("[Tracking] Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, &trackingError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpPayloadTooLarge,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_kb": maxBytes / 1024,
			},
		}
	}

	var req pageViewRequest
	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&req); err != nil {
		slog.Warn("[Tracking] Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, &trackingError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	req.Path = strings.TrimSpace(req.Path)
	if req.Path == "" {
		return nil, &trackingError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidRequestError,
			message:    msgPathRequired,
		}
	}

	return &req, nil
}

// parseDestination accepts only absolute http(s) URLs so the endpoint
// cannot redirect to other schemes.
func parseDestination(raw string) (string, *trackingError) {
	invalid := &trackingError{
		statusCode: http.StatusBadRequest,
		errorType:  httperr.HttpInvalidRequestError,
		message:    msgInvalidDestination,
	}

	if raw == "" {
		return "", invalid
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", invalid
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.String(), nil
	default:
		return "", invalid
	}
}

// writeError serializes a trackingError as the JSON HTTP response.
func writeError(c *gin.Context, err *trackingError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
