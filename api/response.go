package api

import (
	"errors"
	"net/http"

	"lotto645/apperrors"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type errorBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

func respondSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"status": "success",
		"data":   data,
	})
}

// respondError maps the error taxonomy onto HTTP statuses: validation
// 400, not found 404, conflict 409, generation exhausted 503, anything
// else 500.
func respondError(c *gin.Context, err error) {
	var (
		status int
		body   errorBody
	)

	var ve *apperrors.ValidationError

	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
		body = errorBody{Code: "VALIDATION_ERROR", Message: ve.Message, Details: ve.Details}
	case apperrors.IsNotFound(err):
		status = http.StatusNotFound
		body = errorBody{Code: "NOT_FOUND", Message: err.Error()}
	case apperrors.IsConflict(err):
		status = http.StatusConflict
		body = errorBody{Code: "CONFLICT", Message: err.Error()}
	case apperrors.IsGenerationFailed(err):
		status = http.StatusServiceUnavailable
		body = errorBody{Code: "GENERATION_FAILED", Message: err.Error()}
	default:
		log.WithError(err).Error("Unhandled error in request")
		status = http.StatusInternalServerError
		body = errorBody{Code: "INTERNAL_ERROR", Message: "internal server error"}
	}

	c.JSON(status, gin.H{
		"status": "error",
		"error":  body,
	})
}
