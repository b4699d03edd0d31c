package handlers

import (

	"github.com/gin-gonic/gin"

	apperrors "coinwatch/internal/errors"
	"coinwatch/internal/models"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// coinIDParam returns the :id path parameter in canonical form.
func coinIDParam(c *gin.Context) (string, error) {
	id := models.NormalizeCoinID(c.Param("id"))
	if id == "" {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid coin id")
	}
	return id, nil
}

// respondWithError attaches err to the request and stops the chain;
// middleware.ErrorHandler renders it.
func respondWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// invalidInput wraps a binding error as ErrInvalidInput.
func invalidInput(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}
