package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibegram/api-go/repository"
)

// respondError is the single error-to-status table: validation 400,
// ownership 403, missing 404, unique-key conflict 409, everything else
// 500. Repository errors arrive wrapped, so matching uses errors.Is.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicate):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
