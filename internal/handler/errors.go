package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/marianorefrig/mariano_api/internal/store"
	"github.com/marianorefrig/mariano_api/internal/utils"
)

// respondError maps service errors onto the HTTP error envelope.
func respondError(c *gin.Context, err error) {
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.ErrorWithFields(c, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "Validation failed", verr.Fields)
	case errors.Is(err, utils.ErrNotFound):
		utils.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, utils.ErrInsufficientStock):
		utils.Error(c, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error())
	case errors.Is(err, utils.ErrPriceMismatch):
		utils.Error(c, http.StatusConflict, "PRICE_MISMATCH", err.Error())
	case errors.Is(err, utils.ErrInvalidTransition):
		utils.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, store.ErrCorruptData):
		log.Error().Err(err).Msg("storage is corrupt; operator attention required")
		utils.Error(c, http.StatusServiceUnavailable, "STORAGE_CORRUPT", "Stored data is unreadable")
	case errors.Is(err, store.ErrUnsupportedSchema):
		log.Error().Err(err).Msg("storage schema is newer than this build")
		utils.Error(c, http.StatusServiceUnavailable, "UNSUPPORTED_SCHEMA", "Stored data was written by a newer version")
	default:
		_ = c.Error(err)
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

// bindJSON decodes the request body into dst, answering 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return false
	}
	return true
}

// deleted answers a delete request.
func deleted(c *gin.Context, removed bool, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	if !removed {
		utils.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		return
	}
	utils.Success(c, http.StatusOK, utils.OK{OK: true})
}
