package handlers

import (
	"errors"
	"io"
	"net/http"

	"autoglm-helper/app/dto"
	"autoglm-helper/app/utils"

	"github.com/gin-gonic/gin"
)

// respondJSON sends a JSON response
func respondJSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// respondError sends {"error": message}
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, dto.ErrorResponse{Error: message})
}

// respondFailure sends {"success": false, "error": message}
func respondFailure(c *gin.Context, status int, message string) {
	c.JSON(status, dto.FailureResponse{Success: false, Error: message})
}

// bindRequest decodes the JSON body into req and validates it.
// An empty body decodes as an empty object. It writes the error response
// and returns false when the request cannot be handled.
func bindRequest(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusInternalServerError, err.Error())
		return false
	}
	if err := utils.ValidateStruct(req); err != nil {
		if utils.IsValidationError(err) {
			respondFailure(c, http.StatusBadRequest, err.Error())
		} else {
			respondError(c, http.StatusInternalServerError, err.Error())
		}
		return false
	}
	return true
}
