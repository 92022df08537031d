package handlers

import (
	"fmt"
	"log"
	"net/http"

	"autoglm-helper/app/dto"
	"autoglm-helper/app/services"

	"github.com/gin-gonic/gin"
)

// TokenHeader carries the shared secret; the "token" query parameter is accepted too
const TokenHeader = "X-Auth-Token"

// RequestLogger logs every request before it is dispatched
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		log.Printf("[http] Request: %s %s", c.Request.Method, c.Request.URL.Path)
		c.Next()
	}
}

// Recovery turns a panic in a handler into a 500 response
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("[http] panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fmt.Sprint(recovered)})
	})
}

// NotFound answers any unmatched route
func NotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, "Not found")
}

// RequireToken rejects requests that do not carry the current auth token
func RequireToken(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader(TokenHeader)
		if supplied == "" {
			supplied = c.Query("token")
		}

		ok, err := auth.Authorize(supplied)
		if err != nil {
			log.Printf("[auth] token check failed: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
			return
		}
		if !ok {
			log.Printf("[auth] rejected %s %s", c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
			return
		}
		c.Next()
	}
}
