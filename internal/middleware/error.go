package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipegen/internal/service"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler is a middleware that recovers panics and turns errors attached
// with c.Error into JSON error responses
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Error: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, message := Classify(err)
		if status >= http.StatusInternalServerError {
			log.Printf("Error: %v", err)
		}
		c.JSON(status, ErrorResponse{Error: message})
	}
}

// Classify maps an error to an HTTP status and a message safe to show the user
func Classify(err error) (int, string) {
	var (
		inputErr   *service.InputError
		stateErr   *service.StateError
		serviceErr *service.ServiceError
		ioErr      *service.IOError
	)

	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest, inputErr.Message
	case errors.As(err, &stateErr):
		return http.StatusConflict, stateErr.Message
	case errors.As(err, &serviceErr):
		return http.StatusBadGateway, serviceErr.UserMessage()
	case errors.As(err, &ioErr):
		return http.StatusInternalServerError, "Failed to write recipe document"
	case errors.Is(err, service.ErrArchiveDisabled):
		return http.StatusNotImplemented, err.Error()
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}
