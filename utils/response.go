package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON error envelope. Successful endpoints write their
// payloads directly; only failures go through these helpers so every
// error reads as {"error": "..."}.
type Response struct {
	Status  int    `json:"-"`                 // HTTP status code
	Message string `json:"message,omitempty"` // Optional message
	Error   string `json:"error,omitempty"`   // Error message
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, &Response{
		Status: http.StatusBadRequest,
		Error:  message,
	})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, &Response{
		Status: http.StatusNotFound,
		Error:  message,
	})
}

func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, &Response{
		Status: http.StatusInternalServerError,
		Error:  message,
	})
}

func Conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, &Response{
		Status: http.StatusConflict,
		Error:  message,
	})
}
