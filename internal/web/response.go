package web

import (
	"net/http"

	"github.com/BerylCAtieno/content-generator/internal/apperror"
	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of every /api endpoint.
type Response[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

type ErrorDetail struct {
	ErrorCode string `json:"error_code,omitempty"`
	Details   string `json:"details,omitempty"`
}

type ErrorResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Error   *ErrorDetail `json:"error,omitempty"`
	TraceID string       `json:"trace_id,omitempty"`
}

func success[T any](c *gin.Context, data T) {
	respond(c, http.StatusOK, "success", data)
}

// respond writes data with an explicit status, used when a failed request
// still carries a payload (the report).
func respond[T any](c *gin.Context, status int, message string, data T) {
	c.JSON(status, Response[T]{
		Code:    status,
		Message: message,
		Data:    data,
		TraceID: c.GetString("trace_id"),
	})
}

func fail(c *gin.Context, err error) {
	appErr := apperror.As(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, ErrorResponse{
		Code:    appErr.HTTPStatus,
		Message: appErr.Message,
		Error: &ErrorDetail{
			ErrorCode: string(appErr.Code),
			Details:   appErr.Detail,
		},
		TraceID: c.GetString("trace_id"),
	})
}
