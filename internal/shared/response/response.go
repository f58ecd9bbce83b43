package response

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"bookreview-backend/internal/shared/apperror"
)

// Envelope is the uniform response body: status is "success", "fail" (4xx)
// or "error" (5xx).
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Results *int        `json:"results,omitempty"`
	Total   *int64      `json:"total,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Stack   string      `json:"stack,omitempty"`
}

// Success responses

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Envelope{
		Status: "success",
		Data:   data,
	})
}

// SuccessList includes the page size and the unpaginated total.
func SuccessList(c *gin.Context, results int, total int64, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Status:  "success",
		Results: &results,
		Total:   &total,
		Data:    data,
	})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error responses

// Error maps an error through the apperror taxonomy. Internal detail is only
// exposed outside production.
func Error(c *gin.Context, err error) {
	appErr := apperror.From(err)

	env := Envelope{
		Status:  appErr.Status,
		Message: appErr.Message,
	}
	if appErr.StatusCode >= 500 && os.Getenv("APP_ENV") != "production" && appErr.Err != nil {
		env.Stack = appErr.Err.Error()
	}

	c.JSON(appErr.StatusCode, env)
}

func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{
		Status:  "fail",
		Message: message,
	})
}

func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, Envelope{
		Status:  "fail",
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{
		Status:  "fail",
		Message: message,
	})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Envelope{
		Status:  "fail",
		Message: message,
	})
}
