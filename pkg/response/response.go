package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/orbis-edu/school-bi-api/pkg/errors"
)

// ErrorBody is the wire shape every failed request resolves to. The
// dashboard clients key off the single "error" field.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON sends the payload as the response body. Dashboard payloads are the
// contract themselves, so there is no wrapping envelope.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Error converts the error into the flat error body with its typed status.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, ErrorBody{Error: appErr.Message})
}
