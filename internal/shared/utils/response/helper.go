package response

import "github.com/gin-gonic/gin"

// RespondJSON writes the envelope with the given HTTP status code. The
// code appears both on the wire and inside the body so clients that
// lose the transport status can still branch on it.
func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}
