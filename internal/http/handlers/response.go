package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
)

// RespondOK writes the success envelope. Every 2xx body carries
// "success": true alongside the payload keys.
func RespondOK(c *gin.Context, payload gin.H) {
	out := gin.H{"success": true}
	for k, v := range payload {
		out[k] = v
	}
	c.JSON(http.StatusOK, out)
}

// RespondError writes the error envelope {"error": message, "code": CODE}
// with the status carried by the error. Unknown errors become INTERNAL_ERROR.
func RespondError(c *gin.Context, err error) {
	ae := apierr.From(err)
	if ae == nil {
		ae = apierr.Internal(err)
	}
	c.JSON(ae.Status, gin.H{
		"error": ae.Error(),
		"code":  ae.Code,
	})
}
