package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// RouteNotFound answers requests no route matched.
func RouteNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"status":  false,
		"message": "Route Not Found - " + c.Request.URL.String(),
	})
}

// Recovery turns a panic into a 500 response. The stack trace is only
// included outside production.
func Recovery(production bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		body := gin.H{
			"status":  false,
			"message": fmt.Sprint(recovered),
		}
		if !production {
			body["stack"] = string(debug.Stack())
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}
