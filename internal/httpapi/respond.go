package httpapi

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/you/tutor-marketplace/pkg/apperr"
)

// respondErr turns a domain error into the wire shape
// {"error": msg, "kind": KIND} with the status from the taxonomy.
func respondErr(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		// don't leak internals
		c.JSON(500, gin.H{"error": "internal server error", "kind": "INTERNAL"})
		return
	}
	c.JSON(apperr.HTTPStatus(err), gin.H{"error": e.Msg, "kind": string(e.Kind)})
}
