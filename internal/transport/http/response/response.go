package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ContextRequestIDKey = "request_id"

// Redirect answers with 302 and stops the handler chain.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
	c.Abort()
}

// Page renders a page template with status 200. Form pages that failed
// validation are re-rendered through here as well.
func Page(c *gin.Context, name string, data gin.H) {
	c.HTML(http.StatusOK, name, data)
}

// InternalError logs err and answers with a bare 500.
func InternalError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	logger.Error(msg,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString(ContextRequestIDKey)),
	)
	c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	c.Abort()
}
