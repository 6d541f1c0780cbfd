package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gopherblog/internal/app"
	"gopherblog/internal/transport/http/middleware"
	"gopherblog/internal/transport/http/response"
)

type PageHandler struct {
	postService *app.PostService
	logger      *zap.Logger
}

func NewPageHandler(postService *app.PostService, logger *zap.Logger) *PageHandler {
	return &PageHandler{postService: postService, logger: logger}
}

// Home shows the dashboard to signed-in users and the sign-up page to everyone else.
func (h *PageHandler) Home(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		response.Page(c, "homepage", pageData(c, nil))
		return
	}

	posts, err := h.postService.ListByAuthor(identity.UserID)
	if err != nil {
		response.InternalError(c, h.logger, "list dashboard posts failed", err)
		return
	}
	response.Page(c, "dashboard", pageData(c, gin.H{"Posts": posts}))
}

// pageData fills in the keys every template reads so a missing one never
// reaches the template.
func pageData(c *gin.Context, extra gin.H) gin.H {
	data := gin.H{
		"Identity": middleware.CurrentIdentity(c),
		"Errors":   []string(nil),
		"Title":    "",
		"Body":     "",
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
