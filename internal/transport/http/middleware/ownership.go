package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gopherblog/internal/app"
	"gopherblog/internal/model"
	"gopherblog/internal/transport/http/response"
)

const ContextPostKey = "post"

// RequirePostOwner loads the post named by the :id path parameter and lets the
// request through only when the current user wrote it. Every other case ends
// in a redirect home; only storage failures surface as 500.
func RequirePostOwner(posts *app.PostService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			response.Redirect(c, "/")
			return
		}

		postID, ok := ParsePostID(c)
		if !ok {
			response.Redirect(c, "/")
			return
		}

		post, err := posts.Get(postID)
		if err != nil {
			if errors.Is(err, app.ErrPostNotFound) {
				response.Redirect(c, "/")
				return
			}
			response.InternalError(c, logger, "load post for ownership check failed", err)
			return
		}
		if post.AuthorID != identity.UserID {
			response.Redirect(c, "/")
			return
		}

		c.Set(ContextPostKey, post)
		c.Next()
	}
}

// CurrentPost returns the post stored by RequirePostOwner.
func CurrentPost(c *gin.Context) *model.Post {
	v, ok := c.Get(ContextPostKey)
	if !ok {
		return nil
	}
	post, _ := v.(*model.Post)
	return post
}

// ParsePostID reads the :id path parameter as a positive integer.
func ParsePostID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
