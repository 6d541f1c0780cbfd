package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gopherblog/internal/app"
	"gopherblog/internal/pkg/sanitize"
	"gopherblog/internal/transport/http/middleware"
	"gopherblog/internal/transport/http/response"
)

type PostHandler struct {
	postService *app.PostService
	logger      *zap.Logger
}

func NewPostHandler(postService *app.PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{postService: postService, logger: logger}
}

func (h *PostHandler) CreateForm(c *gin.Context) {
	response.Page(c, "create-post", pageData(c, nil))
}

func (h *PostHandler) Create(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	input := postInput(c)

	post, err := h.postService.Create(identity.UserID, input)
	if err != nil {
		var verr *app.ValidationError
		if errors.As(err, &verr) {
			response.Page(c, "create-post", pageData(c, gin.H{
				"Errors": verr.Messages,
				"Title":  input.Title,
				"Body":   input.Body,
			}))
			return
		}
		response.InternalError(c, h.logger, "create post failed", err)
		return
	}

	response.Redirect(c, postPath(post.ID))
}

func (h *PostHandler) Show(c *gin.Context) {
	postID, ok := middleware.ParsePostID(c)
	if !ok {
		response.Redirect(c, "/")
		return
	}

	post, err := h.postService.Get(postID)
	if err != nil {
		if errors.Is(err, app.ErrPostNotFound) {
			response.Redirect(c, "/")
			return
		}
		response.InternalError(c, h.logger, "get post failed", err)
		return
	}

	identity := middleware.CurrentIdentity(c)
	response.Page(c, "single-post", pageData(c, gin.H{
		"Post":     post,
		"BodyHTML": sanitize.RenderMarkdown(post.Body),
		"IsAuthor": identity != nil && identity.UserID == post.AuthorID,
	}))
}

func (h *PostHandler) EditForm(c *gin.Context) {
	post := middleware.CurrentPost(c)
	response.Page(c, "edit-post", pageData(c, gin.H{
		"Post":  post,
		"Title": post.Title,
		"Body":  post.Body,
	}))
}

func (h *PostHandler) Update(c *gin.Context) {
	post := middleware.CurrentPost(c)
	input := postInput(c)

	if _, err := h.postService.Update(post.ID, input); err != nil {
		var verr *app.ValidationError
		if errors.As(err, &verr) {
			response.Page(c, "edit-post", pageData(c, gin.H{
				"Post":   post,
				"Errors": verr.Messages,
				"Title":  input.Title,
				"Body":   input.Body,
			}))
			return
		}
		// deleted after the ownership check
		if errors.Is(err, app.ErrPostNotFound) {
			response.Redirect(c, "/")
			return
		}
		response.InternalError(c, h.logger, "update post failed", err)
		return
	}

	response.Redirect(c, postPath(post.ID))
}

func (h *PostHandler) Delete(c *gin.Context) {
	post := middleware.CurrentPost(c)
	if err := h.postService.Delete(post.ID); err != nil {
		response.InternalError(c, h.logger, "delete post failed", err)
		return
	}
	h.logger.Info("post deleted", zap.Uint("post_id", post.ID), zap.Uint("author_id", post.AuthorID))
	response.Redirect(c, "/")
}

func postInput(c *gin.Context) app.PostInput {
	return app.PostInput{
		Title: c.PostForm("title"),
		Body:  c.PostForm("body"),
	}
}

func postPath(id uint) string {
	return fmt.Sprintf("/post/%d", id)
}
