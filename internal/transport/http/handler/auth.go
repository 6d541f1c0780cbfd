package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gopherblog/internal/app"
	"gopherblog/internal/transport/http/middleware"
	"gopherblog/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
	cookie      middleware.SessionCookie
	logger      *zap.Logger
}

func NewAuthHandler(authService *app.AuthService, cookie middleware.SessionCookie, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	response.Page(c, "login", pageData(c, nil))
}

func (h *AuthHandler) Register(c *gin.Context) {
	input := app.RegisterInput{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}

	result, err := h.authService.Register(input)
	if err != nil {
		var verr *app.ValidationError
		if errors.As(err, &verr) {
			response.Page(c, "homepage", pageData(c, gin.H{
				"Errors": verr.Messages,
			}))
			return
		}
		response.InternalError(c, h.logger, "register failed", err)
		return
	}

	h.cookie.Set(c, result.Token)
	h.logger.Info("user registered", zap.Uint("user_id", result.User.ID), zap.String("username", result.User.Username))
	response.Redirect(c, "/")
}

func (h *AuthHandler) Login(c *gin.Context) {
	input := app.LoginInput{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}

	result, err := h.authService.Login(input)
	if err != nil {
		var verr *app.ValidationError
		if errors.As(err, &verr) {
			response.Page(c, "login", pageData(c, gin.H{
				"Errors": verr.Messages,
			}))
			return
		}
		response.InternalError(c, h.logger, "login failed", err)
		return
	}

	h.cookie.Set(c, result.Token)
	response.Redirect(c, "/")
}

// Logout only drops the cookie; issued tokens stay valid until they expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookie.Clear(c)
	response.Redirect(c, "/")
}
