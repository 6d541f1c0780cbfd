package http

import (
	"github.com/gin-gonic/gin"

	appsvc "gopherblog/internal/app"
	"gopherblog/internal/bootstrap"
	"gopherblog/internal/pkg/password"
	"gopherblog/internal/repository"
	"gopherblog/internal/transport/http/handler"
	"gopherblog/internal/transport/http/middleware"
	"gopherblog/internal/transport/http/view"
)

func NewRouter(app *bootstrap.App) (*gin.Engine, error) {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.RequestLogger(app.Logger), gin.Recovery())

	renderer, err := view.New()
	if err != nil {
		return nil, err
	}
	router.HTMLRender = renderer

	hasher, err := password.NewHasher(app.Config.Auth.PasswordAlgorithm, app.Config.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(app.DB)
	postRepo := repository.NewPostRepository(app.DB)
	sessionService := appsvc.NewSessionService(app.Config.Auth.JWTSecret, app.Config.TokenTTL())
	authService := appsvc.NewAuthService(userRepo, hasher, sessionService)
	postService := appsvc.NewPostService(postRepo)

	cookie := middleware.SessionCookie{
		Name:   app.Config.Auth.CookieName,
		MaxAge: int(app.Config.CookieMaxAge().Seconds()),
		Secure: app.Config.Auth.CookieSecure,
	}

	healthHandler := handler.NewHealthHandler(app)
	pageHandler := handler.NewPageHandler(postService, app.Logger)
	authHandler := handler.NewAuthHandler(authService, cookie, app.Logger)
	postHandler := handler.NewPostHandler(postService, app.Logger)

	router.GET("/healthz", healthHandler.Check)

	site := router.Group("/")
	site.Use(middleware.Authenticate(sessionService, authService, cookie, app.Logger))
	site.GET("/", pageHandler.Home)
	site.GET("/login", authHandler.LoginForm)
	site.POST("/login", authHandler.Login)
	site.POST("/register", authHandler.Register)
	site.GET("/logout", authHandler.Logout)
	site.GET("/post/:id", postHandler.Show)

	authed := site.Group("/")
	authed.Use(middleware.RequireAuth())
	authed.GET("/create-post", postHandler.CreateForm)
	authed.POST("/create-post", postHandler.Create)

	owner := authed.Group("/")
	owner.Use(middleware.RequirePostOwner(postService, app.Logger))
	owner.GET("/edit-post/:id", postHandler.EditForm)
	owner.POST("/edit-post/:id", postHandler.Update)
	owner.POST("/delete-post/:id", postHandler.Delete)

	return router, nil
}
