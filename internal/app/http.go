package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/police-1111/cmf/internal/auth"
	"github.com/police-1111/cmf/internal/auth/handler"
	"github.com/police-1111/cmf/internal/auth/provider"
	"github.com/police-1111/cmf/internal/auth/provider/google"
	"github.com/police-1111/cmf/internal/config"
	"github.com/police-1111/cmf/internal/gallery"
	"github.com/police-1111/cmf/internal/media"
	"github.com/police-1111/cmf/internal/middleware"
	"github.com/police-1111/cmf/internal/session"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	sessionStore, cleanup, err := setupSessionStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	allow := auth.NewAllowList(cfg.AllowedEmails)
	codec := session.NewCodec(cfg.SessionSecret)

	googleProvider, err := google.New(
		ctx,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
	)
	if err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(googleProvider)

	authHandler := handler.NewHandler(
		registry,
		sessionStore,
		allow,
		codec,
		cfg.Production(),
	)

	galleryHandler := gallery.NewHandler(
		media.NewClient(cfg.CloudName, cfg.CloudAPIKey, cfg.CloudAPISecret, nil),
	)

	gate := middleware.NewGate(sessionStore, allow, codec)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)
	galleryHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/", func(c *gin.Context) {
		c.File("./public/home.html")
	})

	router.GET("/denied.html", func(c *gin.Context) {
		c.File("./public/denied.html")
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireAllowed(gate))

	api.GET("/me", func(c *gin.Context) {
		email, _ := middleware.EmailFromContext(c.Request.Context())
		c.JSON(200, gin.H{"email": email})
	})

	// ----------------------------
	// Protected Web Routes
	// ----------------------------

	web := router.Group("/")
	web.Use(middleware.GinRequireAllowed(gate))

	web.GET("/index.html", func(c *gin.Context) {
		c.File("./public/index.html")
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, cleanup, nil
}
