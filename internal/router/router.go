package router

import (
	"log"
	"net/http"

	"github.com/anonto42/pulseblog/internal/cache"
	"github.com/anonto42/pulseblog/internal/handlers"
	appmiddleware "github.com/anonto42/pulseblog/internal/middleware"
	"github.com/anonto42/pulseblog/internal/models"
	"github.com/anonto42/pulseblog/internal/pagination"
	"github.com/anonto42/pulseblog/internal/repositories"
	"github.com/anonto42/pulseblog/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// HTTPErrorHandler renders the generic error page. Only truly unexpected
// failures reach this as a 500; everything else is handled inside the
// handlers as a redirect or a re-rendered form.
func HTTPErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}
	if code == http.StatusNotFound {
		message = "Page not found"
	}
	if code >= http.StatusInternalServerError {
		log.Printf("server error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	if c.Response().Committed {
		return
	}
	if rerr := c.Render(code, "error.html", map[string]interface{}{"Code": code, "Message": message}); rerr != nil {
		_ = c.NoContent(code)
	}
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, pageCache cache.PageCache, cfg *config.Config) error {
	// AutoMigrate PostgreSQL models
	err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
	if err != nil {
		return err
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	e.HTTPErrorHandler = HTTPErrorHandler

	// Session identity is resolved for every request; individual routes
	// opt in to requiring it.
	e.Use(appmiddleware.LoadSession(cfg.JWTSecret))
	requireLogin := appmiddleware.RequireLogin()

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Uploaded media
	e.Static("/media", cfg.MediaRoot)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	groupRepo := repositories.NewPostgresGroupRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)

	pager := pagination.New(cfg.PostsPerPage)

	// Feed routes; the global feed sits behind the page cache
	feedHandler := handlers.NewFeedHandler(postRepo, groupRepo, userRepo, followRepo, pager)
	feedHandler.RegisterFeedRoutes(e, requireLogin, cache.Middleware(pageCache, cfg.IndexCacheTTL))
	log.Println("Feed routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, groupRepo, cfg.MediaRoot)
	postHandler.RegisterPostRoutes(e, requireLogin)
	log.Println("Post routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo)
	commentHandler.RegisterCommentRoutes(e, requireLogin)
	log.Println("Comment routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(e, requireLogin)
	log.Println("Follow routes configured.")

	// Users routes
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, cfg.MediaRoot)
	authHandler.RegisterAuthRoutes(e, requireLogin)
	log.Println("Auth routes configured.")

	// Operator routes
	cacheHandler := handlers.NewCacheHandler(pageCache)
	cacheHandler.RegisterCacheRoutes(e)
	log.Println("Cache routes configured.")

	log.Println("All routes configured.")
	return nil
}
