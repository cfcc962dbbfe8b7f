package router

import (
	"fmt"

	"github.com/anonto42/inkpost/backend/internal/handlers"
	"github.com/anonto42/inkpost/backend/internal/middleware"
	"github.com/anonto42/inkpost/backend/internal/models"
	"github.com/anonto42/inkpost/backend/internal/repositories"
	"github.com/anonto42/inkpost/backend/internal/services"
	"github.com/anonto42/inkpost/backend/pkg/config"
	"github.com/anonto42/inkpost/backend/pkg/logger"
	"github.com/anonto42/inkpost/backend/validators"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// SetupRoutes migrates the schema, wires repositories, services and handlers,
// and mounts every route. verifier may be nil when Firebase is not configured.
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, verifier services.TokenVerifier) error {
	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate models: %w", err)
	}
	logger.Info.Println("Database auto-migrations completed for all models.")

	if e.Validator == nil {
		e.Validator = validators.NewValidator()
	}

	// Health check - always accessible
	healthHandler := handlers.NewHealthHandler(db)
	e.GET("/health", healthHandler.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	categoryRepo := repositories.NewPostgresCategoryRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, verifier)
	categoryService := services.NewCategoryService(categoryRepo)
	postService := services.NewPostService(postRepo, categoryRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, postRepo, userRepo)
	likeService := services.NewLikeService(likeRepo, postRepo, userRepo)

	requireAuth := middleware.JWTAuthMiddleware(authService)
	optionalAuth := middleware.OptionalJWTAuthMiddleware(authService)

	api := e.Group("/api")

	// Unprotected routes for authentication
	authHandler := handlers.NewAuthHandler(authService)
	authHandler.RegisterAuthRoutes(api.Group("/auth"))
	if authService.FirebaseEnabled() {
		logger.Info.Println("Auth routes configured (Firebase login enabled).")
	} else {
		logger.Info.Println("Auth routes configured.")
	}

	userHandler := handlers.NewUserHandler(authService)
	userHandler.RegisterProfileRoutes(api, requireAuth)
	logger.Info.Println("User profile routes configured.")

	categoryHandler := handlers.NewCategoryHandler(categoryService)
	categoryHandler.RegisterCategoryRoutes(api, requireAuth)
	logger.Info.Println("Category routes configured.")

	postHandler := handlers.NewPostHandler(postService)
	postHandler.RegisterPostRoutes(api, requireAuth, optionalAuth)
	logger.Info.Println("Post routes configured.")

	commentHandler := handlers.NewCommentHandler(commentService)
	commentHandler.RegisterCommentRoutes(api, requireAuth)
	logger.Info.Println("Comment routes configured.")

	likeHandler := handlers.NewLikeHandler(likeService)
	likeHandler.RegisterLikeRoutes(api, requireAuth)
	logger.Info.Println("Like routes configured.")

	logger.Info.Println("All routes configured.")
	return nil
}
