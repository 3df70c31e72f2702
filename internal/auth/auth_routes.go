package auth

import (
	"github.com/acebook/backend/config"
	"github.com/acebook/backend/internal/middleware"
	"github.com/acebook/backend/internal/user"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, logger *zap.Logger) {
	authRepo := NewAuthRepository(db)
	authController := NewAuthController(authRepo, appConfig, logger)

	// Public routes
	authPublic := router.Group("/auth")
	{
		authPublic.POST("/register", authController.Register)
		authPublic.POST("/login", authController.Login)
		authPublic.POST("/refresh", authController.RefreshToken)

		authPublic.POST("/password/forgot", authController.ForgotPassword)
		authPublic.POST("/password/reset", authController.ResetPassword)
	}

	// Authenticated routes (protected by auth middleware)
	authProtected := router.Group("/")
	authProtected.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret), user.Loader(db))
	{
		authProtected.GET("/me", authController.Me)
	}
}
