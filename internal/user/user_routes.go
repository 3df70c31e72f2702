package user

import (
	"github.com/acebook/backend/config"
	mw "github.com/acebook/backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func RegisterUserRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, logger *zap.Logger) {
	userRepo := NewUserRepository(db)
	userController := NewUserController(userRepo, logger)

	clubUsers := router.Group("/club-users")
	clubUsers.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret), Loader(db))
	clubUsers.Use(AdminMiddleware())
	{
		clubUsers.GET("", userController.ListUsers)
		clubUsers.GET("/:user_id", userController.GetUser)
		clubUsers.PATCH("/:user_id", userController.UpdateUser)
		clubUsers.DELETE("/:user_id", userController.DeleteUser)
	}
}
