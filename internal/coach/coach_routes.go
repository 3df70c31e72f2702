package coach

import (
	"github.com/acebook/backend/config"
	mw "github.com/acebook/backend/internal/middleware"
	"github.com/acebook/backend/internal/user"
	"github.com/acebook/backend/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func RegisterCoachRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, logger *zap.Logger) {
	coachRepo := NewCoachRepository(db)
	coachController := NewCoachController(coachRepo, logger)

	coaches := router.Group("/coaches")
	coaches.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret), user.Loader(db))
	{
		coaches.GET("", coachController.ListCoaches)
		coaches.GET("/:coach_id", coachController.GetCoach)

		adminCoaches := coaches.Group("")
		adminCoaches.Use(rmiddleware.AdminMiddleware())
		{
			adminCoaches.POST("", coachController.CreateCoach)
			adminCoaches.PUT("/:coach_id", coachController.UpdateCoach)
			adminCoaches.DELETE("/:coach_id", coachController.DeleteCoach)
		}
	}
}
