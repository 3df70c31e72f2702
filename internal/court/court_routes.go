package court

import (
	"github.com/acebook/backend/config"
	mw "github.com/acebook/backend/internal/middleware"
	"github.com/acebook/backend/internal/user"
	"github.com/acebook/backend/pkg/rmiddleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func RegisterCourtRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, logger *zap.Logger) {
	courtRepo := NewCourtRepository(db)
	courtController := NewCourtController(courtRepo, logger)

	courts := router.Group("/courts")
	courts.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret), user.Loader(db))
	{
		// Reads are open to every club member
		courts.GET("", courtController.ListCourts)
		courts.GET("/:court_id", courtController.GetCourt)

		// Writes are admin only
		adminCourts := courts.Group("")
		adminCourts.Use(rmiddleware.AdminMiddleware())
		{
			adminCourts.POST("", courtController.CreateCourt)
			adminCourts.PUT("/:court_id", courtController.UpdateCourt)
			adminCourts.DELETE("/:court_id", courtController.DeleteCourt)
		}
	}
}
