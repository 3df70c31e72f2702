package reservation

import (
	"github.com/acebook/backend/config"
	"github.com/acebook/backend/internal/court"
	mw "github.com/acebook/backend/internal/middleware"
	"github.com/acebook/backend/internal/user"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func RegisterReservationRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, logger *zap.Logger) {
	reservationRepo := NewReservationRepository(db)
	courtRepo := court.NewCourtRepository(db)
	reservationController := NewReservationController(reservationRepo, courtRepo, appConfig.Location(), nil, logger)

	reservations := router.Group("/reservations")
	reservations.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret), user.Loader(db))
	{
		reservations.GET("", reservationController.ListReservations)
		reservations.POST("", reservationController.CreateReservation)
		reservations.GET("/availability", reservationController.Availability)
		reservations.PATCH("/:reservation_id", reservationController.UpdateReservation)
	}
}
