package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/acebook/backend/config"
	"github.com/acebook/backend/internal/auth"
	"github.com/acebook/backend/internal/club"
	"github.com/acebook/backend/internal/coach"
	"github.com/acebook/backend/internal/court"
	mw "github.com/acebook/backend/internal/middleware"
	"github.com/acebook/backend/internal/reservation"
	"github.com/acebook/backend/internal/user"
)

func SetupRoutes(db *gorm.DB, appConfig *config.Config, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(mw.Logger(logger), gin.Recovery())
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "acebook", "status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, appConfig, logger)
	club.RegisterClubRoutes(api, db)
	user.RegisterUserRoutes(api, db, appConfig, logger)
	court.RegisterCourtRoutes(api, db, appConfig, logger)
	coach.RegisterCoachRoutes(api, db, appConfig, logger)
	reservation.RegisterReservationRoutes(api, db, appConfig, logger)

	return r
}
