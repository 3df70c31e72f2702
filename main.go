package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/acebook/backend/config"
	_ "github.com/acebook/backend/docs"
	"github.com/acebook/backend/internal/club"
	"github.com/acebook/backend/internal/coach"
	"github.com/acebook/backend/internal/court"
	"github.com/acebook/backend/internal/reservation"
	"github.com/acebook/backend/internal/user"
	"github.com/acebook/backend/routes"
)

// @title AceBook REST API
// @version 1.0
// @description Court reservation backend for tennis clubs.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	logger, err := newLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	err = config.DB.AutoMigrate(
		&club.Club{},
		&user.ClubUser{}, &user.RefreshToken{},
		&court.Court{}, &coach.Coach{},
		&reservation.Reservation{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	logger.Info("AutoMigrate successful")

	r := routes.SetupRoutes(config.DB, cfg, logger)

	logger.Info("Starting server",
		zap.String("port", cfg.App.Port),
		zap.String("env", cfg.App.Env),
		zap.String("club_timezone", cfg.App.Timezone),
	)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
