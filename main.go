package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/karmic/meals-api/config"
	"github.com/karmic/meals-api/routes"
	"github.com/karmic/meals-api/services"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	config.SetupLogger(cfg)
	log.Info().Msg("Starting Karmic Meals API server...")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	if err := config.ConnectDatabase(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := config.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}
	log.Info().Msg("Database migration completed successfully")

	deps := routes.Dependencies{Config: cfg, DB: db}
	if cfg.S3Enabled() {
		s3Service, err := services.NewS3Service(context.Background(), cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 report storage")
		}
		deps.Storage = s3Service
		log.Info().Str("bucket", cfg.AWSS3Bucket).Msg("Report archiving enabled")
	}

	router := routes.SetupRouter(deps)

	// Start server
	addr := ":" + cfg.Port
	log.Info().Msgf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
