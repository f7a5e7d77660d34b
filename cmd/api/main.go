package main

import (
	"os"

	"github.com/oguzk/labsessions/internal/pkg/logger"
	"github.com/oguzk/labsessions/internal/server"
)

// @title Hands-On Practicals API
// @version 1.0
// @description Seat-limited registration service for course practical sessions

// @contact.name API Support
// @contact.email practicals-support@school.edu

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token issued by the learning platform

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
