package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/yigit/examadmission/internal/pkg/logger"
	"github.com/yigit/examadmission/internal/server"
)

// @title Exam Admission API
// @version 1.0
// @description Graduate entrance exam registration, seating, scoring and admission verdicts

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token as "Bearer <token>"

func main() {
	flags := pflag.NewFlagSet("exam-admission", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", filepath.Join("configs", "config.yaml"), "path to the YAML configuration file")
	envFile := flags.String("env-file", ".env", "optional .env file loaded before reading the environment")
	_ = flags.Parse(os.Args[1:])

	srv, err := server.NewServer(*configPath, *envFile)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
