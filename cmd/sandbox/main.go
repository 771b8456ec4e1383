package main

import (
	"log"
	"os"

	"textunited-client/internal/config"
	"textunited-client/internal/logger"
	"textunited-client/internal/sandbox"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	flags := pflag.NewFlagSet("sandbox", pflag.ExitOnError)
	flags.String("port", "8090", "listen port (SANDBOX_PORT)")
	flags.String("sandbox-id", "2001", "accepted company id (SANDBOX_COMPANY_ID)")
	flags.String("sandbox-key", "sandbox-key", "accepted API key (SANDBOX_API_KEY)")
	flags.String("log-level", "info", "log level (LOG_LEVEL)")
	flags.String("log-format", "json", "log format: json or text (LOG_FORMAT)")
	_ = flags.Parse(os.Args[1:])

	// Initialize configuration
	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Set up logging
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(gin.ReleaseMode)

	server := sandbox.NewServer(sandbox.SeedStore(), cfg.SandboxCompanyID, cfg.SandboxAPIKey)

	logrus.Infof("Sandbox accepts company id %s; point the CLI at it with --endpoint http://localhost:%s/api/",
		cfg.SandboxCompanyID, cfg.SandboxPort)
	if err := server.Run(":" + cfg.SandboxPort); err != nil {
		logrus.Fatal("Failed to start sandbox:", err)
	}
}
