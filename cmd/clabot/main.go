package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/cla-designs/clabot/cmd/config"
	"github.com/cla-designs/clabot/internal/auth"
	"github.com/cla-designs/clabot/internal/handlers"
	"github.com/cla-designs/clabot/internal/ledger"
	"github.com/cla-designs/clabot/internal/logger"
	"github.com/cla-designs/clabot/internal/orders"
	"github.com/cla-designs/clabot/internal/platform"
	"github.com/cla-designs/clabot/internal/rules"
	"github.com/cla-designs/clabot/internal/workers"
)

func main() {
	config.ParseFlags()

	if err := logger.Initialize(config.LogLevel); err != nil {
		logger.Log.Fatal("Failed to initialize logger", zap.Error(err))
	}

	content, err := rules.Load(config.RulesPath)
	if err != nil {
		logger.Log.Error("Failed to load rules content", zap.Error(err))
		return
	}

	if config.JWTSecret != "" {
		auth.SetSecret(config.JWTSecret)
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte(config.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("Failed to hash admin password", zap.Error(err))
		return
	}

	gw := platform.NewClient(config.GatewayAddress, config.GuildID, config.BotToken)
	led := ledger.New()
	ord := orders.NewStore(gw, config.LogChannelID, time.Duration(config.ArchiveDelaySeconds)*time.Second)

	workers.InitRetention(led, config.RetentionDays)

	h := handlers.New(led, ord, gw, content, config.AdminLogin, adminHash)

	if err := run(h); err != nil {
		logger.Log.Fatal("Failed to run server", zap.Error(err))
	}
}

func run(h *handlers.Handlers) error {
	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
	}))

	h.Register(app)

	logger.Log.Info("Running server", zap.String("address", config.RunAddress))
	return app.Listen(config.RunAddress)
}
