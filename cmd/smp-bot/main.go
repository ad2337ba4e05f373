package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	httpapi "github.com/seongmin-dev/kpx-smp-bot/internal/api/http"
	"github.com/seongmin-dev/kpx-smp-bot/internal/bot"
	"github.com/seongmin-dev/kpx-smp-bot/internal/config"
	"github.com/seongmin-dev/kpx-smp-bot/internal/scheduler"
	"github.com/seongmin-dev/kpx-smp-bot/internal/smp"
	"github.com/seongmin-dev/kpx-smp-bot/internal/store"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingToken) {
			printTokenGuidance()
			return
		}
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Run-status store feeding the status endpoint.
	statusStore := store.NewStatusStore()

	// Pipeline: crawler plus the service orchestrating fetch/format.
	crawler := smp.NewCrawler(log, cfg.BaseURL, cfg.HTTPTimeout)
	service := smp.NewService(log, crawler, statusStore)

	// Telegram front end.
	smpBot, err := bot.New(log, cfg.TelegramToken, service, cfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start telegram bot")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go smpBot.Run(ctx)

	// Weekly report job, Monday 09:00 in the configured timezone, plus an
	// hourly keep-alive.
	sched := scheduler.New(log, cfg.Timezone)
	if cfg.ChatID != 0 {
		err := sched.Start(func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			smpBot.SendWeeklyReport(jobCtx, cfg.ChatID)
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start scheduler")
		}
		defer sched.Stop()
	} else {
		log.Warn().Msg("TELEGRAM_CHAT_ID not set; weekly report delivery disabled")
	}

	// Liveness/status endpoints.
	app := fiber.New(fiber.Config{
		AppName:               "kpx-smp-bot",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          90 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	httpapi.RegisterRoutes(app, service, statusStore, cfg.Timezone)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("fiber server stopped")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("timezone", cfg.Timezone.String()).Msg("kpx-smp-bot started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
}

func printTokenGuidance() {
	fmt.Println("⚠️  설정 필요!")
	fmt.Println()
	fmt.Println("1. .env 파일을 생성하거나")
	fmt.Println("2. 환경변수를 설정해주세요:")
	fmt.Println()
	fmt.Println("   TELEGRAM_BOT_TOKEN=your_bot_token")
	fmt.Println("   TELEGRAM_CHAT_ID=your_chat_id")
}
