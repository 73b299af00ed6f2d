package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hisab-app/hisab-server/bot"
	"github.com/hisab-app/hisab-server/db"
	"github.com/hisab-app/hisab-server/db/migrations"
	"github.com/hisab-app/hisab-server/lib/logging"
	"github.com/hisab-app/hisab-server/lib/service"
	"github.com/hisab-app/hisab-server/lib/tokens"
	"github.com/hisab-app/hisab-server/lib/transport"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/uptrace/bun/migrate"
)

func main() {

	c := &service.Config{}

	// Load configuration from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configured log file
	logger := logging.Logger(c.LogFilePath)

	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}

	// Migrate the DB
	startupCtx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(startupCtx)
	if err != nil {
		logger.Fatalf("Error initializing db migrator: %v", err)
	}
	_, err = migrator.Migrate(startupCtx)
	if err != nil {
		logger.Fatalf("Error migrating database: %v", err)
	}

	// Setup exception tracking with Sentry if configured
	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:              c.SentryDSN,
			IgnoreErrors:     []string{"401"},
			EnableTracing:    c.SentryTracesSampleRate > 0,
			TracesSampleRate: c.SentryTracesSampleRate,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}

	svc := &service.HisabService{
		Config: c,
		DB:     dbConn,
		Logger: logger,
	}

	e := transport.InitEcho(c, logger)

	logMw := transport.CreateLoggingMiddleware(logger)
	// strict rate limit for destructive operations like snapshot restore
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)

	transport.RegisterV2Endpoints(svc, e, strictRateLimitMiddleware, tokens.AdminTokenMiddleware(c.AdminToken), logMw)

	var backgroundWg sync.WaitGroup
	backGroundCtx, _ := signal.NotifyContext(context.Background(), os.Interrupt)

	// Run the Telegram bot in the background when a token is configured
	if c.TelegramBotToken != "" {
		telegramBot := bot.NewTelegramBot(svc, logger)
		backgroundWg.Add(1)
		go func() {
			err := telegramBot.Start(backGroundCtx)
			if err != nil && !errors.Is(err, context.Canceled) {
				sentry.CaptureException(err)
				svc.Logger.Error(err)
			}
			svc.Logger.Info("Telegram bot routine done")
			backgroundWg.Done()
		}()
	}

	// Start Prometheus server if necessary
	if svc.Config.EnablePrometheus {
		go transport.StartPrometheusEcho(logger, svc, e)
	}

	// Start server
	go func() {
		if err := e.Start(fmt.Sprintf(":%v", c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	<-backGroundCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	// Wait for graceful shutdown of background routines
	backgroundWg.Wait()
	svc.Logger.Info("hisab exiting gracefully. Goodbye.")
}
