package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ad/telegram-meeting-bot/internal/bot"
	"github.com/ad/telegram-meeting-bot/internal/config"
	"github.com/ad/telegram-meeting-bot/internal/domain"
	"github.com/ad/telegram-meeting-bot/internal/locale"
	"github.com/ad/telegram-meeting-bot/internal/logger"
	"github.com/ad/telegram-meeting-bot/internal/storage"

	tgbot "github.com/go-telegram/bot"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

func main() {
	// Load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logLevel := logger.ParseLevel(cfg.LogLevel)
	log := logger.New(logLevel)
	log.Info("Starting Telegram Meeting Bot", "log_level", cfg.LogLevel)

	// Initialize database
	db, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		log.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		log.Error("Failed to enable WAL mode", "error", err)
		os.Exit(1)
	}

	log.Info("Database opened", "path", cfg.DatabasePath)

	// Initialize DBQueue for safe concurrent access
	dbQueue := storage.NewDBQueue(db)
	defer dbQueue.Close()

	// Initialize database schema
	if err := storage.InitSchema(dbQueue); err != nil {
		log.Error("Failed to initialize database schema", "error", err)
		os.Exit(1)
	}
	log.Info("Database schema initialized")

	// Run database migrations
	if err := storage.RunMigrations(dbQueue); err != nil {
		log.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	log.Info("Database migrations completed")

	// Create repositories
	meetingRepo := storage.NewMeetingRepository(dbQueue)
	inviteeRepo := storage.NewInviteeRepository(dbQueue)
	participantRepo := storage.NewParticipantRepository(dbQueue)
	voteRepo := storage.NewVoteRepository(dbQueue)
	userRepo := storage.NewUserRepository(dbQueue)
	organizerRepo := storage.NewOrganizerRepository(dbQueue)

	log.Info("Repositories created")

	// Create localizer
	localizer, err := locale.NewLocalizer(locale.NewLocale(cfg.Locale))
	if err != nil {
		log.Error("Failed to create localizer", "error", err)
		os.Exit(1)
	}

	// Organizer rights come from the configured ID list plus the organizers table
	authorizer := domain.NewStaticAuthorizer(cfg.OrganizerUserIDs, organizerRepo)

	// Create the engine
	engine := bot.NewEngine(
		bot.NewUserContextStore(),
		bot.NewFlowRegistry(),
		authorizer,
		userRepo,
		meetingRepo,
		inviteeRepo,
		participantRepo,
		voteRepo,
		localizer,
		cfg.InvitedPerPage,
		log,
	)

	log.Info("Engine created")

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	adapter := bot.NewTelegramAdapter(engine, log)

	// The engine resolves commands itself, so a single catch-all handler
	// routes every message and callback through it
	opts := []tgbot.Option{
		tgbot.WithDefaultHandler(adapter.HandleUpdate),
	}

	b, err := tgbot.New(cfg.TelegramToken, opts...)
	if err != nil {
		log.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	log.Info("Telegram bot created")

	// Start bot polling in a goroutine
	go func() {
		log.Info("Starting bot polling")
		b.Start(ctx)
	}()

	log.Info("Bot is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("Shutdown signal received, stopping bot...")
	log.Info("Bot stopped successfully")
}
