package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"leadcrm/adapters/fcm"
	"leadcrm/adapters/postgres"
	"leadcrm/app"
	"leadcrm/internal/config"
	"leadcrm/internal/errors"
	"leadcrm/internal/migration"
	"leadcrm/ports"
	"leadcrm/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

// initDatabase initializes the PostgreSQL database connection
func initDatabase(ctx context.Context, appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	// Run migrations
	migrator := migration.NewRunner()
	if err := migrator.Run(ctx, db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

// initPushSender builds the FCM client when push delivery is enabled.
// A nil sender turns the notifier into a no-op.
func initPushSender(appConfig *config.Config) (ports.PushSender, error) {
	if !appConfig.Push.Enabled {
		log.Println("[Main] push notifications disabled")
		return nil, nil
	}
	client, err := fcm.NewClient(fcm.Config{
		Endpoint:  appConfig.Push.Endpoint,
		ServerKey: appConfig.Push.ServerKey,
		Timeout:   appConfig.Push.Timeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create push client")
	}
	return client, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := initDatabase(ctx, appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	// Wire repositories
	leadRepo := postgres.NewLeadRepository(db)
	tokenRepo := postgres.NewDeviceTokenRepository(db)

	// Wire services
	sender, err := initPushSender(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize push sender: %v", err)
	}
	notifier := app.NewNotificationService(tokenRepo, sender)
	leadService := app.NewLeadService(leadRepo, notifier)
	importService := app.NewImportService(leadRepo)

	// Initialize web server
	server := ui.NewServer(appConfig, leadService, importService, tokenRepo)

	log.Printf("[Main] starting lead CRM server on port %s", appConfig.Server.Port)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx, ":"+appConfig.Server.Port)
	})
	if err := g.Wait(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
	log.Println("[Main] shutdown complete")
}
