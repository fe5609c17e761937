package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"

	"eventhub/cmd/buildCFG"
	"eventhub/internal/api/api"
	"eventhub/internal/auth"
	rabbitReader "eventhub/internal/consumerWorker"
	"eventhub/internal/mailer"
	"eventhub/internal/notifier"
	"eventhub/internal/rabbit"
	"eventhub/internal/registration"
	"eventhub/internal/repo"
	"eventhub/internal/service"
)

func main() {
	zlog.Init()
	log := zlog.Logger

	cfg := config.New()
	if err := cfg.Load("config.yaml", "", "'"); err != nil {
		log.Fatal().Msgf("failed to load configuration: %v", err)
	}
	serverCfg := buildCFG.BuildServerConfig(cfg, &log)
	port := serverCfg.Port

	masterDSN, slaveDSNs, poolOptions, err := buildCFG.BuildDBConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build DB config")
	}
	db, err := dbpg.New(masterDSN, slaveDSNs, poolOptions)
	if err != nil {
		log.Fatal().Msgf("failed to connect to DB: %v", err)
	}
	if err := db.Master.Ping(); err != nil {
		log.Fatal().Msgf("DB ping failed: %v", err)
	}
	log.Info().Msg("Database connected successfully")

	database, err := repo.New(db, &log)
	if err != nil {
		log.Fatal().Msgf("failed to initialize repository: %v", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot get working directory")
	}
	migrationPath := filepath.Join(cwd, "migrations/postgres")
	if err := database.MigrateUp(migrationPath); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Msg("Migrations applied successfully")

	rabbitCfg, err := buildCFG.BuildRabbitConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load RabbitMQ config")
	}
	rmq, err := rabbit.NewRabbit(rabbitCfg.Url, rabbitCfg.Exchange, rabbitCfg.Queue)
	if err != nil {
		log.Fatal().Msgf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rmq.Close()

	authCfg, err := buildCFG.BuildAuthConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load auth config")
	}
	tokens := auth.NewTokenService(authCfg.Secret, authCfg.TokenTTL)

	smtpCfg, err := buildCFG.BuildSMTPConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load SMTP config")
	}
	mail := mailer.New(smtpCfg.Host, smtpCfg.Port, smtpCfg.From, smtpCfg.Password, &log)

	events := repo.NewEventRepo(database)
	registrations := repo.NewRegistrationRepo(database)
	notifications := repo.NewNotificationRepo(database)
	users := repo.NewUserRepo(database)

	dispatcher := notifier.NewDispatcher(notifications, rmq, &log)
	engine := registration.NewEngine(events, registrations, dispatcher, &log)
	broadcaster := notifier.NewBroadcaster(events, users, dispatcher, &log)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())

	reader := rabbitReader.NewReader(rmq, notifications, users, mail)
	reader.Start(workerCtx)

	serviceInstance := service.NewService(engine, broadcaster, events, users, notifications, tokens, &log)
	app := api.NewRouters(&api.Routers{Service: serviceInstance, Tokens: tokens})

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info().Msgf("Starting server on %s", port)
		if err := app.Run(":" + port); err != nil {
			serverErrChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-signalChan:
		log.Info().Msgf("Received signal %s. Initiating shutdown...", sig)
	case err := <-serverErrChan:
		log.Error().Msgf("Server error: %v", err)
	}

	cancelWorkers()
	reader.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if closer, ok := interface{}(app).(interface{ Close(context.Context) error }); ok {
		if err := closer.Close(shutdownCtx); err != nil {
			log.Error().Msgf("Error shutting down server: %v", err)
		}
	}

	log.Info().Msg("Shutdown complete")
}
