package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taetu445/RescueBites/internal/app"
	"github.com/taetu445/RescueBites/internal/chat"
	"github.com/taetu445/RescueBites/internal/config"
	"github.com/taetu445/RescueBites/internal/pkg/auth"
	"github.com/taetu445/RescueBites/internal/pkg/logger"
	"github.com/taetu445/RescueBites/internal/service"
	"github.com/taetu445/RescueBites/internal/storage"
	"github.com/taetu445/RescueBites/internal/trainer"

	"github.com/robfig/cron/v3"
)

func main() {
	var l *logger.Logger
	var err error
	if l, err = logger.CreateLogger(config.LogLevel); err != nil {
		log.Fatal("Failed to create logger:", err)
	}

	auth.SetSecret(config.JWTSecret)

	db, err := storage.NewPostgreSQL(config.DatabaseURI, l)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	files, err := storage.NewFileStore(config.DataDir, config.PublicDataDir, l)
	if err != nil {
		log.Fatal(err)
	}

	modelTrainer := trainer.New(config.TrainerCmd, config.TrainerDir, config.TrainerTimeout, l)
	chatClient := chat.NewClient(config.ChatAPIURL, config.ChatModel, config.ChatAPIKey, l)

	app := app.NewApp(db, files, modelTrainer, chatClient, l)
	service := service.NewService(app, config.ServerRunAddress, l)

	// Nightly archive, reset, and retrain.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 0 * * *", func() {
		if err := app.RunNightly(context.Background()); err != nil {
			l.Sugar().Errorf("Cron job failed: %s", err)
		}
	}); err != nil {
		log.Fatal(err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	const readHeaderTimeout = 5 * time.Second
	server := &http.Server{Addr: config.ServerRunAddress, Handler: service.NewRouter(), ReadHeaderTimeout: readHeaderTimeout}

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		const shutdownTimeout = 30 * time.Second
		shutdownCtx, cancel := context.WithTimeout(serverCtx, shutdownTimeout)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		defer db.Close()
		log.Fatal(err)
	}

	<-serverCtx.Done()
}
