package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/opbridge/op-rc-bridge/application/port"
	"github.com/opbridge/op-rc-bridge/application/usecase"
	"github.com/opbridge/op-rc-bridge/infrastructure/config"
	"github.com/opbridge/op-rc-bridge/infrastructure/mappingfile"
	"github.com/opbridge/op-rc-bridge/infrastructure/messagebuilder"
	"github.com/opbridge/op-rc-bridge/infrastructure/openproject"
	"github.com/opbridge/op-rc-bridge/infrastructure/rocketchat"
	httpInterface "github.com/opbridge/op-rc-bridge/interface/http"
	"github.com/opbridge/op-rc-bridge/interface/http/handler"
	"github.com/opbridge/op-rc-bridge/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log := logger.New("info", "json")
	slog.SetDefault(log)

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log = logger.New(cfg.Server.LogLevel, cfg.Server.LogFormat)
	slog.SetDefault(log)

	log.Info("starting op-rc-bridge", "addr", cfg.Server.Addr())

	fileCfg, err := config.LoadFromFile(cfg.ConfigPath)
	if err != nil {
		log.Error("failed to load file config", "error", err)
		os.Exit(1)
	}

	table, err := mappingfile.Load(
		cfg.Mappings.UsersCSVPath,
		cfg.Mappings.ProjectsCSVPath,
		cfg.RocketChat.DefaultChannel,
		log.With("component", "mappingfile"),
	)
	if err != nil {
		log.Error("failed to load mappings", "error", err)
		os.Exit(1)
	}

	var opClient port.OpenProjectClient
	if cfg.HasAPIKey() {
		opClient = openproject.NewClient(
			cfg.OpenProject.APIURL,
			cfg.OpenProject.APIKey,
			cfg.OpenProject.Host,
			log.With("component", "openproject_client"),
		)
	}

	rcClient := rocketchat.NewClient(
		cfg.RocketChat.WebhookURL,
		cfg.RocketChat.WebhookToken,
		log.With("component", "rocketchat_client"),
	)

	resolver := usecase.NewAuthorResolver(opClient, fileCfg.FallbackAlias(), log.With("component", "author_resolver"))
	deliverer := usecase.NewDeliverer(rcClient, cfg.RocketChat.DefaultChannel, log.With("component", "deliverer"))
	builder := messagebuilder.NewBuilder(cfg.OpenProject.WebURL, fileCfg)

	handleCommentUC := usecase.NewHandleCommentUseCase(
		table,
		resolver,
		deliverer,
		builder,
		fileCfg.IconEmoji(),
		log.With("component", "handle_comment_usecase"),
	)

	webhookHandler := handler.NewWebhookHandler(handleCommentUC, log.With("component", "webhook_handler"))
	healthHandler := handler.NewHealthHandler(
		handler.Check{Name: "config", Probe: func() error {
			if cfg.RocketChat.WebhookURL == "" {
				return fmt.Errorf("RC_WEBHOOK_URL not configured")
			}
			return nil
		}},
		handler.Check{Name: "mapping", Probe: func() error {
			if table.UserCount() == 0 && table.ProjectCount() == 0 {
				return fmt.Errorf("no mapping tables loaded")
			}
			return nil
		}},
	)

	gin.SetMode(gin.ReleaseMode)
	router := httpInterface.NewRouter(log, webhookHandler, healthHandler)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info("server started", "addr", cfg.Server.Addr())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("server error", "error", err)
	case <-quit:
		log.Info("shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
