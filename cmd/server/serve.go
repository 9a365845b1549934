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
	"github.com/spf13/cobra"

	"boothbot/config"
	"boothbot/internal/client/discord"
	"boothbot/internal/client/google"
	"boothbot/internal/client/notion"
	"boothbot/internal/handler"
	"boothbot/internal/logging"
	"boothbot/internal/middleware"
	"boothbot/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the directory snapshots and serve the interactions endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// loadConfig 按环境加载配置（APP_ENV=local|dev|prod）并初始化日志
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger := logging.New(cfg.Log, os.Stderr)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func newDiscordClient(cfg *config.Config) (*discord.Client, error) {
	return discord.NewClient(discord.Config{
		BotToken: cfg.Discord.BotToken,
		AppID:    cfg.Discord.AppID,
		Timeout:  cfg.App.HTTPTimeout,
	})
}

// newGoogleClients 未配置服务账号或对应 ID 时返回 nil
func newGoogleClients(ctx context.Context, cfg *config.Config) (*google.SheetsClient, *google.CalendarClient, error) {
	if cfg.Google.ServiceAccountFile == "" {
		return nil, nil, nil
	}
	opt, err := google.ServiceAccountOption(ctx, cfg.Google.ServiceAccountFile)
	if err != nil {
		return nil, nil, err
	}
	var (
		sheets   *google.SheetsClient
		calendar *google.CalendarClient
	)
	if cfg.Google.SpreadsheetID != "" {
		sheets, err = google.NewSheetsClient(ctx, cfg.Google.SpreadsheetID, cfg.Google.DirectoryRange, cfg.App.HTTPTimeout, opt)
		if err != nil {
			return nil, nil, err
		}
	}
	if cfg.Google.CalendarID != "" {
		calendar, err = google.NewCalendarClient(ctx, cfg.Google.CalendarID, cfg.App.HTTPTimeout, opt)
		if err != nil {
			return nil, nil, err
		}
	}
	return sheets, calendar, nil
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ginMode := cfg.Server.Mode
	if os.Getenv("GIN_MODE") != "" {
		ginMode = os.Getenv("GIN_MODE")
	}
	gin.SetMode(ginMode)

	publicKey, err := middleware.ParsePublicKey(cfg.Discord.PublicKey)
	if err != nil {
		return err
	}

	discordClient, err := newDiscordClient(cfg)
	if err != nil {
		return err
	}
	notionClient := notion.NewClient(notion.Config{
		Token:      cfg.Notion.Token,
		DatabaseID: cfg.Notion.DatabaseID,
		BaseURL:    cfg.Notion.BaseURL,
		Timeout:    cfg.App.HTTPTimeout,
	})

	// Google 为可选：未配置服务账号时目录为空、/event 不可用
	var (
		rows   service.RowSource
		events *service.EventCreator
	)
	sheets, calendar, err := newGoogleClients(ctx, cfg)
	if err != nil {
		logger.Warn("google disabled", "error", err)
	}
	// 保持接口值为 nil，避免装入 nil 指针
	if sheets != nil {
		rows = sheets
	}
	if calendar != nil {
		events = service.NewEventCreator(calendar, discordClient, cfg.Location())
	}

	// 快照在服务启动前构建，之后只读
	loadOpts := service.LoadOptions{Attempts: cfg.App.LoadAttempts}
	directory := service.LoadDirectory(ctx, rows, loadOpts, logger)
	identities := service.LoadIdentities(ctx, notionClient, loadOpts, logger)
	logger.Info("snapshots loaded", "directory", directory.Len(), "identities", identities.Len(),
		"notion_database", notionClient.DatabaseID())

	orch := service.NewOrchestrator(
		service.NewValidator(discordClient, cfg.Notion.TaskTypes, cfg.Location()),
		directory,
		identities,
		service.NewTaskCreator(notionClient, cfg.Notion.Properties),
		events,
		logger,
	)
	r := handler.Router(handler.NewInteractionHandler(orch, discordClient, logger), publicKey, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if cfg.Discord.Gateway {
		text := handler.NewTextCommandHandler(orch, discordClient, logger)
		go func() {
			if err := discordClient.Listen(ctx, text.Handle); err != nil {
				logger.Error("gateway stopped", "error", err)
			}
		}()
	}

	logger.Info("server starting", "addr", srv.Addr, "env", config.Env())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
