package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rahmet97/apartment-bot/internal/config"
	"github.com/Rahmet97/apartment-bot/internal/scraper"
	"github.com/Rahmet97/apartment-bot/internal/service"
	"github.com/Rahmet97/apartment-bot/internal/storage/postgres"
	"github.com/Rahmet97/apartment-bot/internal/telegram"
	opshttp "github.com/Rahmet97/apartment-bot/internal/transport/http"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting apartment-bot", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	store, err := postgres.New(dbCtx, cfg.DB.URL, postgres.Options{
		BusyRetries:    cfg.DB.BusyRetries,
		BusyRetryDelay: cfg.DB.BusyRetryDelay,
	})
	dbCancel()
	if err != nil {
		log.Error("postgres_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}
	log.Info("postgres_connected")

	svc := service.New(store, *cfg)
	log.Info("service_initialized")

	// Источники опрашиваются в порядке перечисления: Циан, затем Авито.
	jobs := []service.SourceJob{
		{Scraper: scraper.NewCian(nil, cfg.Scrape.City), URL: cfg.Scrape.CianURL},
		{Scraper: scraper.NewAvito(nil, cfg.Scrape.City), URL: cfg.Scrape.AvitoURL},
	}

	// Телеграм опционален: без token/channel_id мониторинг копит базу,
	// но уведомления и команды бота выключены.
	var notifier service.Notifier
	if cfg.Telegram.Enabled() {
		tgClient := telegram.NewClient(cfg.Telegram.Token, nil)
		notifier = telegram.NewNotifier(tgClient, cfg.Telegram.ChannelID)

		bot := telegram.NewBot(tgClient, svc, cfg.Telegram.PollTimeout)
		go func() {
			if err := bot.Run(rootCtx); err != nil {
				log.Error("bot_run_failed", slog.String("err", err.Error()))
			}
		}()

		log.Info("telegram_enabled", slog.String("channel", cfg.Telegram.ChannelID))
	} else {
		log.Warn("telegram_disabled")
	}

	go func() {
		if err := svc.StartMonitor(rootCtx, jobs, notifier); err != nil {
			log.Error("monitor_start_failed", slog.String("err", err.Error()))
		}
	}()

	handler := opshttp.NewRouter(svc, opshttp.Options{
		Logger:  log,
		Timeout: cfg.Timeouts.Service,
	})

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		rootCancel()
		store.Close()
		os.Exit(1)
	}
	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	log.Info("apartment_bot_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}
	shutdownCancel()

	rootCancel()
	store.Close()

	log.Info("service_stopped")
	os.Exit(0)
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return log
}
