package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"course_activity_report/internal/app"
	"course_activity_report/internal/domain/run"
	"course_activity_report/internal/infra/analytics"
	"course_activity_report/internal/infra/config"
	idb "course_activity_report/internal/infra/database"
	"course_activity_report/internal/infra/logger"
	"course_activity_report/internal/infra/scheduler"
	"course_activity_report/internal/infra/spreadsheet"
	"course_activity_report/internal/infra/telegram"
	"course_activity_report/internal/infra/transfer"
)

func main() {
	os.Exit(execute())
}

func execute() int {
	once := flag.Bool("once", false, "Run the report once even when REPORT_CRON_SPEC is set")
	history := flag.Int("history", 0, "Print the last N recorded runs and exit (requires DATABASE_URL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		return 1
	}

	log := logger.New(cfg, os.Stdout)
	mainLogger := log.Component("main")
	mainLogger.WithField("environment", cfg.Environment).Info("Configuration loaded.")

	ctx := context.Background()

	// Run history is optional.
	var runRepo run.Repository
	if cfg.DatabaseURL != "" {
		db, err := idb.NewPostgresConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			mainLogger.WithError(err).Error("Could not connect to database")
			return 1
		}
		defer db.Close()
		if err := idb.EnsureSchema(ctx, db); err != nil {
			mainLogger.WithError(err).Error("Could not prepare run history table")
			return 1
		}
		runRepo = idb.NewPostgresRunRepository(db)
		mainLogger.Info("Run history repository initialized.")
	}

	var notifier *app.RunNotifier
	if cfg.NotificationsEnabled() {
		bot, err := telegram.NewBot(cfg.TelegramToken, "", cfg.HTTPTimeout)
		if err != nil {
			mainLogger.WithError(err).Error("Could not create Telegram bot")
			return 1
		}
		notifier = app.NewRunNotifier(telegram.NewTelebotAdapter(bot), cfg.TelegramChatID)
		mainLogger.Info("Telegram run notifications enabled.")
	}

	service := app.NewReportService(
		cfg,
		analytics.NewClient(cfg.PlatformDomain, cfg.HTTPTimeout, log.Component("analytics")),
		spreadsheet.NewTemplateWriter(cfg.TemplatePath, cfg.OutputDir, log.Component("spreadsheet")),
		transfer.NewPublisher(log.Component("sftp")),
		runRepo,
		notifier,
		log.Component("report"),
	)

	if *history > 0 {
		return printHistory(ctx, service, *history)
	}

	if cfg.CronSpec == "" || *once {
		runCtx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
		_, err := service.Run(runCtx)
		cancel()
		if err != nil {
			return 1
		}
		return 0
	}

	reportScheduler := scheduler.NewReportScheduler(service, log.Component("scheduler"), cfg.CronSpec, cfg.RunTimeout)
	if err := reportScheduler.Start(); err != nil {
		mainLogger.WithError(err).Error("Could not start report scheduler")
		return 1
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	mainLogger.Info("Shutting down application...")
	reportScheduler.Stop()
	mainLogger.Info("Application shut down gracefully.")
	return 0
}

func printHistory(ctx context.Context, service *app.ReportService, limit int) int {
	runs, err := service.History(ctx, limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	for _, r := range runs {
		fmt.Printf("%s  %-14s  %4d records  %s  %s\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.State, r.RecordCount, nullOr(r.RemotePath, "-"), nullOr(r.Error, ""))
	}
	return 0
}

func nullOr(s sql.NullString, fallback string) string {
	if s.Valid {
		return s.String
	}
	return fallback
}
