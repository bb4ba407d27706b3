package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/confsched/internal/cli"
	"github.com/alexanderramin/confsched/internal/config"
	"github.com/alexanderramin/confsched/internal/db"
	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/alexanderramin/confsched/internal/ics"
	"github.com/alexanderramin/confsched/internal/logging"
	"github.com/alexanderramin/confsched/internal/metrics"
	"github.com/alexanderramin/confsched/internal/refresh"
	"github.com/alexanderramin/confsched/internal/repository"
	"github.com/alexanderramin/confsched/internal/sampledata"
	"github.com/alexanderramin/confsched/internal/sessions"
	"github.com/alexanderramin/confsched/internal/usermessage"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.New(), os.Getenv(config.EnvPrefix+"_CONFIG"))
	if err != nil {
		return err
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	logger, closeLog, err := logging.Init(cfg.LogFile, level)
	if err != nil {
		return err
	}
	defer closeLog()
	if !interactive {
		// Scripted runs also surface warnings on stderr.
		logger = slog.New(logging.Tee(logger.Handler(),
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	m := metrics.New()
	store := sessions.NewStore(
		repository.NewSQLiteTimetableItemRepo(database),
		repository.NewSQLiteBookmarkRepo(database),
		db.NewSQLiteUnitOfWork(database),
		sessions.WithObserver(sessions.NewLogUseCaseObserver(logger)),
		sessions.WithObserver(m),
		sessions.WithSubscriberGauge(m.SetSubscribers),
	)
	defer store.Close()

	seed, err := initialSchedule(cfg, logger)
	if err != nil {
		return err
	}
	if seeded, err := store.SeedIfEmpty(ctx, seed); err != nil {
		return fmt.Errorf("loading timetable: %w", err)
	} else if seeded {
		logger.Info("timetable seeded", "sessions", len(seed))
	}

	messages := usermessage.NewHolder()
	app := &cli.App{
		Sessions:   store,
		Settings:   repository.NewSQLiteSettingsRepo(database),
		Messages:   messages,
		Logger:     logger,
		HideTopBar: cfg.HideTopBar,
		IsInteractive: func() bool {
			return interactive
		},
	}

	if cfg.MetricsAddr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr); err != nil {
				logger.Error("metrics server stopped", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
	}

	if cfg.RefreshSchedule != "" {
		r, err := refresh.New(cfg.RefreshSchedule, cfg.ScheduleFile, store,
			refresh.WithLogger(logger),
			refresh.WithErrorHandler(func(error) {
				messages.Emit("Could not refresh the timetable. Showing the last saved schedule.")
			}),
		)
		if err != nil {
			return err
		}
		r.Start(ctx)
		defer r.Stop()
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// initialSchedule returns the sessions used to seed an empty database: the
// configured iCalendar file, or the bundled sample timetable.
func initialSchedule(cfg config.Config, logger *slog.Logger) ([]domain.TimetableItem, error) {
	if cfg.ScheduleFile == "" {
		return sampledata.MustLoad().Items(), nil
	}
	items, err := ics.ReadFile(cfg.ScheduleFile, ics.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("reading schedule file: %w", err)
	}
	return items, nil
}
