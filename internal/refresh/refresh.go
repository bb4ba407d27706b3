// Package refresh re-imports the schedule file on a cron schedule.
package refresh

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/alexanderramin/confsched/internal/ics"
)

// Importer accepts a freshly parsed schedule.
type Importer interface {
	ReplaceTimetable(ctx context.Context, items []domain.TimetableItem) error
}

// Refresher periodically parses path and hands the result to an Importer.
type Refresher struct {
	path     string
	importer Importer
	schedule cron.Schedule
	logger   *slog.Logger
	onError  func(error)
	parse    []ics.ParseOption

	cron *cron.Cron
}

type Option func(*Refresher)

func WithLogger(l *slog.Logger) Option {
	return func(r *Refresher) { r.logger = l }
}

// WithErrorHandler is called after every failed run.
func WithErrorHandler(fn func(error)) Option {
	return func(r *Refresher) { r.onError = fn }
}

func WithParseOptions(opts ...ics.ParseOption) Option {
	return func(r *Refresher) { r.parse = append(r.parse, opts...) }
}

// ParseSpec validates a standard five-field cron spec or a descriptor such
// as "@hourly".
func ParseSpec(spec string) (cron.Schedule, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	return sched, nil
}

func New(spec, path string, importer Importer, opts ...Option) (*Refresher, error) {
	sched, err := ParseSpec(spec)
	if err != nil {
		return nil, err
	}
	r := &Refresher{
		path:     path,
		importer: importer,
		schedule: sched,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RunOnce imports the schedule file immediately.
func (r *Refresher) RunOnce(ctx context.Context) error {
	opts := append([]ics.ParseOption{ics.WithLogger(r.logger)}, r.parse...)
	items, err := ics.ReadFile(r.path, opts...)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	if err := r.importer.ReplaceTimetable(ctx, items); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	r.logger.Info("schedule refreshed", "path", r.path, "items", len(items))
	return nil
}

// Start runs RunOnce on the schedule until ctx is done or Stop is called.
// Overlapping runs are skipped.
func (r *Refresher) Start(ctx context.Context) {
	logger := cronLogger{r.logger}
	r.cron = cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	r.cron.Schedule(r.schedule, cron.FuncJob(func() {
		if err := r.RunOnce(ctx); err != nil {
			r.logger.Error("scheduled refresh failed", "path", r.path, "error", err)
			if r.onError != nil {
				r.onError(err)
			}
		}
	}))
	r.cron.Start()

	go func() {
		<-ctx.Done()
		r.Stop()
	}()
}

// Stop halts the scheduler and waits for a running import to finish.
func (r *Refresher) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}

// cronLogger routes cron's logr-style calls to slog.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error(msg, append(keysAndValues, "error", err)...)
}
