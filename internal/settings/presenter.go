package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/alexanderramin/confsched/internal/repository"
	"github.com/alexanderramin/confsched/internal/usermessage"
)

// Presenter owns the settings state for one screen. Persistence failures are
// reported through the message holder; the in-memory change is kept.
type Presenter struct {
	repo     repository.SettingsRepo
	messages *usermessage.Holder
	logger   *slog.Logger
	onBack   func()

	mu      sync.Mutex
	current domain.Settings

	// saveMu orders writes so the last save always stores the latest value.
	saveMu sync.Mutex
}

type PresenterOption func(*Presenter)

func WithLogger(l *slog.Logger) PresenterOption {
	return func(p *Presenter) { p.logger = l }
}

// WithBackHandler sets the callback run on BackRequested.
func WithBackHandler(fn func()) PresenterOption {
	return func(p *Presenter) { p.onBack = fn }
}

func NewPresenter(repo repository.SettingsRepo, messages *usermessage.Holder, opts ...PresenterOption) *Presenter {
	p := &Presenter{
		repo:     repo,
		messages: messages,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		current:  domain.DefaultSettings(),
	}
	if p.messages == nil {
		p.messages = usermessage.NewHolder()
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load reads the stored settings. Defaults apply when nothing is stored.
func (p *Presenter) Load(ctx context.Context) error {
	stored, err := p.repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		p.set(domain.DefaultSettings())
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	p.set(*stored)
	return nil
}

func (p *Presenter) set(s domain.Settings) {
	p.mu.Lock()
	p.current = s
	p.mu.Unlock()
}

// Settings returns the current value.
func (p *Presenter) Settings() domain.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *Presenter) UiState() UiState {
	s := p.Settings()
	return UiState{
		UseFontFamily:      s.UseFontFamily,
		EnableAnimation:    s.EnableAnimation,
		EnableFallbackMode: s.EnableFallbackMode,
		UserMessages:       p.messages,
	}
}

// Handle applies ev and persists the result.
func (p *Presenter) Handle(ctx context.Context, ev Event) {
	if _, ok := ev.(BackRequested); ok {
		if p.onBack != nil {
			p.onBack()
		}
		return
	}
	p.Apply(ev)
	p.Save(ctx, ev)
}

// Apply updates the in-memory settings with ev without touching storage.
// A following Apply sees the result, so flag events compose in order.
func (p *Presenter) Apply(ev Event) domain.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = Reduce(p.current, ev)
	return p.current
}

// Save persists the current settings and reports the outcome of ev.
func (p *Presenter) Save(ctx context.Context, ev Event) {
	p.saveMu.Lock()
	defer p.saveMu.Unlock()

	next := p.Settings()
	if err := p.repo.Upsert(ctx, &next); err != nil {
		p.logger.Warn("settings not saved", "event", fmt.Sprintf("%T", ev), "error", err)
		p.messages.Emit("Could not save settings. Your change applies until restart.")
		return
	}
	p.messages.Emit(confirmation(ev))
}

func confirmation(ev Event) string {
	switch e := ev.(type) {
	case SelectUseFontFamily:
		return "Font set to " + e.FontFamily.DisplayName()
	case SelectEnableAnimation:
		return "Animation " + onOff(e.Enabled)
	case SelectEnableFallbackMode:
		return "Fallback mode " + onOff(e.Enabled)
	}
	return "Settings saved"
}

func onOff(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
