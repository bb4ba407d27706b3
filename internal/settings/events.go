// Package settings holds the settings screen state and the presenter that
// turns user events into persisted preferences.
package settings

import (
	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/alexanderramin/confsched/internal/usermessage"
)

// UiState is what the settings screen renders.
type UiState struct {
	UseFontFamily      *domain.FontFamily
	EnableAnimation    bool
	EnableFallbackMode bool
	UserMessages       *usermessage.Holder
}

// Event is a user intent raised by the settings screen.
type Event interface {
	isSettingsEvent()
}

type SelectUseFontFamily struct {
	FontFamily domain.FontFamily
}

// SelectEnableAnimation carries the desired value, not a toggle.
type SelectEnableAnimation struct {
	Enabled bool
}

type SelectEnableFallbackMode struct {
	Enabled bool
}

type BackRequested struct{}

func (SelectUseFontFamily) isSettingsEvent()      {}
func (SelectEnableAnimation) isSettingsEvent()    {}
func (SelectEnableFallbackMode) isSettingsEvent() {}
func (BackRequested) isSettingsEvent()            {}

// Reduce applies ev to s. Each event touches exactly one field;
// BackRequested leaves s unchanged.
func Reduce(s domain.Settings, ev Event) domain.Settings {
	switch e := ev.(type) {
	case SelectUseFontFamily:
		f := e.FontFamily
		s.UseFontFamily = &f
	case SelectEnableAnimation:
		s.EnableAnimation = e.Enabled
	case SelectEnableFallbackMode:
		s.EnableFallbackMode = e.Enabled
	}
	return s
}
