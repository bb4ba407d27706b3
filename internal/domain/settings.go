package domain

// Settings holds the user's persisted display preferences.
type Settings struct {
	UseFontFamily      *FontFamily
	EnableAnimation    bool
	EnableFallbackMode bool
}

// DefaultSettings is used when nothing has been stored yet.
func DefaultSettings() Settings {
	return Settings{
		EnableAnimation:    true,
		EnableFallbackMode: false,
	}
}
