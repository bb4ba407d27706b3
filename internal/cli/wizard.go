package cli

import (
	"github.com/alexanderramin/confsched/internal/cli/formatter"
	"github.com/alexanderramin/confsched/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// confschedHuhTheme returns a huh theme using the Gruvbox palette.
func confschedHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardSelectFontFamily builds a single-select over the font families,
// preselecting current when set.
func wizardSelectFontFamily(current *domain.FontFamily, result *string) *huh.Form {
	if current != nil {
		*result = string(*current)
	}
	options := make([]huh.Option[string], 0, len(domain.AllFontFamilies()))
	for _, f := range domain.AllFontFamilies() {
		options = append(options, huh.NewOption(f.DisplayName(), string(f)))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Font family").
				Description("Used for headings and the timetable").
				Options(options...).
				Value(result),
		),
	).WithTheme(confschedHuhTheme()).WithShowHelp(false)
}
