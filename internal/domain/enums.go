package domain

import "fmt"

// DayTab selects one day of the conference.
type DayTab int

const (
	DayWorkshop DayTab = iota
	Day1
	Day2
)

// AllDayTabs returns the day tabs in display order.
func AllDayTabs() []DayTab {
	return []DayTab{DayWorkshop, Day1, Day2}
}

func (d DayTab) String() string {
	switch d {
	case DayWorkshop:
		return "workshop"
	case Day1:
		return "day1"
	case Day2:
		return "day2"
	default:
		return fmt.Sprintf("DayTab(%d)", int(d))
	}
}

// Label is the human-facing tab caption.
func (d DayTab) Label() string {
	switch d {
	case DayWorkshop:
		return "Workshop Day"
	case Day1:
		return "Day 1"
	case Day2:
		return "Day 2"
	default:
		return d.String()
	}
}

// ParseDayTab accepts the String() form plus a few short aliases.
func ParseDayTab(s string) (DayTab, error) {
	switch s {
	case "workshop", "workshop-day", "0":
		return DayWorkshop, nil
	case "day1", "day-1", "1":
		return Day1, nil
	case "day2", "day-2", "2":
		return Day2, nil
	}
	return 0, fmt.Errorf("unknown day %q (want workshop, day1 or day2)", s)
}

// FontFamily is a user-selectable display font.
type FontFamily string

const (
	FontFamilyDotGothic16Regular FontFamily = "dot_gothic16_regular"
	FontFamilySystemDefault      FontFamily = "system_default"
)

// AllFontFamilies returns the selectable font families in display order.
func AllFontFamilies() []FontFamily {
	return []FontFamily{FontFamilyDotGothic16Regular, FontFamilySystemDefault}
}

// DisplayName is the label shown in the settings list.
func (f FontFamily) DisplayName() string {
	switch f {
	case FontFamilyDotGothic16Regular:
		return "DotGothic16"
	case FontFamilySystemDefault:
		return "System Default"
	default:
		return string(f)
	}
}

func ParseFontFamily(s string) (FontFamily, error) {
	for _, f := range AllFontFamilies() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown font family %q", s)
}
