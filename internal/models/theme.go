package models

// Theme is the single global UI theme setting.
type Theme string

const (
	ThemeVibe    Theme = "vibe"
	ThemeSunset  Theme = "sunset"
	ThemeOcean   Theme = "ocean"
	ThemeMinimal Theme = "minimal"
)

// ValidTheme reports whether t is one of the known themes.
func ValidTheme(t Theme) bool {
	switch t {
	case ThemeVibe, ThemeSunset, ThemeOcean, ThemeMinimal:
		return true
	}
	return false
}
