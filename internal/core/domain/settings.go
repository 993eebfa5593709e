package domain

import "fmt"

// Theme is the user's light/dark preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ParseTheme validates a stored or submitted theme value.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return t, nil
	}
	return "", fmt.Errorf("%w: theme %q", ErrInvalidSetting, s)
}

// Language is the interface language.
type Language string

const (
	LangFarsi   Language = "fa"
	LangEnglish Language = "en"
	LangArabic  Language = "ar"
)

// ParseLanguage validates a stored or submitted language value.
func ParseLanguage(s string) (Language, error) {
	switch l := Language(s); l {
	case LangFarsi, LangEnglish, LangArabic:
		return l, nil
	}
	return "", fmt.Errorf("%w: language %q", ErrInvalidSetting, s)
}

// Direction is the text direction of the document.
type Direction string

const (
	DirRTL Direction = "rtl"
	DirLTR Direction = "ltr"
)

// Direction derives the text direction from the language: fa and ar are
// right-to-left, everything else left-to-right.
func (l Language) Direction() Direction {
	switch l {
	case LangFarsi, LangArabic:
		return DirRTL
	default:
		return DirLTR
	}
}

// FontFamily is the font stack published as the --font-family token.
func (l Language) FontFamily() string {
	switch l {
	case LangFarsi:
		return "Vazirmatn, Tahoma, sans-serif"
	case LangArabic:
		return "'Noto Kufi Arabic', Tahoma, sans-serif"
	default:
		return "Inter, system-ui, sans-serif"
	}
}

// Settings holds the presentation preferences of a client.
type Settings struct {
	Theme       Theme       `json:"theme"`
	ColorScheme ColorScheme `json:"color_scheme"`
	Language    Language    `json:"language"`
	Direction   Direction   `json:"direction"`
}

// DefaultSettings is used when nothing has been persisted yet.
func DefaultSettings() Settings {
	return NewSettings(ThemeSystem, SchemeBlue, LangFarsi)
}

// NewSettings builds settings with the direction derived from lang.
func NewSettings(theme Theme, scheme ColorScheme, lang Language) Settings {
	return Settings{
		Theme:       theme,
		ColorScheme: scheme,
		Language:    lang,
		Direction:   lang.Direction(),
	}
}

// Document is the result of applying settings to the rendered page: the
// classes on the root element, the published design tokens and the text
// direction.
type Document struct {
	Theme   Theme             `json:"theme"`
	Classes []string          `json:"classes"`
	Tokens  map[string]string `json:"tokens"`
	Dir     Direction         `json:"dir"`
	Lang    Language          `json:"lang"`
}

// ResolveTheme maps ThemeSystem onto the OS preference.
func ResolveTheme(t Theme, systemDark bool) Theme {
	if t != ThemeSystem {
		return t
	}
	if systemDark {
		return ThemeDark
	}
	return ThemeLight
}

// BuildDocument applies settings to a fresh Document.
func BuildDocument(s Settings, systemDark bool) Document {
	resolved := ResolveTheme(s.Theme, systemDark)

	tokens := make(map[string]string, len(ShadeSteps)+1)
	for i, shade := range s.ColorScheme.Palette() {
		tokens[fmt.Sprintf("--color-primary-%d", ShadeSteps[i])] = shade
	}
	tokens["--font-family"] = s.Language.FontFamily()

	return Document{
		Theme:   resolved,
		Classes: []string{string(resolved), "scheme-" + string(s.ColorScheme)},
		Tokens:  tokens,
		Dir:     s.Language.Direction(),
		Lang:    s.Language,
	}
}
