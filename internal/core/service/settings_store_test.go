package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

func TestSettingsStore_Defaults(t *testing.T) {
	store := NewSettingsStore(newStubKV(), zerolog.Nop())
	store.Load(context.Background())

	s := store.Settings()
	assert.Equal(t, domain.ThemeSystem, s.Theme)
	assert.Equal(t, domain.SchemeBlue, s.ColorScheme)
	assert.Equal(t, domain.LangFarsi, s.Language)
	assert.Equal(t, domain.DirRTL, s.Direction)

	doc := store.Document()
	assert.Equal(t, domain.ThemeLight, doc.Theme, "system theme resolves to light without a preference")
	assert.Equal(t, domain.DirRTL, doc.Dir)
	assert.Equal(t, domain.LangFarsi, doc.Lang)
	assert.Contains(t, doc.Classes, "scheme-blue")
	assert.Equal(t, domain.LangFarsi.FontFamily(), doc.Tokens["--font-family"])
}

func TestSettingsStore_LanguageDrivesDirection(t *testing.T) {
	cases := []struct {
		lang domain.Language
		dir  domain.Direction
	}{
		{domain.LangFarsi, domain.DirRTL},
		{domain.LangArabic, domain.DirRTL},
		{domain.LangEnglish, domain.DirLTR},
	}
	for _, tc := range cases {
		t.Run(string(tc.lang), func(t *testing.T) {
			kv := newStubKV()
			store := NewSettingsStore(kv, zerolog.Nop())

			require.NoError(t, store.SetLanguage(context.Background(), tc.lang))

			assert.Equal(t, tc.dir, store.Settings().Direction)
			doc := store.Document()
			assert.Equal(t, tc.dir, doc.Dir)
			assert.Equal(t, tc.lang, doc.Lang)
			assert.Equal(t, tc.lang.FontFamily(), doc.Tokens["--font-family"])

			v, ok := kv.value(ports.KeyLanguage)
			require.True(t, ok)
			assert.Equal(t, string(tc.lang), v)
		})
	}
}

func TestSettingsStore_ObserversNeverSeeMismatchedDirection(t *testing.T) {
	store := NewSettingsStore(newStubKV(), zerolog.Nop())

	var docs []domain.Document
	store.Subscribe(func(d domain.Document) { docs = append(docs, d) })

	for _, l := range []domain.Language{domain.LangEnglish, domain.LangArabic, domain.LangEnglish, domain.LangFarsi} {
		require.NoError(t, store.SetLanguage(context.Background(), l))
	}

	require.Len(t, docs, 4)
	for _, d := range docs {
		assert.Equal(t, d.Lang.Direction(), d.Dir)
	}
}

func TestSettingsStore_SetColorSchemePublishesPalette(t *testing.T) {
	kv := newStubKV()
	store := NewSettingsStore(kv, zerolog.Nop())

	require.NoError(t, store.SetColorScheme(context.Background(), domain.SchemeGreen))

	doc := store.Document()
	palette := domain.SchemeGreen.Palette()
	assert.Equal(t, palette[0], doc.Tokens["--color-primary-50"])
	assert.Equal(t, palette[5], doc.Tokens["--color-primary-500"])
	assert.Equal(t, palette[9], doc.Tokens["--color-primary-900"])
	assert.Contains(t, doc.Classes, "scheme-green")
	assert.NotContains(t, doc.Classes, "scheme-blue")

	v, _ := kv.value(ports.KeyColorScheme)
	assert.Equal(t, "green", v)
}

func TestSettingsStore_RejectsInvalidValues(t *testing.T) {
	kv := newStubKV()
	store := NewSettingsStore(kv, zerolog.Nop())
	before := store.Settings()

	assert.ErrorIs(t, store.SetTheme(context.Background(), "sepia"), domain.ErrInvalidSetting)
	assert.ErrorIs(t, store.SetColorScheme(context.Background(), "pink"), domain.ErrInvalidSetting)
	assert.ErrorIs(t, store.SetLanguage(context.Background(), "de"), domain.ErrInvalidSetting)

	assert.Equal(t, before, store.Settings())
	assert.Zero(t, kv.setCalls)
}

func TestSettingsStore_SystemPreference(t *testing.T) {
	store := NewSettingsStore(newStubKV(), zerolog.Nop())

	store.SetSystemPreference(true)
	assert.Equal(t, domain.ThemeDark, store.Document().Theme)
	assert.Contains(t, store.Document().Classes, "dark")

	store.SetSystemPreference(false)
	assert.Equal(t, domain.ThemeLight, store.Document().Theme)

	require.NoError(t, store.SetTheme(context.Background(), domain.ThemeLight))
	store.SetSystemPreference(true)
	assert.Equal(t, domain.ThemeLight, store.Document().Theme, "explicit theme ignores the OS preference")

	require.NoError(t, store.SetTheme(context.Background(), domain.ThemeSystem))
	assert.Equal(t, domain.ThemeDark, store.Document().Theme, "switching back to system picks up the recorded preference")
}

func TestSettingsStore_LoadRestoresPersisted(t *testing.T) {
	kv := newStubKV()
	first := NewSettingsStore(kv, zerolog.Nop())
	require.NoError(t, first.SetTheme(context.Background(), domain.ThemeDark))
	require.NoError(t, first.SetColorScheme(context.Background(), domain.SchemePurple))
	require.NoError(t, first.SetLanguage(context.Background(), domain.LangEnglish))

	reloaded := NewSettingsStore(kv, zerolog.Nop())
	reloaded.Load(context.Background())

	assert.Equal(t, domain.NewSettings(domain.ThemeDark, domain.SchemePurple, domain.LangEnglish), reloaded.Settings())
	assert.Equal(t, domain.ThemeDark, reloaded.Document().Theme)
}

func TestSettingsStore_LoadFallsBackToDefaults(t *testing.T) {
	t.Run("invalid values", func(t *testing.T) {
		kv := newStubKV()
		kv.data[ports.KeyTheme] = "neon"
		kv.data[ports.KeyColorScheme] = "red"
		kv.data[ports.KeyLanguage] = "klingon"

		store := NewSettingsStore(kv, zerolog.Nop())
		store.Load(context.Background())

		s := store.Settings()
		assert.Equal(t, domain.ThemeSystem, s.Theme)
		assert.Equal(t, domain.SchemeRed, s.ColorScheme, "valid fields are kept")
		assert.Equal(t, domain.LangFarsi, s.Language)
		assert.Equal(t, domain.DirRTL, s.Direction)
	})

	t.Run("unreadable storage", func(t *testing.T) {
		kv := newStubKV()
		kv.failGet = true

		store := NewSettingsStore(kv, zerolog.Nop())
		store.Load(context.Background())

		assert.Equal(t, domain.DefaultSettings(), store.Settings())
	})
}

func TestSettingsStore_DocumentIsACopy(t *testing.T) {
	store := NewSettingsStore(newStubKV(), zerolog.Nop())

	doc := store.Document()
	doc.Tokens["--font-family"] = "Comic Sans"
	doc.Classes[0] = "mutated"

	fresh := store.Document()
	assert.NotEqual(t, "Comic Sans", fresh.Tokens["--font-family"])
	assert.NotEqual(t, "mutated", fresh.Classes[0])
}
