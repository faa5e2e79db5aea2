package locale_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-zodiac/internal/config"
	"github.com/tartampluch/go-zodiac/internal/engine"
	"github.com/tartampluch/go-zodiac/internal/locale"
)

func newTranslator(t *testing.T) *locale.Translator {
	t.Helper()
	tr, err := locale.New()
	require.NoError(t, err)
	return tr
}

func TestTranslator_Languages(t *testing.T) {
	tr := newTranslator(t)

	langs := tr.Languages()
	require.NotEmpty(t, langs)
	assert.Equal(t, config.DefaultLanguage, langs[0])
	assert.ElementsMatch(t, config.SupportedLanguages, langs)
}

func TestTranslator_Match(t *testing.T) {
	tr := newTranslator(t)

	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"es", "es"},
		{"es-MX,es;q=0.9,en;q=0.5", "es"},
		{"en-GB", "en"},
		{"fr-FR", "en"},
		{"de;q=0.9,es;q=0.8", "es"},
		{"not a header ;;", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Match(tt.header))
		})
	}
}

func TestTranslator_Msg(t *testing.T) {
	tr := newTranslator(t)

	assert.Equal(t, "Analyze", tr.Msg("en", config.TKeyBtnAnalyze))
	assert.Equal(t, "Analizar", tr.Msg("es", config.TKeyBtnAnalyze))
	assert.Equal(t, "Analyze", tr.Msg("fr", config.TKeyBtnAnalyze), "unknown languages fall back to English")
	assert.Equal(t, "no_such_key", tr.Msg("en", "no_such_key"))
}

func TestTranslator_Sign(t *testing.T) {
	tr := newTranslator(t)

	assert.Equal(t, "Capricornio", tr.Sign("es", "Capricorn"))
	assert.Equal(t, "Dragón", tr.Sign("es", "Dragon"))
	assert.Equal(t, "Gallo", tr.Sign("es", "Rooster"))
	assert.Equal(t, "Fuera de rango", tr.Sign("es", config.SignOutOfRange))
	assert.Equal(t, "Desconocido", tr.Sign("es", config.SignUnknown))
	assert.Equal(t, "Leo", tr.Sign("en", "Leo"))
	assert.Equal(t, "Ophiuchus", tr.Sign("es", "Ophiuchus"))
}

// TestTranslator_AllSignsTranslated guards against a sign missing from a locale.
func TestTranslator_AllSignsTranslated(t *testing.T) {
	tr := newTranslator(t)
	signs := append(engine.WesternSigns(), engine.ChineseSigns()...)

	for _, sign := range signs {
		assert.Equal(t, sign, tr.Sign("en", sign))
		assert.NotEmpty(t, tr.Sign("es", sign))
	}
}

func TestTranslator_Error(t *testing.T) {
	tr := newTranslator(t)

	tests := []struct {
		name string
		res  engine.AnalysisResult
		es   string
	}{
		{"Year", engine.Analyze(1, 1, 1999), "El año debe estar entre 2000 y 2005"},
		{"Month", engine.Analyze(1, 0, 2003), "El mes debe estar entre 1 y 12"},
		{"Day", engine.Analyze(29, 2, 2003), "El día debe estar entre 1 y 28 para el mes 2"},
		{"LeapDay", engine.Analyze(30, 2, 2004), "El día debe estar entre 1 y 29 para el mes 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.res.ErrorMessage, tr.Error("en", tt.res), "English must match the engine message")
			assert.Equal(t, tt.es, tr.Error("es", tt.res))
		})
	}

	assert.Empty(t, tr.Error("es", engine.Analyze(1, 1, 2001)))
}

// TestTranslator_Describe_EnglishMatchesString keeps the locale and the engine rendering in sync.
func TestTranslator_Describe_EnglishMatchesString(t *testing.T) {
	tr := newTranslator(t)

	for _, res := range []engine.AnalysisResult{
		engine.Analyze(15, 8, 2004),
		engine.Analyze(1, 1, 2003),
		engine.Analyze(31, 2, 2003),
		engine.Analyze(1, 1, 2010),
	} {
		assert.Equal(t, res.String(), tr.Describe("en", res))
	}
}

func TestTranslator_Describe_Spanish(t *testing.T) {
	tr := newTranslator(t)

	valid := tr.Describe("es", engine.Analyze(15, 8, 2004))
	assert.Equal(t, "Fecha 15/08/2004: Válida | Año bisiesto: Sí | Zodiaco occidental: Leo | Zodiaco chino: Mono", valid)

	invalid := tr.Describe("es", engine.Analyze(31, 2, 2003))
	assert.Contains(t, invalid, "INVÁLIDA")
	assert.Contains(t, invalid, "28")
}

func TestTranslator_Summary(t *testing.T) {
	tr := newTranslator(t)
	res := engine.Analyze(1, 1, 2000)

	assert.Equal(t, "Ana: Capricorn / Dragon", tr.Summary("en", "Ana", res))
	assert.Equal(t, "Ana: Capricornio / Dragón", tr.Summary("es", "Ana", res))
}

// TestLocaleIntegrity ensures every translation key used in code exists in every locale file.
func TestLocaleIntegrity(t *testing.T) {
	keys := []string{
		config.TKeyWinTitle, config.TKeyWinResults,
		config.TKeyLblDay, config.TKeyLblMonth, config.TKeyLblYear, config.TKeyLblLanguage,
		config.TKeyBtnAnalyze, config.TKeyBtnContacts,
		config.TKeyLblValid, config.TKeyLblInvalid, config.TKeyLblLeapYear,
		config.TKeyLblWestern, config.TKeyLblChinese,
		config.TKeyColName, config.TKeyColBirthday, config.TKeyColWestern, config.TKeyColChinese,
		config.TKeyWordYes, config.TKeyWordNo,
		config.TKeyErrYear, config.TKeyErrMonth, config.TKeyErrDay, config.TKeyErrNumber,
		config.TKeyResultValid, config.TKeyResultInvalid, config.TKeyEvtSummary,
		config.TKeySignUnknown, config.TKeySignOutOfRange,
	}
	for _, sign := range append(engine.WesternSigns(), engine.ChineseSigns()...) {
		keys = append(keys, config.TKeySignPrefix+strings.ToLower(sign))
	}

	files, err := filepath.Glob(filepath.Join("locales", "active.*.json"))
	require.NoError(t, err)
	require.Len(t, files, len(config.SupportedLanguages))

	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			content, err := os.ReadFile(path)
			require.NoError(t, err)

			var messages map[string]string
			require.NoError(t, json.Unmarshal(content, &messages), "JSON must be valid")

			for _, k := range keys {
				assert.Containsf(t, messages, k, "key %q is missing", k)
			}
			for k := range messages {
				assert.Containsf(t, keys, k, "key %q is not used by the code", k)
			}
		})
	}
}
