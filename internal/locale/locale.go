package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-zodiac/internal/config"
	"github.com/tartampluch/go-zodiac/internal/engine"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

// Translator renders messages and analysis results in the embedded languages.
// It is read-only after New and safe for concurrent use.
type Translator struct {
	bundle     *i18n.Bundle
	localizers map[string]*i18n.Localizer
	languages  []string
	matcher    language.Matcher
}

// New loads every locales/active.<lang>.json file. English is the default language.
func New() (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	t := &Translator{
		bundle:     bundle,
		localizers: make(map[string]*i18n.Localizer),
		languages:  []string{config.DefaultLanguage},
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name)
			continue
		}

		lang := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
		if lang == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, localeDir+"/"+name); err != nil {
			return nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang,
			config.LogKeyFile, name)

		if lang != config.DefaultLanguage {
			t.languages = append(t.languages, lang)
		}
	}

	// The first tag is the matcher's fallback, so English must lead.
	tags := make([]language.Tag, 0, len(t.languages))
	for _, lang := range t.languages {
		tags = append(tags, language.Make(lang))
		t.localizers[lang] = i18n.NewLocalizer(bundle, lang)
	}
	t.matcher = language.NewMatcher(tags)

	return t, nil
}

// Languages returns the loaded language codes, default first.
func (t *Translator) Languages() []string {
	return append([]string(nil), t.languages...)
}

// Match picks the best loaded language for an Accept-Language header value.
func (t *Translator) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return config.DefaultLanguage
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return config.DefaultLanguage
	}
	return t.languages[idx]
}

// Msg translates key. The key itself is returned when no translation exists.
func (t *Translator) Msg(lang, key string) string {
	return t.localize(lang, key, nil, key)
}

// Sign translates a zodiac sign or one of the helper sentinels.
// Unknown names are returned unchanged.
func (t *Translator) Sign(lang, sign string) string {
	var key string
	switch sign {
	case config.SignUnknown:
		key = config.TKeySignUnknown
	case config.SignOutOfRange:
		key = config.TKeySignOutOfRange
	default:
		key = config.TKeySignPrefix + strings.ToLower(sign)
	}
	return t.localize(lang, key, nil, sign)
}

// Error renders the validation message of a failed result, or "" for a valid one.
func (t *Translator) Error(lang string, r engine.AnalysisResult) string {
	if r.ValidDate {
		return ""
	}
	switch r.ErrorKind {
	case engine.KindInvalidYear:
		return t.localize(lang, config.TKeyErrYear, map[string]any{
			"Min": config.MinYear, "Max": config.MaxYear,
		}, r.ErrorMessage)
	case engine.KindInvalidMonth:
		return t.localize(lang, config.TKeyErrMonth, map[string]any{
			"Min": config.MinMonth, "Max": config.MaxMonth,
		}, r.ErrorMessage)
	default:
		return t.localize(lang, config.TKeyErrDay, map[string]any{
			"Min":   config.MinDay,
			"Max":   engine.MaxDaysInMonth(r.Month, engine.IsLeapYear(r.Year)),
			"Month": r.Month,
		}, r.ErrorMessage)
	}
}

// Describe is the localized counterpart of AnalysisResult.String.
func (t *Translator) Describe(lang string, r engine.AnalysisResult) string {
	data := map[string]any{
		"Day":   fmt.Sprintf("%02d", r.Day),
		"Month": fmt.Sprintf("%02d", r.Month),
		"Year":  r.Year,
	}
	if !r.ValidDate {
		data["Error"] = t.Error(lang, r)
		return t.localize(lang, config.TKeyResultInvalid, data, r.String())
	}

	data["Leap"] = t.YesNo(lang, r.LeapYear)
	data["Western"] = t.Sign(lang, r.WesternZodiac)
	data["Chinese"] = t.Sign(lang, r.ChineseZodiac)
	return t.localize(lang, config.TKeyResultValid, data, r.String())
}

// Summary renders the calendar event title for a contact.
func (t *Translator) Summary(lang, name string, r engine.AnalysisResult) string {
	fallback := fmt.Sprintf(config.FormatSummary, name, r.WesternZodiac, r.ChineseZodiac)
	return t.localize(lang, config.TKeyEvtSummary, map[string]any{
		"Name":    name,
		"Western": t.Sign(lang, r.WesternZodiac),
		"Chinese": t.Sign(lang, r.ChineseZodiac),
	}, fallback)
}

// YesNo translates a boolean.
func (t *Translator) YesNo(lang string, v bool) string {
	if v {
		return t.localize(lang, config.TKeyWordYes, nil, config.WordYes)
	}
	return t.localize(lang, config.TKeyWordNo, nil, config.WordNo)
}

func (t *Translator) localize(lang, key string, data map[string]any, fallback string) string {
	loc, ok := t.localizers[lang]
	if !ok {
		loc = t.localizers[config.DefaultLanguage]
	}
	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil || msg == "" {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang,
			config.LogKeyKey, key,
			config.LogKeyError, err)
		return fallback
	}
	return msg
}
