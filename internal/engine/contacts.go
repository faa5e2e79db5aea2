package engine

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-zodiac/internal/config"
)

// SourceConfig selects where the address book is read from.
type SourceConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string
	WebURL    string
	WebUser   string
	WebPass   string
}

// ContactAnalysis is the analysis of one contact's birthday.
type ContactAnalysis struct {
	// UID is stable across runs for the same name and birthday.
	UID      string         `json:"uid"`
	Name     string         `json:"name"`
	Birthday string         `json:"birthday"` // raw BDAY value
	Result   AnalysisResult `json:"result"`
}

// BatchStats counts the outcome of a batch.
type BatchStats struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
}

// Batch analyses every birthday of an address book.
type Batch struct {
	Fetcher SourceFetcher
}

// Run opens the configured source and analyses it.
func (b *Batch) Run(ctx context.Context, cfg SourceConfig) ([]ContactAnalysis, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgBatchStarted)

	reader, err := b.open(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	items, err := AnalyzeContacts(ctx, reader)
	if err != nil {
		return nil, err
	}

	stats := Summarize(items)
	log.InfoContext(ctx, config.MsgBatchDone,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.Total),
			slog.Int(config.LogKeyValid, stats.Valid),
			slog.Int(config.LogKeyInvalid, stats.Invalid),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return items, nil
}

func (b *Batch) open(ctx context.Context, cfg SourceConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if b.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return b.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// AnalyzeContacts decodes a vCard stream and analyses the BDAY of each card.
// Malformed cards and unreadable dates are skipped; a birthday without a year
// is analysed with year 0 and therefore reported as an invalid year.
// A failure of the underlying reader aborts the stream with an error.
func AnalyzeContacts(ctx context.Context, r io.Reader) ([]ContactAnalysis, error) {
	src := &readErrRecorder{r: r}
	decoder := vcard.NewDecoder(src)
	var items []ContactAnalysis

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if src.err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, src.err)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		day, month, year, err := parseBirthday(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			continue
		}

		name := contactName(card)
		items = append(items, ContactAnalysis{
			UID:      contactUID(name, bday.Value),
			Name:     name,
			Birthday: bday.Value,
			Result:   Analyze(day, month, year),
		})
	}

	return items, nil
}

// readErrRecorder keeps the first non-EOF error of the wrapped reader so that
// transport failures can be told apart from malformed cards.
type readErrRecorder struct {
	r   io.Reader
	err error
}

func (rr *readErrRecorder) Read(p []byte) (int, error) {
	n, err := rr.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && rr.err == nil {
		rr.err = err
	}
	return n, err
}

// ContactFor wraps a single analysed date so it can be exported like an address book entry.
func ContactFor(name string, r AnalysisResult) ContactAnalysis {
	if name == "" {
		name = config.FallbackName
	}
	birthday := fmt.Sprintf("%04d-%02d-%02d", r.Year, r.Month, r.Day)
	return ContactAnalysis{
		UID:      contactUID(name, birthday),
		Name:     name,
		Birthday: birthday,
		Result:   r,
	}
}

// Summarize counts valid and invalid results.
func Summarize(items []ContactAnalysis) BatchStats {
	stats := BatchStats{Total: len(items)}
	for _, it := range items {
		if it.Result.ValidDate {
			stats.Valid++
		} else {
			stats.Invalid++
		}
	}
	return stats
}

// contactName prefers FN, then N, then a fallback.
func contactName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		return fn.Value
	}
	if n := card.Get(config.VCardN); n != nil && n.Value != "" {
		return n.Value
	}
	return config.FallbackName
}

func contactUID(name, birthday string) string {
	input := fmt.Sprintf(config.FormatHashInput, name, birthday, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

// parseBirthday accepts the BDAY layouts found in vCard 3 and 4.
// The year is 0 when the value omits it.
func parseBirthday(value string) (day, month, year int, err error) {
	for _, layout := range []string{config.DateFormatFullDash, config.DateFormatFullBasic, config.DateFormatRFC3339} {
		if t, perr := time.Parse(layout, value); perr == nil {
			return t.Day(), int(t.Month()), t.Year(), nil
		}
	}
	for _, layout := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if t, perr := time.Parse(layout, value); perr == nil {
			return t.Day(), int(t.Month()), 0, nil
		}
	}
	return 0, 0, 0, errors.New(config.ErrDateParse)
}
