package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Zodiac/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "Go Zodiac"
	AppID          = "com.github.tartampluch.go-zodiac"
	KeyringService = "com.github.tartampluch.go-zodiac"
	CommandName    = "go-zodiac"
	LogFileName    = "app.log"
)

// -----------------------------------------------------------------------------
// Analysis Domain
// -----------------------------------------------------------------------------

const (
	MinYear  = 2000
	MaxYear  = 2005
	MinMonth = 1
	MaxMonth = 12
	MinDay   = 1

	// Gregorian leap year divisors.
	LeapCycle      = 4
	CenturyCycle   = 100
	QuadCentennial = 400

	FebruaryLeapDays = 29

	// Sentinels returned by the helpers for out-of-range input.
	SignUnknown    = "Unknown"
	SignOutOfRange = "Out of range"

	// Error kinds reported by a failed analysis.
	KindInvalidYear  = "InvalidYear"
	KindInvalidMonth = "InvalidMonth"
	KindInvalidDay   = "InvalidDay"
)

// Validation messages. The day message expects the maximum and the month.
const (
	MsgInvalidYear  = "year must be between %d and %d"
	MsgInvalidMonth = "month must be between %d and %d"
	MsgInvalidDay   = "day must be between %d and %d for month %d"
)

// Result rendering.
const (
	FormatResultValid   = "Date %02d/%02d/%d: valid | Leap year: %s | Western zodiac: %s | Chinese zodiac: %s"
	FormatResultInvalid = "Date %02d/%02d/%d: INVALID - %s"
	WordYes             = "yes"
	WordNo              = "no"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess     = 0
	ExitCodeError       = 1
	ExitCodeInvalidDate = 2
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	CmdAnalyze  = "analyze DAY MONTH YEAR"
	CmdContacts = "contacts [FILE]"
	CmdServe    = "serve"
	CmdGUI      = "gui"
	CmdVersion  = "version"

	CmdDescRoot     = "Validate 2000-2005 dates and derive leap year and zodiac signs"
	CmdDescAnalyze  = "Analyze a single date"
	CmdDescContacts = "Analyze the birthdays of a vCard address book"
	CmdDescServe    = "Serve the analysis HTTP API"
	CmdDescGUI      = "Open the desktop analysis form"
	CmdDescVersion  = "Show application version"

	CmdExampleAnalyze = "  go-zodiac analyze 29 2 2004\n  go-zodiac analyze --json -- -1 1 2000"

	FlagDebug = "debug"
	FlagLang  = "lang"
	FlagJSON  = "json"
	FlagAddr  = "addr"
	FlagURL   = "url"
	FlagUser  = "user"
	FlagICS   = "ics"

	FlagDescDebug = "Enable debug logging"
	FlagDescLang  = "Output language (en, es)"
	FlagDescJSON  = "Print results as JSON"
	FlagDescAddr  = "Listen address for the HTTP API"
	FlagDescURL   = "Fetch the address book from this http(s) URL"
	FlagDescUser  = "Basic auth user for --url (password read from the system keyring)"
	FlagDescICS   = "Also write an iCalendar file of the analysed birthdays to this path"

	MsgVersionOutput = "%s version %s (%s, %s) %s/%s\n"
	FormatBatchLine  = "%-30s %-12s %s\n"
	FormatBatchStats = "%d contacts, %d valid, %d invalid\n"
	FormatSignPair   = "%s / %s"
	ArgsAnalyze      = 3
)

// -----------------------------------------------------------------------------
// Environment Configuration
// -----------------------------------------------------------------------------

const (
	EnvLanguage     = "GOZODIAC_LANG"
	EnvListenAddr   = "GOZODIAC_ADDR"
	EnvDebug        = "GOZODIAC_DEBUG"
	EnvContactsURL  = "GOZODIAC_CONTACTS_URL"
	EnvContactsUser = "GOZODIAC_CONTACTS_USER"
	EnvFile         = ".env"
)

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultLanguage   = "en"
	DefaultListenAddr = "127.0.0.1:18081"
	SourceModeWeb     = "web"
	SourceModeLocal   = "local"
	UIDSalt           = "go-zodiac-v1-"
	FallbackName      = "Unknown"
)

// SupportedLanguages defines the list of available languages (ISO 639-1).
var SupportedLanguages = []string{"en", "es"}

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth    = 420
	ResultsWinWidth    = 640
	ResultsWinHeight   = 420
	MaxDayDigits       = 2
	MaxMonthDigits     = 2
	MaxYearDigits      = 4
	PrefLanguage       = "language"
	PrefLastRun        = "last_run_version"
	TablePlaceholder   = "Cell Content"
	SortIconAsc        = " ▲"
	SortIconDesc       = " ▼"
	ResultColumnsCount = 4
	VCardExtension     = ".vcf"
	CellEmpty          = "-"
	FormatLabelValue   = "%s: %s"

	// Table Column IDs
	ColIDName     = 0
	ColIDBirthday = 1
	ColIDWestern  = 2
	ColIDChinese  = 3

	// Table Layout
	ColWidthName     = 220
	ColWidthBirthday = 120
	ColWidthSign     = 130
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinResults     = "win_results_title"
	TKeyLblDay         = "lbl_day"
	TKeyLblMonth       = "lbl_month"
	TKeyLblYear        = "lbl_year"
	TKeyLblLanguage    = "lbl_language"
	TKeyBtnAnalyze     = "btn_analyze"
	TKeyBtnContacts    = "btn_contacts"
	TKeyLblValid       = "lbl_valid"
	TKeyLblInvalid     = "lbl_invalid"
	TKeyLblLeapYear    = "lbl_leap_year"
	TKeyLblWestern     = "lbl_western"
	TKeyLblChinese     = "lbl_chinese"
	TKeyColName        = "col_name"
	TKeyColBirthday    = "col_birthday"
	TKeyColWestern     = "col_western"
	TKeyColChinese     = "col_chinese"
	TKeyWordYes        = "word_yes"
	TKeyWordNo         = "word_no"
	TKeyErrYear        = "err_year"  // Requires Min, Max
	TKeyErrMonth       = "err_month" // Requires Min, Max
	TKeyErrDay         = "err_day"   // Requires Min, Max, Month
	TKeyErrNumber      = "err_number"
	TKeyResultValid    = "result_valid"   // Requires Day, Month, Year, Leap, Western, Chinese
	TKeyResultInvalid  = "result_invalid" // Requires Day, Month, Year, Error
	TKeyEvtSummary     = "event_summary"  // Requires Name, Western, Chinese
	TKeySignPrefix     = "sign_"
	TKeySignUnknown    = "sign_unknown"
	TKeySignOutOfRange = "sign_out_of_range"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion    = "2.0"
	ICalProdid     = "-//Go Zodiac//Engine//EN"
	ICalCalName    = "Zodiac Birthdays"
	ICalMethod     = "PUBLISH"
	ICalScale      = "GREGORIAN"
	ICalDomain     = "gozodiac"
	ICalYearlyRule = "FREQ=YEARLY"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRRule       = "RRULE"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	// StubVCalendar is returned when there is nothing to export.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	FormatSummary   = "%s: %s / %s"
	FormatUID       = "%s@%s"
	FormatHashInput = "%s|%s|%s"
	UIDHashLength   = 16
)

// -----------------------------------------------------------------------------
// Date Formats
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"

	RouteHealth       = "/healthz"
	RouteAPI          = "/api/v1"
	RouteAnalyze      = "/analyze"
	RouteDate         = "/dates/{year}/{month}/{day}"
	RouteCalendar     = "/calendar.ics"
	ParamDay          = "day"
	ParamMonth        = "month"
	ParamYear         = "year"
	ParamName         = "name"
	ParamLang         = "lang"
	HealthBody        = "ok"
	CacheMaxAge       = "public, max-age=86400"
	CalendarAttachKey = "attachment; filename=\"zodiac.ics\""
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType    = "Content-Type"
	HeaderCacheControl   = "Cache-Control"
	HeaderETag           = "ETag"
	HeaderXContentType   = "X-Content-Type-Options"
	HeaderUserAgent      = "User-Agent"
	HeaderIfNoneMatch    = "If-None-Match"
	HeaderAcceptLanguage = "Accept-Language"
	HeaderContentLang    = "Content-Language"
	HeaderDisposition    = "Content-Disposition"

	MimeJSON         = "application/json; charset=utf-8"
	MimeTextCalendar = "text/calendar; charset=utf-8"
	MimeTextPlain    = "text/plain; charset=utf-8"
	MimeNoSniff      = "nosniff"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidYear    = "invalid year"
	ErrInvalidMonth   = "invalid month"
	ErrInvalidDay     = "invalid day"
	ErrLocalPathEmpty = "configuration error: local path is empty"
	ErrWebURLEmpty    = "configuration error: web URL is empty"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrModeUnsupport  = "configuration error: unsupported source mode"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrVCardParse     = "failed to read vCard stream"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrDateParse      = "unable to parse date"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrAddrRequired   = "listen address is required"
	ErrLanguage       = "unsupported language"
	ErrConfigInvalid  = "configuration validation failed"
	ErrConfigBool     = "invalid boolean"
	ErrNotInteger     = "must be an integer"
	ErrMissingParam   = "missing parameter"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrKeyring        = "failed to read password from keyring"
	ErrWriteICS       = "failed to write iCalendar file"
	ErrEncodeJSON     = "failed to encode JSON"
	ErrInvalidDate    = "invalid date"
	ErrBatchFailed    = "address book analysis failed"
	ErrNoSource       = "no address book given: pass FILE or --url"
	ErrNegativeArg    = "negative values must follow \"--\", e.g. analyze -- -1 1 2000"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgAnalyzed      = "Date analyzed"
	MsgBatchStarted  = "Batch analysis started"
	MsgBatchDone     = "Batch analysis finished"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgCalendarBuilt = "Calendar generation successful"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgRequest       = "HTTP request"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgOpenResults   = "Opening results window"
	MsgSorted        = "Results sorted"
	MsgLangChanged   = "Interface language changed"
	MsgEnvLoaded     = "Environment file loaded"
	MsgCtxCancel     = "Context cancelled, quitting UI"
	MsgICSWritten    = "iCalendar file written"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyAddr      = "addr"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyValid     = "valid"
	LogKeyInvalid   = "invalid"
	LogKeyEvents    = "events"
	LogKeyDay       = "day"
	LogKeyMonth     = "month"
	LogKeyYear      = "year"
	LogKeyKind      = "kind"
	LogKeyMethod    = "method"
	LogKeyPath      = "path"
	LogKeyRequestID = "request_id"
	LogKeyDuration  = "duration_ms"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyCount     = "count"
	LogKeyCommand   = "command"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain    = "main"
	CompCLI     = "cli"
	CompEngine  = "engine"
	CompFetcher = "fetcher"
	CompServer  = "server"
	CompI18n    = "i18n"
	CompUI      = "ui"
	CompConfig  = "config"
)
