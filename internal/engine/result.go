package engine

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-zodiac/internal/config"
)

// ErrorKind classifies why a date was rejected.
type ErrorKind string

const (
	KindNone         ErrorKind = ""
	KindInvalidYear  ErrorKind = config.KindInvalidYear
	KindInvalidMonth ErrorKind = config.KindInvalidMonth
	KindInvalidDay   ErrorKind = config.KindInvalidDay
)

// Sentinel errors matched by AnalysisResult.Err.
var (
	ErrInvalidYear  = errors.New(config.ErrInvalidYear)
	ErrInvalidMonth = errors.New(config.ErrInvalidMonth)
	ErrInvalidDay   = errors.New(config.ErrInvalidDay)
)

// AnalysisResult is the outcome of Analyze. It is a value type and is never mutated.
//
// When ValidDate is true the zodiac fields are set and ErrorMessage is empty.
// Otherwise only ErrorMessage and ErrorKind are set and LeapYear is false.
type AnalysisResult struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`

	ValidDate bool `json:"validDate"`
	LeapYear  bool `json:"leapYear"`

	WesternZodiac string `json:"westernZodiac,omitempty"`
	ChineseZodiac string `json:"chineseZodiac,omitempty"`

	ErrorMessage string    `json:"errorMessage,omitempty"`
	ErrorKind    ErrorKind `json:"errorKind,omitempty"`
}

func failure(day, month, year int, kind ErrorKind, msg string) AnalysisResult {
	return AnalysisResult{
		Day:          day,
		Month:        month,
		Year:         year,
		ErrorMessage: msg,
		ErrorKind:    kind,
	}
}

// Err returns nil for a valid date, otherwise an error wrapping
// ErrInvalidYear, ErrInvalidMonth or ErrInvalidDay.
func (r AnalysisResult) Err() error {
	if r.ValidDate {
		return nil
	}
	var base error
	switch r.ErrorKind {
	case KindInvalidYear:
		base = ErrInvalidYear
	case KindInvalidMonth:
		base = ErrInvalidMonth
	default:
		base = ErrInvalidDay
	}
	return fmt.Errorf("%w: %s", base, r.ErrorMessage)
}

// String renders the result on one line.
func (r AnalysisResult) String() string {
	if !r.ValidDate {
		return fmt.Sprintf(config.FormatResultInvalid, r.Day, r.Month, r.Year, r.ErrorMessage)
	}
	leap := config.WordNo
	if r.LeapYear {
		leap = config.WordYes
	}
	return fmt.Sprintf(config.FormatResultValid, r.Day, r.Month, r.Year, leap, r.WesternZodiac, r.ChineseZodiac)
}
