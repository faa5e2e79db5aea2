package engine

import (
	"fmt"

	"github.com/tartampluch/go-zodiac/internal/config"
)

// daysInMonth is indexed by month; index 0 is unused.
var daysInMonth = [...]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// chineseSigns covers config.MinYear through config.MaxYear.
var chineseSigns = [...]string{"Dragon", "Snake", "Horse", "Goat", "Monkey", "Rooster"}

// westernCusp describes a month: days up to and including Last belong to Early,
// later days belong to Late.
type westernCusp struct {
	Last  int
	Early string
	Late  string
}

var westernCusps = [...]westernCusp{
	{},
	{19, "Capricorn", "Aquarius"},
	{18, "Aquarius", "Pisces"},
	{20, "Pisces", "Aries"},
	{19, "Aries", "Taurus"},
	{20, "Taurus", "Gemini"},
	{20, "Gemini", "Cancer"},
	{22, "Cancer", "Leo"},
	{22, "Leo", "Virgo"},
	{22, "Virgo", "Libra"},
	{22, "Libra", "Scorpio"},
	{21, "Scorpio", "Sagittarius"},
	{21, "Sagittarius", "Capricorn"},
}

// Analyze validates a date and derives its leap year flag and zodiac signs.
// Checks run in order (year, month, day) and the first failure is reported.
// It never returns an error: a failed check yields a result with ValidDate false.
func Analyze(day, month, year int) AnalysisResult {
	if year < config.MinYear || year > config.MaxYear {
		return failure(day, month, year, KindInvalidYear,
			fmt.Sprintf(config.MsgInvalidYear, config.MinYear, config.MaxYear))
	}

	if month < config.MinMonth || month > config.MaxMonth {
		return failure(day, month, year, KindInvalidMonth,
			fmt.Sprintf(config.MsgInvalidMonth, config.MinMonth, config.MaxMonth))
	}

	leap := IsLeapYear(year)

	maxDays := MaxDaysInMonth(month, leap)
	if day < config.MinDay || day > maxDays {
		return failure(day, month, year, KindInvalidDay,
			fmt.Sprintf(config.MsgInvalidDay, config.MinDay, maxDays, month))
	}

	return AnalysisResult{
		Day:           day,
		Month:         month,
		Year:          year,
		ValidDate:     true,
		LeapYear:      leap,
		WesternZodiac: WesternZodiac(day, month),
		ChineseZodiac: ChineseZodiac(year),
	}
}

// IsLeapYear applies the Gregorian rule to any year.
func IsLeapYear(year int) bool {
	return (year%config.LeapCycle == 0 && year%config.CenturyCycle != 0) || year%config.QuadCentennial == 0
}

// MaxDaysInMonth returns the number of days of month, or 0 when month is not 1..12.
func MaxDaysInMonth(month int, leapYear bool) int {
	if month < config.MinMonth || month > config.MaxMonth {
		return 0
	}
	if month == 2 && leapYear {
		return config.FebruaryLeapDays
	}
	return daysInMonth[month]
}

// WesternZodiac returns the sign for day/month. The day is not range-checked.
// An invalid month yields config.SignUnknown.
func WesternZodiac(day, month int) string {
	if month < config.MinMonth || month > config.MaxMonth {
		return config.SignUnknown
	}
	c := westernCusps[month]
	if day <= c.Last {
		return c.Early
	}
	return c.Late
}

// ChineseZodiac returns the animal for year, ignoring the lunar new year.
// Years outside the supported window yield config.SignOutOfRange.
func ChineseZodiac(year int) string {
	if year < config.MinYear || year > config.MaxYear {
		return config.SignOutOfRange
	}
	return chineseSigns[year-config.MinYear]
}

// WesternSigns lists the twelve western signs starting with Capricorn.
func WesternSigns() []string {
	signs := make([]string, 0, config.MaxMonth)
	for _, c := range westernCusps[1:] {
		signs = append(signs, c.Early)
	}
	return signs
}

// ChineseSigns lists the animals of the supported years in order.
func ChineseSigns() []string {
	return append([]string(nil), chineseSigns[:]...)
}
