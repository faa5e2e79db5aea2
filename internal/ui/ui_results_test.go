package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-zodiac/internal/config"
	"github.com/tartampluch/go-zodiac/internal/engine"
)

func contact(name string, day, month, year int) engine.ContactAnalysis {
	return engine.ContactFor(name, engine.Analyze(day, month, year))
}

func names(items []engine.ContactAnalysis) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

// -----------------------------------------------------------------------------
// Sorting Logic Tests
// -----------------------------------------------------------------------------

func TestSortResults_Names(t *testing.T) {
	data := []engine.ContactAnalysis{
		contact("charlie", 1, 1, 2000),
		contact("Bob", 1, 1, 2000),
		contact("alice", 1, 1, 2000),
	}

	SortResults(data, config.ColIDName, true)
	assert.Equal(t, []string{"alice", "Bob", "charlie"}, names(data), "sorting is case-insensitive")

	SortResults(data, config.ColIDName, false)
	assert.Equal(t, []string{"charlie", "Bob", "alice"}, names(data))
}

func TestSortResults_Birthday(t *testing.T) {
	data := []engine.ContactAnalysis{
		contact("Late", 31, 12, 2005),
		contact("Early", 1, 1, 2000),
		contact("Middle", 15, 6, 2002),
		contact("Twin B", 15, 6, 2002),
	}

	SortResults(data, config.ColIDBirthday, true)
	assert.Equal(t, []string{"Early", "Middle", "Twin B", "Late"}, names(data), "ties fall back to the name")
}

// TestSortResults_SignsInvalidLast keeps invalid dates at the bottom of an ascending sign sort.
func TestSortResults_SignsInvalidLast(t *testing.T) {
	data := []engine.ContactAnalysis{
		contact("Bad", 1, 1, 1990),
		contact("Leo", 1, 8, 2004),    // Leo / Monkey
		contact("Aries", 1, 4, 2000),  // Aries / Dragon
		contact("Taurus", 1, 5, 2005), // Taurus / Rooster
		contact("Gemini", 1, 6, 2001), // Gemini / Snake
	}

	SortResults(data, config.ColIDWestern, true)
	assert.Equal(t, []string{"Aries", "Gemini", "Leo", "Taurus", "Bad"}, names(data))

	SortResults(data, config.ColIDChinese, true)
	assert.Equal(t, []string{"Aries", "Leo", "Taurus", "Gemini", "Bad"}, names(data))

	SortResults(data, config.ColIDChinese, false)
	assert.Equal(t, "Bad", data[0].Name, "descending order reverses the invalid placement")
}

// -----------------------------------------------------------------------------
// Table Formatting Tests
// -----------------------------------------------------------------------------

func TestCellText(t *testing.T) {
	app := setupTestApp(t)
	valid := contact("Ada", 29, 2, 2004)
	invalid := contact("Old", 1, 1, 1990)

	tests := []struct {
		name string
		lang string
		item engine.ContactAnalysis
		col  int
		want string
	}{
		{"Name", "en", valid, config.ColIDName, "Ada"},
		{"Birthday", "en", valid, config.ColIDBirthday, "2004-02-29"},
		{"Western", "en", valid, config.ColIDWestern, "Pisces"},
		{"Chinese", "en", valid, config.ColIDChinese, "Monkey"},
		{"WesternSpanish", "es", valid, config.ColIDWestern, "Piscis"},
		{"ChineseSpanish", "es", valid, config.ColIDChinese, "Mono"},
		{"InvalidWesternShowsError", "en", invalid, config.ColIDWestern, "year must be between 2000 and 2005"},
		{"InvalidChinese", "en", invalid, config.ColIDChinese, config.CellEmpty},
		{"UnknownColumn", "en", valid, 9, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.Preferences.SetString(config.PrefLanguage, tt.lang)
			assert.Equal(t, tt.want, app.CellText(tt.item, tt.col))
		})
	}
}

func TestHeaderText(t *testing.T) {
	app := setupTestApp(t)

	assert.Equal(t, "Name"+config.SortIconAsc, app.headerText(config.ColIDName, config.ColIDName, true))
	assert.Equal(t, "Name"+config.SortIconDesc, app.headerText(config.ColIDName, config.ColIDName, false))
	assert.Equal(t, "Chinese", app.headerText(config.ColIDChinese, config.ColIDName, true))
}

// -----------------------------------------------------------------------------
// Window Tests
// -----------------------------------------------------------------------------

// TestResultsWindow_Singleton verifies a second open focuses the existing window.
func TestResultsWindow_Singleton(t *testing.T) {
	app := setupTestApp(t)
	require.NoError(t, app.LoadContacts(writeAddressBook(t)))

	app.ShowResultsWindow()
	first := app.resultsWindow
	require.NotNil(t, first)
	assert.Equal(t, "Address book analysis", first.Title())

	app.ShowResultsWindow()
	assert.Same(t, first, app.resultsWindow)

	first.Close()
	assert.Nil(t, app.resultsWindow, "closing the window releases the singleton")
}

func TestResultsWindow_RetitledOnLanguageChange(t *testing.T) {
	app := setupTestApp(t)
	require.NoError(t, app.LoadContacts(writeAddressBook(t)))
	app.ShowResultsWindow()

	app.SetLanguage("es")

	assert.Equal(t, "Análisis de la libreta de direcciones", app.resultsWindow.Title())
}
