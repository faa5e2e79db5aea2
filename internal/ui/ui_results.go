package ui

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-zodiac/internal/config"
	"github.com/tartampluch/go-zodiac/internal/engine"
)

// SortResults orders items in place by the given table column.
// Invalid dates sort after valid ones in ascending order; ties fall back to the name.
func SortResults(items []engine.ContactAnalysis, col int, asc bool) {
	slices.SortStableFunc(items, func(a, b engine.ContactAnalysis) int {
		c := compareColumn(a, b, col)
		if c == 0 {
			c = cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
		if !asc {
			return -c
		}
		return c
	})
}

func compareColumn(a, b engine.ContactAnalysis, col int) int {
	switch col {
	case config.ColIDBirthday:
		return cmp.Compare(dateKey(a.Result), dateKey(b.Result))
	case config.ColIDWestern, config.ColIDChinese:
		if a.Result.ValidDate != b.Result.ValidDate {
			if a.Result.ValidDate {
				return -1
			}
			return 1
		}
		if col == config.ColIDChinese {
			return cmp.Compare(a.Result.ChineseZodiac, b.Result.ChineseZodiac)
		}
		return cmp.Compare(a.Result.WesternZodiac, b.Result.WesternZodiac)
	}
	return 0
}

func dateKey(r engine.AnalysisResult) int {
	return r.Year*10000 + r.Month*100 + r.Day
}

// CellText renders one table cell in the current interface language.
func (app *ZodiacApp) CellText(item engine.ContactAnalysis, col int) string {
	lang := app.Lang()
	r := item.Result

	switch col {
	case config.ColIDName:
		return item.Name
	case config.ColIDBirthday:
		return item.Birthday
	case config.ColIDWestern:
		if !r.ValidDate {
			return app.Translator.Error(lang, r)
		}
		return app.Translator.Sign(lang, r.WesternZodiac)
	case config.ColIDChinese:
		if !r.ValidDate {
			return config.CellEmpty
		}
		return app.Translator.Sign(lang, r.ChineseZodiac)
	}
	return ""
}

func (app *ZodiacApp) headerText(col, sortCol int, asc bool) string {
	var key string
	switch col {
	case config.ColIDName:
		key = config.TKeyColName
	case config.ColIDBirthday:
		key = config.TKeyColBirthday
	case config.ColIDWestern:
		key = config.TKeyColWestern
	case config.ColIDChinese:
		key = config.TKeyColChinese
	}

	text := app.Msg(key)
	if col == sortCol {
		if asc {
			text += config.SortIconAsc
		} else {
			text += config.SortIconDesc
		}
	}
	return text
}

// ShowResultsWindow displays the last batch analysis in a sortable table.
// Only one results window exists; a second call focuses it.
func (app *ZodiacApp) ShowResultsWindow() {
	if app.resultsWindow != nil {
		app.resultsWindow.RequestFocus()
		return
	}

	app.resultsWindow = app.App.NewWindow(app.Msg(config.TKeyWinResults))
	app.resultsWindow.Resize(fyne.NewSize(config.ResultsWinWidth, config.ResultsWinHeight))

	// Local copy so sorting never races with a reload.
	app.ResultsMut.RLock()
	rows := make([]engine.ContactAnalysis, len(app.Results))
	copy(rows, app.Results)
	app.ResultsMut.RUnlock()

	slog.Info(config.MsgOpenResults,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(rows))

	sortCol := config.ColIDName
	sortAsc := true
	SortResults(rows, sortCol, sortAsc)

	table := widget.NewTable(
		func() (int, int) {
			return len(rows), config.ResultColumnsCount
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			if id.Row >= len(rows) {
				return
			}
			o.(*widget.Label).SetText(app.CellText(rows[id.Row], id.Col))
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton(config.TablePlaceholder, func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)
		btn.SetText(app.headerText(id.Col, sortCol, sortAsc))
		btn.OnTapped = func() {
			if sortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				sortCol = id.Col
				sortAsc = true
			}
			SortResults(rows, sortCol, sortAsc)
			slog.Debug(config.MsgSorted,
				config.LogKeyComponent, config.CompUI,
				config.LogKeySortCol, sortCol,
				config.LogKeySortAsc, sortAsc)
			table.Refresh()
		}
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDBirthday, config.ColWidthBirthday)
	table.SetColumnWidth(config.ColIDWestern, config.ColWidthSign)
	table.SetColumnWidth(config.ColIDChinese, config.ColWidthSign)

	app.resultsTable = table
	app.resultsWindow.SetContent(container.NewBorder(nil, nil, nil, nil, table))
	app.resultsWindow.SetOnClosed(func() {
		app.resultsWindow = nil
		app.resultsTable = nil
	})
	app.resultsWindow.Show()
}
