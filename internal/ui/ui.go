package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-zodiac/internal/config"
	"github.com/tartampluch/go-zodiac/internal/engine"
	"github.com/tartampluch/go-zodiac/internal/locale"
)

// ZodiacApp encapsulates the UI state, preferences, and the analysis services.
type ZodiacApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	Translator  *locale.Translator
	Ctx         context.Context
	Batch       *engine.Batch

	// Form widgets
	DayEntry     *NumericalEntry
	MonthEntry   *NumericalEntry
	YearEntry    *NumericalEntry
	LangSelect   *widget.Select
	AnalyzeBtn   *widget.Button
	ContactsBtn  *widget.Button
	StatusLabel  *widget.Label
	LeapLabel    *widget.Label
	WesternLabel *widget.Label
	ChineseLabel *widget.Label
	form         *widget.Form

	last *engine.AnalysisResult

	// Batch results state
	ResultsMut    sync.RWMutex
	Results       []engine.ContactAnalysis
	resultsWindow fyne.Window
	resultsTable  *widget.Table
}

// NewZodiacApp constructs the application and wires dependencies.
func NewZodiacApp(a fyne.App, ctx context.Context, tr *locale.Translator, batch *engine.Batch) *ZodiacApp {
	return &ZodiacApp{
		App:         a,
		Preferences: a.Preferences(),
		Translator:  tr,
		Ctx:         ctx,
		Batch:       batch,
	}
}

// Run shows the main window and blocks in the fyne event loop.
func (app *ZodiacApp) Run() {
	app.ShowMainWindow()
	app.App.Run()
}

// Lang returns the persisted interface language.
func (app *ZodiacApp) Lang() string {
	return app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
}

// Msg translates key into the current interface language.
func (app *ZodiacApp) Msg(key string) string {
	return app.Translator.Msg(app.Lang(), key)
}

// ShowMainWindow builds the analysis form.
func (app *ZodiacApp) ShowMainWindow() {
	w := app.App.NewWindow(app.Msg(config.TKeyWinTitle))
	app.Window = w

	app.DayEntry = NewNumericalEntry(config.MaxDayDigits)
	app.MonthEntry = NewNumericalEntry(config.MaxMonthDigits)
	app.YearEntry = NewNumericalEntry(config.MaxYearDigits)

	app.LangSelect = widget.NewSelect(app.Translator.Languages(), nil)
	app.LangSelect.SetSelected(app.Lang())
	app.LangSelect.OnChanged = app.SetLanguage

	app.AnalyzeBtn = widget.NewButtonWithIcon("", theme.ConfirmIcon(), app.Analyze)
	app.AnalyzeBtn.Importance = widget.HighImportance
	app.ContactsBtn = widget.NewButtonWithIcon("", theme.FolderOpenIcon(), app.OpenContacts)

	app.StatusLabel = widget.NewLabel("")
	app.StatusLabel.Wrapping = fyne.TextWrapWord
	app.LeapLabel = widget.NewLabel("")
	app.WesternLabel = widget.NewLabel("")
	app.ChineseLabel = widget.NewLabel("")

	app.form = widget.NewForm(
		widget.NewFormItem("", app.DayEntry),
		widget.NewFormItem("", app.MonthEntry),
		widget.NewFormItem("", app.YearEntry),
		widget.NewFormItem("", app.LangSelect),
	)
	app.refreshLabels()

	results := widget.NewCard("", "", container.NewVBox(
		app.StatusLabel,
		app.LeapLabel,
		app.WesternLabel,
		app.ChineseLabel,
	))

	w.SetContent(container.NewPadded(container.NewVBox(
		app.form,
		container.NewGridWithColumns(2, app.ContactsBtn, app.AnalyzeBtn),
		results,
	)))
	w.Resize(fyne.NewSize(config.MainWindowWidth, w.Content().MinSize().Height))
	w.SetMaster()
	w.Show()
}

// SetLanguage persists lang and re-renders every visible text.
func (app *ZodiacApp) SetLanguage(lang string) {
	if lang == "" || lang == app.Lang() {
		return
	}
	app.Preferences.SetString(config.PrefLanguage, lang)
	slog.Info(config.MsgLangChanged,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyLang, lang)
	app.refreshLabels()
}

func (app *ZodiacApp) refreshLabels() {
	if app.Window != nil {
		app.Window.SetTitle(app.Msg(config.TKeyWinTitle))
	}
	if app.form != nil {
		app.form.Items[0].Text = app.Msg(config.TKeyLblDay)
		app.form.Items[1].Text = app.Msg(config.TKeyLblMonth)
		app.form.Items[2].Text = app.Msg(config.TKeyLblYear)
		app.form.Items[3].Text = app.Msg(config.TKeyLblLanguage)
		app.form.Refresh()
	}
	if app.AnalyzeBtn != nil {
		app.AnalyzeBtn.SetText(app.Msg(config.TKeyBtnAnalyze))
	}
	if app.ContactsBtn != nil {
		app.ContactsBtn.SetText(app.Msg(config.TKeyBtnContacts))
	}
	if app.last != nil {
		app.showResult(*app.last)
	}
	if app.resultsWindow != nil {
		app.resultsWindow.SetTitle(app.Msg(config.TKeyWinResults))
		app.resultsTable.Refresh()
	}
}

// ReadDate parses the three entries.
func (app *ZodiacApp) ReadDate() (day, month, year int, err error) {
	values := make([]int, 0, 3)
	for _, e := range []*NumericalEntry{app.DayEntry, app.MonthEntry, app.YearEntry} {
		v, convErr := strconv.Atoi(e.Text)
		if convErr != nil {
			return 0, 0, 0, errors.New(app.Msg(config.TKeyErrNumber))
		}
		values = append(values, v)
	}
	return values[0], values[1], values[2], nil
}

// Analyze runs the analyzer on the form input and displays the outcome.
func (app *ZodiacApp) Analyze() {
	day, month, year, err := app.ReadDate()
	if err != nil {
		app.last = nil
		app.clearResult()
		app.StatusLabel.SetText(err.Error())
		return
	}

	res := engine.Analyze(day, month, year)
	slog.Debug(config.MsgAnalyzed,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyDay, day, config.LogKeyMonth, month, config.LogKeyYear, year,
		config.LogKeyKind, res.ErrorKind)

	app.last = &res
	app.showResult(res)
}

func (app *ZodiacApp) showResult(res engine.AnalysisResult) {
	lang := app.Lang()
	if !res.ValidDate {
		app.clearResult()
		app.StatusLabel.SetText(fmt.Sprintf(config.FormatLabelValue,
			app.Msg(config.TKeyLblInvalid), app.Translator.Error(lang, res)))
		return
	}

	app.StatusLabel.SetText(app.Msg(config.TKeyLblValid))
	app.LeapLabel.SetText(fmt.Sprintf(config.FormatLabelValue,
		app.Msg(config.TKeyLblLeapYear), app.Translator.YesNo(lang, res.LeapYear)))
	app.WesternLabel.SetText(fmt.Sprintf(config.FormatLabelValue,
		app.Msg(config.TKeyLblWestern), app.Translator.Sign(lang, res.WesternZodiac)))
	app.ChineseLabel.SetText(fmt.Sprintf(config.FormatLabelValue,
		app.Msg(config.TKeyLblChinese), app.Translator.Sign(lang, res.ChineseZodiac)))
}

func (app *ZodiacApp) clearResult() {
	app.LeapLabel.SetText("")
	app.WesternLabel.SetText("")
	app.ChineseLabel.SetText("")
}

// OpenContacts asks for a vCard file and analyses it in the background.
func (app *ZodiacApp) OpenContacts() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()

		go func() {
			if err := app.LoadContacts(path); err != nil {
				fyne.Do(func() { dialog.ShowError(err, app.Window) })
				return
			}
			fyne.Do(app.ShowResultsWindow)
		}()
	}, app.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{config.VCardExtension}))
	fd.Show()
}

// LoadContacts analyses the address book at path and stores the results.
func (app *ZodiacApp) LoadContacts(path string) error {
	items, err := app.Batch.Run(app.Ctx, engine.SourceConfig{
		Mode:      config.SourceModeLocal,
		LocalPath: path,
	})
	if err != nil {
		slog.Error(config.ErrBatchFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyFile, path,
			config.LogKeyError, err)
		return err
	}

	app.ResultsMut.Lock()
	app.Results = items
	app.ResultsMut.Unlock()
	return nil
}
