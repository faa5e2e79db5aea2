package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-zodiac/internal/config"
	"github.com/tartampluch/go-zodiac/internal/engine"
	"github.com/tartampluch/go-zodiac/internal/locale"
	"github.com/tartampluch/go-zodiac/internal/server"
	"github.com/tartampluch/go-zodiac/internal/ui"
)

// cli carries the state shared by every subcommand once setup has run.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	// Persistent flags
	debug bool
	lang  string

	settings   *config.Settings
	translator *locale.Translator
	logCloser  io.Closer
}

// batchReport is the JSON output of the contacts command.
type batchReport struct {
	Contacts []engine.ContactAnalysis `json:"contacts"`
	Stats    engine.BatchStats        `json:"stats"`
}

func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, *cli) {
	c := &cli{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:               config.CommandName,
		Short:             config.CmdDescRoot,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolVar(&c.debug, config.FlagDebug, false, config.FlagDescDebug)
	root.PersistentFlags().StringVar(&c.lang, config.FlagLang, "", config.FlagDescLang)

	root.AddCommand(
		c.newAnalyzeCmd(),
		c.newContactsCmd(),
		c.newServeCmd(),
		c.newGUICmd(),
		c.newVersionCmd(),
	)
	return root, c
}

// setup loads the settings, applies flag overrides, and starts logging.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed(config.FlagDebug) {
		settings.Debug = c.debug
	}
	if c.lang != "" {
		settings.Language = c.lang
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrConfigInvalid, err)
	}
	c.settings = settings

	c.logCloser = setupLogging(settings.Debug, c.stderr)
	logStartupInfo(cmd.Name())

	tr, err := locale.New()
	if err != nil {
		return err
	}
	c.translator = tr
	return nil
}

func (c *cli) close() {
	if c.logCloser != nil {
		_ = c.logCloser.Close() // Best effort close
		c.logCloser = nil
	}
}

// -----------------------------------------------------------------------------
// analyze
// -----------------------------------------------------------------------------

func (c *cli) newAnalyzeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     config.CmdAnalyze,
		Short:   config.CmdDescAnalyze,
		Example: config.CmdExampleAnalyze,
		Args:    cobra.ExactArgs(config.ArgsAnalyze),
		RunE: func(_ *cobra.Command, args []string) error {
			names := []string{config.ParamDay, config.ParamMonth, config.ParamYear}
			values := make([]int, len(args))
			for i, raw := range args {
				v, err := strconv.Atoi(raw)
				if err != nil {
					return fmt.Errorf("%s %s: %q", names[i], config.ErrNotInteger, raw)
				}
				values[i] = v
			}

			res := engine.Analyze(values[0], values[1], values[2])
			lang := c.settings.Language

			if asJSON {
				if err := c.writeJSON(server.AnalysisResponse{
					AnalysisResult: res,
					Description:    c.translator.Describe(lang, res),
					Language:       lang,
				}); err != nil {
					return err
				}
			} else {
				_, _ = fmt.Fprintln(c.stdout, c.translator.Describe(lang, res))
			}

			if !res.ValidDate {
				return fmt.Errorf("%w: %w", errInvalidDate, res.Err())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, config.FlagJSON, false, config.FlagDescJSON)
	cmd.SetFlagErrorFunc(negativeArgHint)
	return cmd
}

// negativeArgHint explains "unknown shorthand flag: '1' in -1", which is how pflag
// reports a negative DAY, MONTH or YEAR given before "--".
func negativeArgHint(_ *cobra.Command, err error) error {
	msg := err.Error()
	i := strings.LastIndex(msg, " in -")
	if i < 0 {
		return err
	}
	if _, convErr := strconv.Atoi(msg[i+len(" in "):]); convErr != nil {
		return err
	}
	return fmt.Errorf("%w (%s)", err, config.ErrNegativeArg)
}

// -----------------------------------------------------------------------------
// contacts
// -----------------------------------------------------------------------------

func (c *cli) newContactsCmd() *cobra.Command {
	var (
		asJSON  bool
		webURL  string
		webUser string
		icsPath string
	)

	cmd := &cobra.Command{
		Use:   config.CmdContacts,
		Short: config.CmdDescContacts,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if webURL == "" {
				webURL = c.settings.ContactsURL
			}
			if webUser == "" {
				webUser = c.settings.ContactsUser
			}

			var src engine.SourceConfig
			switch {
			case len(args) == 1:
				src = engine.SourceConfig{Mode: config.SourceModeLocal, LocalPath: args[0]}
			case webURL != "":
				pass, err := engine.LookupPassword(webUser)
				if err != nil {
					return err
				}
				src = engine.SourceConfig{
					Mode:    config.SourceModeWeb,
					WebURL:  webURL,
					WebUser: webUser,
					WebPass: pass,
				}
			default:
				return errors.New(config.ErrNoSource)
			}

			batch := &engine.Batch{Fetcher: engine.NewHTTPFetcher()}
			items, err := batch.Run(cmd.Context(), src)
			if err != nil {
				return err
			}

			if icsPath != "" {
				if err := c.writeCalendar(icsPath, items); err != nil {
					return err
				}
			}

			stats := engine.Summarize(items)
			if asJSON {
				return c.writeJSON(batchReport{Contacts: items, Stats: stats})
			}
			c.printBatch(items, stats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, config.FlagJSON, false, config.FlagDescJSON)
	cmd.Flags().StringVar(&webURL, config.FlagURL, "", config.FlagDescURL)
	cmd.Flags().StringVar(&webUser, config.FlagUser, "", config.FlagDescUser)
	cmd.Flags().StringVar(&icsPath, config.FlagICS, "", config.FlagDescICS)
	return cmd
}

func (c *cli) printBatch(items []engine.ContactAnalysis, stats engine.BatchStats) {
	lang := c.settings.Language
	for _, it := range items {
		detail := c.translator.Error(lang, it.Result)
		if it.Result.ValidDate {
			detail = fmt.Sprintf(config.FormatSignPair,
				c.translator.Sign(lang, it.Result.WesternZodiac),
				c.translator.Sign(lang, it.Result.ChineseZodiac))
		}
		_, _ = fmt.Fprintf(c.stdout, config.FormatBatchLine, it.Name, it.Birthday, detail)
	}
	_, _ = fmt.Fprintf(c.stdout, config.FormatBatchStats, stats.Total, stats.Valid, stats.Invalid)
}

func (c *cli) writeCalendar(path string, items []engine.ContactAnalysis) error {
	lang := c.settings.Language
	cal := &engine.Calendar{
		FormatSummary: func(name string, r engine.AnalysisResult) string {
			return c.translator.Summary(lang, name, r)
		},
	}
	data, err := cal.Encode(items)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteICS, err)
	}
	slog.Info(config.MsgICSWritten,
		config.LogKeyComponent, config.CompCLI,
		config.LogKeyFile, path)
	return nil
}

func (c *cli) writeJSON(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%s: %w", config.ErrEncodeJSON, err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// serve, gui, version
// -----------------------------------------------------------------------------

func (c *cli) newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   config.CmdServe,
		Short: config.CmdDescServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				c.settings.ListenAddr = addr
				if err := c.settings.Validate(); err != nil {
					return fmt.Errorf("%s: %w", config.ErrConfigInvalid, err)
				}
			}

			srv := server.NewAPIServer(c.settings.ListenAddr, c.settings.Language, c.translator)
			if err := srv.Start(cmd.Context()); err != nil {
				return err
			}
			slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, config.FlagAddr, "", config.FlagDescAddr)
	return cmd
}

func (c *cli) newGUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdGUI,
		Short: config.CmdDescGUI,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a := app.NewWithID(config.AppID)

			// Record the version for potential migration logic in future updates.
			a.Preferences().SetString(config.PrefLastRun, config.Version)
			if c.lang != "" {
				a.Preferences().SetString(config.PrefLanguage, c.lang)
			}

			gui := ui.NewZodiacApp(a, ctx, c.translator, &engine.Batch{Fetcher: engine.NewHTTPFetcher()})

			// Watch for context cancellation to quit the UI gracefully.
			go func() {
				<-ctx.Done()
				slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
				a.Quit()
			}()

			// Blocks until the main window closes.
			gui.Run()
			slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
			return nil
		},
	}
}

func (c *cli) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdVersion,
		Short: config.CmdDescVersion,
		Args:  cobra.NoArgs,
		// Version needs neither settings nor logging.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(*cobra.Command, []string) {
			printVersion(c.stdout)
		},
	}
}
