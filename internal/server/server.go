package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tartampluch/go-zodiac/internal/config"
	"github.com/tartampluch/go-zodiac/internal/engine"
	"github.com/tartampluch/go-zodiac/internal/locale"
)

// AnalysisResponse is the JSON body of the analyze endpoints.
type AnalysisResponse struct {
	engine.AnalysisResult
	Description string `json:"description"`
	Language    string `json:"language"`
}

// ErrorResponse is the JSON body of a rejected request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// APIServer exposes the analyzer over HTTP.
type APIServer struct {
	Addr        string
	DefaultLang string

	translator *locale.Translator
	clock      engine.Clock
	router     chi.Router
}

// NewAPIServer wires the routes. defaultLang is used when a request names no language.
func NewAPIServer(addr, defaultLang string, tr *locale.Translator) *APIServer {
	s := &APIServer{
		Addr:        addr,
		DefaultLang: defaultLang,
		translator:  tr,
		clock:       engine.RealClock{},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get(config.RouteHealth, s.handleHealth)
	r.Route(config.RouteAPI, func(r chi.Router) {
		r.Get(config.RouteAnalyze, s.handleAnalyzeQuery)
		r.Get(config.RouteDate, s.handleAnalyzePath)
		r.Get(config.RouteCalendar, s.handleCalendar)
	})

	s.router = r
	return s
}

// Handler returns the routed handler.
func (s *APIServer) Handler() http.Handler {
	return s.router
}

// Start listens on Addr and serves until ctx is cancelled.
func (s *APIServer) Start(ctx context.Context) error {
	if s.Addr == "" {
		return errors.New(config.ErrAddrRequired)
	}
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully.
func (s *APIServer) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)
	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyAddr, ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil
	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

func (s *APIServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(config.HeaderContentType, config.MimeTextPlain)
	_, _ = w.Write([]byte(config.HealthBody))
}

func (s *APIServer) handleAnalyzeQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.analyze(w, r, q.Get(config.ParamDay), q.Get(config.ParamMonth), q.Get(config.ParamYear))
}

func (s *APIServer) handleAnalyzePath(w http.ResponseWriter, r *http.Request) {
	s.analyze(w, r,
		chi.URLParam(r, config.ParamDay),
		chi.URLParam(r, config.ParamMonth),
		chi.URLParam(r, config.ParamYear))
}

func (s *APIServer) analyze(w http.ResponseWriter, r *http.Request, rawDay, rawMonth, rawYear string) {
	day, month, year, err := parseDate(rawDay, rawMonth, rawYear)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lang := s.language(r)
	res := engine.Analyze(day, month, year)
	slog.Debug(config.MsgAnalyzed,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyDay, day, config.LogKeyMonth, month, config.LogKeyYear, year,
		config.LogKeyKind, res.ErrorKind)

	body, err := json.Marshal(AnalysisResponse{
		AnalysisResult: res,
		Description:    s.translator.Describe(lang, res),
		Language:       lang,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, config.ErrEncodeJSON)
		return
	}

	w.Header().Set(config.HeaderContentLang, lang)
	writeCached(w, r, config.MimeJSON, body)
}

func (s *APIServer) handleCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	day, month, year, err := parseDate(q.Get(config.ParamDay), q.Get(config.ParamMonth), q.Get(config.ParamYear))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lang := s.language(r)
	res := engine.Analyze(day, month, year)
	if !res.ValidDate {
		writeError(w, http.StatusUnprocessableEntity, s.translator.Error(lang, res))
		return
	}

	cal := &engine.Calendar{
		Clock: s.clock,
		FormatSummary: func(name string, r engine.AnalysisResult) string {
			return s.translator.Summary(lang, name, r)
		},
	}
	data, err := cal.Encode([]engine.ContactAnalysis{engine.ContactFor(q.Get(config.ParamName), res)})
	if err != nil {
		slog.Error(config.ErrICalEncode, config.LogKeyComponent, config.CompServer, config.LogKeyError, err)
		writeError(w, http.StatusInternalServerError, config.ErrICalEncode)
		return
	}

	w.Header().Set(config.HeaderDisposition, config.CalendarAttachKey)
	w.Header().Set(config.HeaderContentLang, lang)
	// DTSTAMP changes on every request, so the calendar is not cached.
	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	if _, err := w.Write(data); err != nil {
		logWriteError(err)
	}
}

// language resolves the response language: ?lang=, then Accept-Language, then the default.
func (s *APIServer) language(r *http.Request) string {
	if lang := r.URL.Query().Get(config.ParamLang); lang != "" && slices.Contains(s.translator.Languages(), lang) {
		return lang
	}
	if header := r.Header.Get(config.HeaderAcceptLanguage); header != "" {
		return s.translator.Match(header)
	}
	return s.DefaultLang
}

func parseDate(rawDay, rawMonth, rawYear string) (day, month, year int, err error) {
	parse := func(name, raw string) int {
		if err != nil {
			return 0
		}
		if raw == "" {
			err = fmt.Errorf("%s: %s", config.ErrMissingParam, name)
			return 0
		}
		v, perr := strconv.Atoi(raw)
		if perr != nil {
			err = fmt.Errorf("%s %s: %q", name, config.ErrNotInteger, raw)
		}
		return v
	}
	day = parse(config.ParamDay, rawDay)
	month = parse(config.ParamMonth, rawMonth)
	year = parse(config.ParamYear, rawYear)
	return day, month, year, err
}

// writeCached serves body with a content ETag and honours If-None-Match.
func writeCached(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	hash := sha256.Sum256(body)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	w.Header().Set(config.HeaderContentType, contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheMaxAge)
	w.Header().Set(config.HeaderETag, etag)

	if r.Header.Get(config.HeaderIfNoneMatch) == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if _, err := w.Write(body); err != nil {
		logWriteError(err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		logWriteError(err)
	}
}

func logWriteError(err error) {
	slog.Error(config.ErrWriteResp,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyError, err)
}

// requestLogger logs one line per request once it has been served.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		slog.Info(config.MsgRequest,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyMethod, r.Method,
			config.LogKeyPath, r.URL.Path,
			config.LogKeyStatus, ww.Status(),
			config.LogKeyRequestID, middleware.GetReqID(r.Context()),
			config.LogKeyDuration, time.Since(start).Milliseconds())
	})
}
