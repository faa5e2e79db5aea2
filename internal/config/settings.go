package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
)

// Settings holds the runtime configuration read from the environment.
type Settings struct {
	Language     string
	ListenAddr   string
	Debug        bool
	ContactsURL  string
	ContactsUser string
}

// Load reads Settings from the process environment.
// A .env file in the working directory is applied first when present;
// variables already set in the environment take precedence over it.
// Only malformed values fail here; call Validate once flag overrides are applied.
func Load() (*Settings, error) {
	if err := godotenv.Load(EnvFile); err == nil {
		slog.Debug(MsgEnvLoaded, LogKeyComponent, CompConfig, LogKeyFile, EnvFile)
	}

	s := &Settings{
		Language:     getEnvOrDefault(EnvLanguage, DefaultLanguage),
		ListenAddr:   getEnvOrDefault(EnvListenAddr, DefaultListenAddr),
		ContactsURL:  os.Getenv(EnvContactsURL),
		ContactsUser: os.Getenv(EnvContactsUser),
	}

	if raw := os.Getenv(EnvDebug); raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %s %s: %q", ErrConfigInvalid, EnvDebug, ErrConfigBool, raw)
		}
		s.Debug = debug
	}

	return s, nil
}

// Validate checks the listen address and language.
func (s *Settings) Validate() error {
	var errs []error

	if s.ListenAddr == "" {
		errs = append(errs, errors.New(ErrAddrRequired))
	} else if _, _, err := net.SplitHostPort(s.ListenAddr); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", EnvListenAddr, err))
	}

	if !slices.Contains(SupportedLanguages, s.Language) {
		errs = append(errs, fmt.Errorf("%s: %q", ErrLanguage, s.Language))
	}

	return errors.Join(errs...)
}

// getEnvOrDefault returns the environment value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
