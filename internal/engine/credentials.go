package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-zodiac/internal/config"
	"github.com/zalando/go-keyring"
)

// LookupPassword reads the password stored for user under config.KeyringService.
// A missing entry is not an error: the source is then fetched without a password.
func LookupPassword(user string) (string, error) {
	if user == "" {
		return "", nil
	}
	pass, err := keyring.Get(config.KeyringService, user)
	if errors.Is(err, keyring.ErrNotFound) {
		slog.Debug(config.MsgPassFail,
			config.LogKeyComponent, config.CompFetcher,
			config.LogKeyUser, user)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrKeyring, err)
	}
	return pass, nil
}
