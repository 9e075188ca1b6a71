package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/donaldgifford/auction-browser/pkg/logger"
)

// Keys written by Manager.
const (
	KeyToken = "auth_token"
	KeyTheme = "app_theme"
)

// Theme is the UI color scheme preference.
type Theme string

// Theme constants.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	DefaultTheme = ThemeDark
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
}

// Manager reads and writes session values through a Store.
type Manager struct {
	store Store
	log   *slog.Logger
}

// NewManager wraps store.
func NewManager(store Store, log *slog.Logger) *Manager {
	return &Manager{store: store, log: logger.OrDiscard(log)}
}

// Token returns the persisted bearer token, or "" when none is stored.
func (m *Manager) Token(ctx context.Context) (string, error) {
	tok, err := m.store.Get(ctx, KeyToken)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading session token: %w", err)
	}
	return tok, nil
}

// SaveToken persists the bearer token. An empty token clears it.
func (m *Manager) SaveToken(ctx context.Context, token string) error {
	if token == "" {
		return m.ClearToken(ctx)
	}
	if err := m.store.Set(ctx, KeyToken, token); err != nil {
		return fmt.Errorf("saving session token: %w", err)
	}
	m.log.Debug("session token saved")
	return nil
}

// ClearToken removes the persisted bearer token.
func (m *Manager) ClearToken(ctx context.Context) error {
	if err := m.store.Delete(ctx, KeyToken); err != nil {
		return fmt.Errorf("clearing session token: %w", err)
	}
	m.log.Debug("session token cleared")
	return nil
}

// Theme returns the stored theme, or DefaultTheme when none or an
// unrecognized value is stored.
func (m *Manager) Theme(ctx context.Context) (Theme, error) {
	raw, err := m.store.Get(ctx, KeyTheme)
	if errors.Is(err, ErrNotFound) {
		return DefaultTheme, nil
	}
	if err != nil {
		return DefaultTheme, fmt.Errorf("loading theme: %w", err)
	}
	theme, err := ParseTheme(raw)
	if err != nil {
		m.log.Warn("ignoring stored theme", "value", raw)
		return DefaultTheme, nil
	}
	return theme, nil
}

// SetTheme persists the theme preference.
func (m *Manager) SetTheme(ctx context.Context, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	if err := m.store.Set(ctx, KeyTheme, string(t)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}

// ToggleTheme flips between light and dark and returns the new value.
func (m *Manager) ToggleTheme(ctx context.Context) (Theme, error) {
	cur, err := m.Theme(ctx)
	if err != nil {
		return cur, err
	}
	next := ThemeLight
	if cur == ThemeLight {
		next = ThemeDark
	}
	if err := m.SetTheme(ctx, next); err != nil {
		return cur, err
	}
	return next, nil
}
