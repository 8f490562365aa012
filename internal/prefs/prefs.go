// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package prefs provides the durable per-client key-value store holding
// the Gemini credential and the seasonal theme preference. Values are
// kept in Valkey under fixed keys with no expiry, written on every
// change, and cleared wholesale by an explicit logout.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Theme preference values ("Summer Mantle" = light, "Winter Mantle" = dark).
const (
	ThemeSummer = "summer"
	ThemeWinter = "winter"
)

// Connect creates a Valkey client and verifies the connection with a ping.
func Connect(host, port, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", fmt.Sprintf("%s:%s", host, port))
	return client, nil
}

// Store persists client preferences in Valkey.
type Store struct {
	client *redis.Client
}

// NewStore creates a preference store backed by the given Valkey client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func keyAPIKey(id string) string { return "prefs:" + id + ":api_key" }
func keyTheme(id string) string  { return "prefs:" + id + ":theme" }

// APIKey returns the stored credential, or "" when none is set.
func (s *Store) APIKey(ctx context.Context, id string) (string, error) {
	return s.get(ctx, keyAPIKey(id))
}

// SetAPIKey stores the credential with no expiry.
func (s *Store) SetAPIKey(ctx context.Context, id, apiKey string) error {
	if err := s.client.Set(ctx, keyAPIKey(id), apiKey, 0).Err(); err != nil {
		return fmt.Errorf("prefs: set api key: %w", err)
	}
	return nil
}

// Theme returns the stored seasonal preference, defaulting to summer.
func (s *Store) Theme(ctx context.Context, id string) (string, error) {
	theme, err := s.get(ctx, keyTheme(id))
	if err != nil {
		return "", err
	}
	if theme == "" {
		theme = ThemeSummer
	}
	return theme, nil
}

// SetTheme stores the seasonal preference with no expiry.
func (s *Store) SetTheme(ctx context.Context, id, theme string) error {
	if theme != ThemeSummer && theme != ThemeWinter {
		return fmt.Errorf("prefs: unknown theme %q", theme)
	}
	if err := s.client.Set(ctx, keyTheme(id), theme, 0).Err(); err != nil {
		return fmt.Errorf("prefs: set theme: %w", err)
	}
	return nil
}

// Clear removes everything stored for the client. This is the logout
// path; there is no automatic expiry.
func (s *Store) Clear(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyAPIKey(id), keyTheme(id)).Err(); err != nil {
		return fmt.Errorf("prefs: clear: %w", err)
	}
	return nil
}

// get reads a key, mapping redis.Nil onto the empty string.
func (s *Store) get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("prefs: get %s: %w", key, err)
	}
	return val, nil
}
