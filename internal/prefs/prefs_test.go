// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prefs

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient connects to a local Valkey on DB 15 and skips the
// test when none is reachable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("VALKEY_TEST_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   15,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("valkey not available at %s: %v", addr, err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestAPIKeyRoundTrip(t *testing.T) {
	store := NewStore(testValkeyClient(t))
	ctx := context.Background()

	key, err := store.APIKey(ctx, "client-1")
	if err != nil {
		t.Fatalf("APIKey: %v", err)
	}
	if key != "" {
		t.Fatalf("expected empty key before set, got %q", key)
	}

	if err := store.SetAPIKey(ctx, "client-1", "AIzaTestKey123"); err != nil {
		t.Fatalf("SetAPIKey: %v", err)
	}

	key, err = store.APIKey(ctx, "client-1")
	if err != nil {
		t.Fatalf("APIKey after set: %v", err)
	}
	if key != "AIzaTestKey123" {
		t.Fatalf("got %q, want AIzaTestKey123", key)
	}
}

func TestThemeDefaultsToSummer(t *testing.T) {
	store := NewStore(testValkeyClient(t))
	ctx := context.Background()

	theme, err := store.Theme(ctx, "client-2")
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if theme != ThemeSummer {
		t.Fatalf("got %q, want %q", theme, ThemeSummer)
	}
}

func TestThemePersists(t *testing.T) {
	store := NewStore(testValkeyClient(t))
	ctx := context.Background()

	if err := store.SetTheme(ctx, "client-3", ThemeWinter); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}

	theme, err := store.Theme(ctx, "client-3")
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if theme != ThemeWinter {
		t.Fatalf("got %q, want %q", theme, ThemeWinter)
	}
}

func TestSetThemeRejectsUnknownValue(t *testing.T) {
	store := NewStore(testValkeyClient(t))

	if err := store.SetTheme(context.Background(), "client-4", "autumn"); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

func TestClearRemovesEverything(t *testing.T) {
	store := NewStore(testValkeyClient(t))
	ctx := context.Background()

	if err := store.SetAPIKey(ctx, "client-5", "AIzaTestKey456"); err != nil {
		t.Fatalf("SetAPIKey: %v", err)
	}
	if err := store.SetTheme(ctx, "client-5", ThemeWinter); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}

	if err := store.Clear(ctx, "client-5"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	key, err := store.APIKey(ctx, "client-5")
	if err != nil {
		t.Fatalf("APIKey after clear: %v", err)
	}
	if key != "" {
		t.Fatalf("expected empty key after clear, got %q", key)
	}

	theme, err := store.Theme(ctx, "client-5")
	if err != nil {
		t.Fatalf("Theme after clear: %v", err)
	}
	if theme != ThemeSummer {
		t.Fatalf("expected default theme after clear, got %q", theme)
	}
}

func TestClientsAreIsolated(t *testing.T) {
	store := NewStore(testValkeyClient(t))
	ctx := context.Background()

	if err := store.SetAPIKey(ctx, "client-a", "AIzaKeyA"); err != nil {
		t.Fatalf("SetAPIKey: %v", err)
	}

	key, err := store.APIKey(ctx, "client-b")
	if err != nil {
		t.Fatalf("APIKey: %v", err)
	}
	if key != "" {
		t.Fatalf("client-b should have no key, got %q", key)
	}
}
