// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// ClientCookieName is the cookie identifying a browser session. The ID
// keys both the in-memory workspace and the Valkey preference entries.
const ClientCookieName = "mantle_client"

type clientCtxKey struct{}

// ClientIdentity ensures every request carries a stable client ID,
// minting a new one on first contact. The ID is injected into the
// request context for handlers.
func ClientIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if cookie, err := r.Cookie(ClientCookieName); err == nil {
			if parsed, err := uuid.Parse(cookie.Value); err == nil {
				id = parsed.String()
			}
		}

		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     ClientCookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				Secure:   false, // Set to true behind TLS
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), clientCtxKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIDFromCtx returns the client ID set by ClientIdentity, or ""
// when the middleware did not run.
func ClientIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(clientCtxKey{}).(string)
	return id
}
