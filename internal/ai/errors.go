// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// AuthError marks a rejected or malformed credential. It is the one
// user-correctable failure class; handlers surface it with an actionable
// message instead of a generic service error.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("gemini auth (status %d): %s", e.Status, e.Message)
	}
	return "gemini auth: " + e.Message
}

// IsAuthError reports whether err (or anything it wraps) is an AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// classifyStatus converts a non-200 API response into either an AuthError
// or a generic error. Gemini reports bad keys as 400 with API_KEY_INVALID
// as well as plain 401/403.
func classifyStatus(status int, body []byte) error {
	msg := string(body)
	switch {
	case status == 401 || status == 403:
		return &AuthError{Status: status, Message: "API key was rejected by the service"}
	case status == 400 && (strings.Contains(msg, "API_KEY_INVALID") || strings.Contains(msg, "API key not valid")):
		return &AuthError{Status: status, Message: "API key is not valid"}
	default:
		return fmt.Errorf("gemini API error (status %d): %s", status, msg)
	}
}

func encodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func decodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
