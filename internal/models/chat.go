// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Chat message roles as used by the Gemini API.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one entry in the consultant transcript. ID is assigned at
// creation and is the stable handle used to append streamed chunks to an
// in-progress model message; positional lookup is never used.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewChatMessage creates a message with a fresh ID and timestamp.
func NewChatMessage(role, text string) ChatMessage {
	return ChatMessage{
		ID:        uuid.New(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}
}
