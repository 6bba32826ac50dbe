// Package domain contains core concepts of the collaboration relay.
// This file defines chat entries. Entries are immutable once stored.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type ChatKind string

const (
	KindChat      ChatKind = "chat"
	KindBroadcast ChatKind = "broadcast"
)

// ChatEntry is one relayed chat or broadcast message.
type ChatEntry struct {
	ID       uuid.UUID `json:"-"`
	Kind     ChatKind  `json:"type"`
	UID      UID       `json:"uid"`
	Username string    `json:"username"`
	Content  string    `json:"content"`
	At       time.Time `json:"timestamp"`
}
