// Package domain contains core concepts of the collaboration relay.
// This file defines Participant identities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import "time"

// UID identifies one logged-in control session. Assigned monotonically
// from 1 and never reused within a server run.
type UID uint32

// Participant is the identity behind one logged-in control connection.
// The connection handle itself is owned by the control plane, never here.
type Participant struct {
	UID           UID       `json:"uid"`
	Username      string    `json:"username"`
	IsPresenting  bool      `json:"is_presenting"`
	JoinTime      time.Time `json:"join_time"`
	LastHeartbeat time.Time `json:"-"`
}
