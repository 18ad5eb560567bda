// Package audit records before/after snapshots of case and employer
// mutations and lists them for administrators and the integrity unit.
package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Action is the kind of mutation recorded.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Trail is one recorded mutation. ID is a ULID so rows sort by creation.
type Trail struct {
	ID        string          `json:"id"`
	TableName string          `json:"table_name"`
	RecordID  uuid.UUID       `json:"record_id"`
	Action    Action          `json:"action"`
	OldData   json.RawMessage `json:"old_data,omitempty"`
	NewData   json.RawMessage `json:"new_data,omitempty"`
	UserID    *uuid.UUID      `json:"user_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Entry is the input to Record. Old and New are marshaled to JSON; nil
// values are stored as NULL.
type Entry struct {
	Table    string
	RecordID uuid.UUID
	Action   Action
	Old      any
	New      any
	UserID   uuid.UUID
}
