// Package audit records administrative actions to an append-only log and
// serves filtered queries, CSV exports, and retention pruning over it.
package audit

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimeLayout is the storage format for createdAt: fixed-width millisecond
// UTC ISO strings, so lexicographic comparison equals chronological order.
// Range filters and the pruner depend on this property.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// UnknownActor is recorded when a session carries no identifiable user.
// The literal is load-bearing for existing log consumers.
const UnknownActor = "unknown"

// Entry is one immutable audit record. Entries are never updated in place;
// deletion happens only through the retention pruner.
type Entry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ActorEmail string             `bson:"actorEmail" json:"actorEmail"`
	ActorRole  string             `bson:"actorRole,omitempty" json:"actorRole,omitempty"`
	Action     string             `bson:"action" json:"action"`
	Resource   string             `bson:"resource,omitempty" json:"resource,omitempty"`
	ResourceID string             `bson:"resourceId,omitempty" json:"resourceId,omitempty"`
	Message    string             `bson:"message,omitempty" json:"message,omitempty"`
	Details    map[string]any     `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt  string             `bson:"createdAt" json:"createdAt"`
}

// FormatTime renders a timestamp in the storage layout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Filter holds the AND-combined optional query filters.
//
// When both Action and ActionContains are supplied, ActionContains wins and
// the exact Action filter is dropped; see Resolved.
type Filter struct {
	ActorEmail     string
	Action         string
	ActionContains string
	Resource       string
	ResourceID     string
	Start          string
	End            string
}

// Resolved applies the documented filter precedence: a case-insensitive
// ActionContains substring filter supersedes an exact Action match.
func (f Filter) Resolved() Filter {
	if f.ActionContains != "" {
		f.Action = ""
	}
	return f
}
