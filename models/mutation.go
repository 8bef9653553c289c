package models

import "time"

// Mutation kinds. They name the user intent, not the HTTP verb: the verb and
// path live on the mutation itself so the replay path never has to re-derive
// them.
const (
	MutationCreate  = "create"
	MutationUpdate  = "update"
	MutationDelete  = "delete"
	MutationCheck   = "check"
	MutationUncheck = "uncheck"
	MutationClear   = "clear"
	MutationRestore = "restore"
)

// PendingMutation is one not-yet-confirmed write. Once enqueued it is
// immutable except for removal; the queue replays mutations in strict
// insertion order.
type PendingMutation struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Body      []byte    `json:"body,omitempty"`
	ListID    string    `json:"list_id,omitempty"`
	ItemID    string    `json:"item_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
