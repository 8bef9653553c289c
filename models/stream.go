package models

// SSE event names emitted by GET /api/lists/{id}/stream.
const (
	EventConnected     = "connected"
	EventItemCreated   = "item_created"
	EventItemUpdated   = "item_updated"
	EventItemChecked   = "item_checked"
	EventItemUnchecked = "item_unchecked"
	EventItemDeleted   = "item_deleted"
	EventItemsCleared  = "items_cleared"
	EventItemsRestored = "items_restored"
	EventError         = "error"
)

// StreamEvent is a single server-sent event. The payload is informational
// only: the client never applies it to the cache directly, it just treats the
// event as a "something changed" signal and refetches.
type StreamEvent struct {
	EventType string  `json:"event_type"`
	ListID    string  `json:"list_id"`
	ItemID    *string `json:"item_id,omitempty"`
	ItemName  *string `json:"item_name,omitempty"`
	UserID    *string `json:"user_id,omitempty"`
	UserName  *string `json:"user_name,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
}
