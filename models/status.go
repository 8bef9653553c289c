package models

// StreamState is the lifecycle state of one realtime list stream.
type StreamState string

const (
	StreamConnecting   StreamState = "connecting"
	StreamOpen         StreamState = "open"
	StreamReconnecting StreamState = "reconnecting"
	StreamFailed       StreamState = "failed"
	StreamClosed       StreamState = "closed"
)

// SyncStatus is the aggregate sync-layer state surfaced to the user. Failures
// inside the sync engine and stream client are never shown per-mutation, only
// rolled up into this value.
type SyncStatus struct {
	Online       bool
	Syncing      bool
	Paused       bool
	PendingCount int
	StreamState  StreamState
}
