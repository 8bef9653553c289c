package cache

// Cache keys for the two materialized views the client holds: the list index
// and one detail view per list.

const indexKey = "lists"

// ListIndexKey returns the cache key of the list index view.
func ListIndexKey() string { return indexKey }

// ListDetailKey returns the cache key of the detail view for listID.
func ListDetailKey(listID string) string { return "list:" + listID }
