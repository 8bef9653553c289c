package models

// List types supported by the backend.
const (
	ListTypeGrocery = "grocery"
	ListTypePacking = "packing"
	ListTypeTasks   = "tasks"
)

// List is a shared household list (grocery, packing or tasks).
// Field names mirror the backend JSON representation.
type List struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Icon       *string `json:"icon,omitempty"`
	Color      *string `json:"color,omitempty"`
	OwnerID    *string `json:"owner_id,omitempty"`
	IsTemplate bool    `json:"is_template"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// ListDetail is the materialized detail view of a list: the list row plus all
// of its items in sort order. This is the unit the cache stores per list and
// the unit optimistic mutations snapshot.
type ListDetail struct {
	List
	Items []Item `json:"items"`
}

// ListUpdate carries the mutable list fields for PUT /api/lists/{id}.
// Nil pointers mean "leave unchanged".
type ListUpdate struct {
	Name  *string `json:"name,omitempty"`
	Icon  *string `json:"icon,omitempty"`
	Color *string `json:"color,omitempty"`
}

// ListCreate is the request body for POST /api/lists.
type ListCreate struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Icon  *string `json:"icon,omitempty"`
	Color *string `json:"color,omitempty"`
}
