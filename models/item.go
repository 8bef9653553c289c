package models

// Item priorities accepted by the backend for task lists.
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Item statuses accepted by the backend for task lists.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
	StatusBlocked    = "blocked"
)

// Item is a single list entry. Field names mirror the backend JSON
// representation; optional columns are pointers so a missing value and an
// explicit empty value stay distinguishable.
type Item struct {
	ID         string  `json:"id"`
	ListID     string  `json:"list_id"`
	CategoryID *string `json:"category_id,omitempty"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       *string `json:"unit,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	IsChecked  bool    `json:"is_checked"`
	CheckedBy  *string `json:"checked_by,omitempty"`
	CheckedAt  *string `json:"checked_at,omitempty"`
	Magnitude  *string `json:"magnitude,omitempty"`
	AssignedTo *string `json:"assigned_to,omitempty"`
	Priority   *string `json:"priority,omitempty"`
	DueDate    *string `json:"due_date,omitempty"`
	Status     *string `json:"status,omitempty"`
	CreatedBy  *string `json:"created_by,omitempty"`
	SortOrder  int     `json:"sort_order"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// ItemCreate is the request body for POST /api/lists/{id}/items.
type ItemCreate struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity,omitempty"`
	Unit       *string `json:"unit,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
	Priority   *string `json:"priority,omitempty"`
	DueDate    *string `json:"due_date,omitempty"`
}

// ItemUpdate carries the mutable item fields for PUT /api/items/{id}.
// Nil pointers mean "leave unchanged".
type ItemUpdate struct {
	Name       *string  `json:"name,omitempty"`
	Quantity   *float64 `json:"quantity,omitempty"`
	Unit       *string  `json:"unit,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
	CategoryID *string  `json:"category_id,omitempty"`
	Magnitude  *string  `json:"magnitude,omitempty"`
	AssignedTo *string  `json:"assigned_to,omitempty"`
	Priority   *string  `json:"priority,omitempty"`
	DueDate    *string  `json:"due_date,omitempty"`
	Status     *string  `json:"status,omitempty"`
	SortOrder  *int     `json:"sort_order,omitempty"`
}
