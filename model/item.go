package model

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"owner_id"`
	RequestID   *int64 `json:"request_id,omitempty"`
}

// ItemDetail is an item as the listing endpoints return it: comments always,
// last/next booking only when the viewer owns the item.
type ItemDetail struct {
	Item
	LastBooking *BookingRef `json:"last_booking,omitempty"`
	NextBooking *BookingRef `json:"next_booking,omitempty"`
	Comments    []Comment   `json:"comments"`
}

// ItemPatch carries the fields of a partial item update; nil means unchanged.
type ItemPatch struct {
	Name        *string
	Description *string
	Available   *bool
	RequestID   *int64
}
