package model

import "time"

// ItemRequest is a user's post asking for an item that is not in the catalog
// yet. Items created later may reference the request they fulfill.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestor_id"`
	Created     time.Time `json:"created"`
}

// RequestDetail bundles a request with the items offered against it.
type RequestDetail struct {
	ItemRequest
	Items []Item `json:"items"`
}
