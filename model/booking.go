package model

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	StatusCanceled BookingStatus = "CANCELED"
)

type Booking struct {
	ID          int64         `json:"id"`
	Start       time.Time     `json:"start"`
	End         time.Time     `json:"end"`
	ItemID      int64         `json:"item_id"`
	ItemName    string        `json:"item_name"`
	ItemOwnerID int64         `json:"-"`
	BookerID    int64         `json:"booker_id"`
	BookerName  string        `json:"booker_name"`
	Status      BookingStatus `json:"status"`
}

// BookingRef is the short booking shape embedded in item listings.
type BookingRef struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"booker_id"`
}

// BookingState filters booking listings. ALL/CURRENT/PAST/FUTURE are relative
// to the clock, WAITING/REJECTED match the stored status.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

func ParseBookingState(s string) (BookingState, error) {
	switch st := BookingState(s); st {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return st, nil
	default:
		return "", fmt.Errorf("Unknown state: %s", s)
	}
}
