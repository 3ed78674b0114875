package booking

import (
	"time"

	"shareit/model"
)

type CreateBookingReq struct {
	ItemID int64     `json:"item_id" validate:"required,gt=0"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
}

type pageQuery struct {
	State string `query:"state"`
	From  int    `query:"from" validate:"gte=0"`
	Size  int    `query:"size" validate:"gt=0"`
}

type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingResp denormalizes booker and item for display.
type BookingResp struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Booker UserRef   `json:"booker"`
	Item   ItemRef   `json:"item"`
}

func toBookingResp(b model.Booking) BookingResp {
	return BookingResp{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Booker: UserRef{ID: b.BookerID, Name: b.BookerName},
		Item:   ItemRef{ID: b.ItemID, Name: b.ItemName},
	}
}

func toBookingResps(bookings []model.Booking) []BookingResp {
	out := make([]BookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	return out
}
