package models

type Booking struct {
	ID         int64  `json:"booking_id"`
	GuestID    int64  `json:"guest_id"`
	RoomNumber int64  `json:"room_number"`
	CheckIn    string `json:"checkin_date"`  // ДД.ММ.ГГГГ
	CheckOut   string `json:"checkout_date"` // ДД.ММ.ГГГГ
	Status     Status `json:"status"`
	Notes      string `json:"notes"`
}

// BookingRow is a booking as rendered in the management list: guest and room
// are shown as derived "id - name" text, which the search filter also covers.
type BookingRow struct {
	ID        int64  `json:"booking_id"`
	GuestInfo string `json:"guest_info"`
	RoomInfo  string `json:"room_info"`
	CheckIn   string `json:"checkin_date"`
	CheckOut  string `json:"checkout_date"`
	Status    Status `json:"status"`
	Notes     string `json:"notes"`
}

// BookingServiceRow is one row of the service-selection view for a booking:
// every available service plus whether it is currently linked.
type BookingServiceRow struct {
	Service
	Selected bool `json:"selected"`
}
