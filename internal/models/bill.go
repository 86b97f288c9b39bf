package models

// PaymentStatus of a bill. Default is unpaid; the flip is reversible so a
// mistaken payment mark can be corrected.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

func (p PaymentStatus) Toggle() PaymentStatus {
	if p == PaymentPaid {
		return PaymentUnpaid
	}
	return PaymentPaid
}

type Bill struct {
	ID            int64         `json:"bill_id"`
	BookingID     int64         `json:"booking_id"`
	Total         float64       `json:"total_amount"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}

// BillRow is a bill as rendered in the management list, with the derived
// guest and room columns joined in.
type BillRow struct {
	ID            int64         `json:"bill_id"`
	BookingID     int64         `json:"booking_id"`
	GuestInfo     string        `json:"guest_info"`
	RoomInfo      string        `json:"room_info"`
	Total         float64       `json:"total_amount"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}
