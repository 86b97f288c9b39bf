package domain

import (
	"context"
	"time"

	"frontdesk/internal/models"
)

type GuestStore interface {
	ListGuests(ctx context.Context, search string) ([]*models.Guest, error)
	GetGuest(ctx context.Context, id int64) (*models.Guest, error)
	CreateGuest(ctx context.Context, guest *models.Guest) (int64, error)
	UpdateGuest(ctx context.Context, guest *models.Guest) error
	DeleteGuest(ctx context.Context, id int64) error
	GuestHasBookings(ctx context.Context, id int64) (bool, error)
}

type RoomStore interface {
	ListRooms(ctx context.Context, search string) ([]*models.Room, error)
	AvailableRooms(ctx context.Context) ([]*models.Room, error)
	GetRoom(ctx context.Context, number int64) (*models.Room, error)
	CreateRoom(ctx context.Context, room *models.Room) error
	UpdateRoom(ctx context.Context, oldNumber int64, room *models.Room) error
	DeleteRoom(ctx context.Context, number int64) error
	RoomHasBookings(ctx context.Context, number int64) (bool, error)
}

type ServiceStore interface {
	ListServices(ctx context.Context, search string) ([]*models.Service, error)
	GetService(ctx context.Context, id int64) (*models.Service, error)
	CreateService(ctx context.Context, service *models.Service) (int64, error)
	UpdateService(ctx context.Context, service *models.Service) error
	DeleteService(ctx context.Context, id int64) error
	ServiceLinked(ctx context.Context, id int64) (bool, error)
}

type BookingStore interface {
	ListBookings(ctx context.Context, search string) ([]*models.BookingRow, error)
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	CreateBooking(ctx context.Context, booking *models.Booking) (int64, error)
	UpdateBooking(ctx context.Context, booking *models.Booking) error
	UpdateBookingStatus(ctx context.Context, id int64, status models.Status) error
	DeleteBooking(ctx context.Context, id int64) error
	BookingHasBills(ctx context.Context, id int64) (bool, error)
	BookingServices(ctx context.Context, bookingID int64) ([]*models.BookingServiceRow, error)
	SetBookingServices(ctx context.Context, bookingID int64, serviceIDs []int64) error
}

// BillingStore is the slice of the store the billing calculator needs.
type BillingStore interface {
	RoomRate(ctx context.Context, bookingID int64) (float64, error)
	ServiceCharges(ctx context.Context, bookingID int64) ([]models.ServiceCharge, error)
	CreateBill(ctx context.Context, bill *models.Bill) (int64, error)
}

type BillStore interface {
	ListBills(ctx context.Context, search string) ([]*models.BillRow, error)
	GetBill(ctx context.Context, id int64) (*models.Bill, error)
	UpdateBillPayment(ctx context.Context, id int64, status models.PaymentStatus) error
	DeleteBill(ctx context.Context, id int64) error
}

type AdminStore interface {
	GetAdminByLogin(ctx context.Context, login string) (*models.Admin, error)
}

type SessionRepository interface {
	SaveSession(ctx context.Context, session *models.Session, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
