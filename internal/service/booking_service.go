package service

import (
	"context"

	"frontdesk/internal/database"
	"frontdesk/internal/domain"
	"frontdesk/internal/events"
	"frontdesk/internal/metrics"
	"frontdesk/internal/models"

	"github.com/rs/zerolog"
)

// BookingForm carries raw field values from the booking form. Guest and Room
// arrive as picker options ("id - name") or bare identifiers.
type BookingForm struct {
	Guest    string
	Room     string
	CheckIn  string
	CheckOut string
	Status   string
	Notes    string
}

type BookingService struct {
	bookings domain.BookingStore
	guests   domain.GuestStore
	rooms    domain.RoomStore
	bus      domain.EventPublisher
	logger   zerolog.Logger
}

func NewBookingService(
	bookings domain.BookingStore,
	guests domain.GuestStore,
	rooms domain.RoomStore,
	bus domain.EventPublisher,
	logger *zerolog.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		guests:   guests,
		rooms:    rooms,
		bus:      bus,
		logger:   logger.With().Str("component", "bookings").Logger(),
	}
}

func (s *BookingService) List(ctx context.Context, search string) ([]*models.BookingRow, error) {
	return s.bookings.ListBookings(ctx, search)
}

func (s *BookingService) Get(ctx context.Context, id int64) (*models.Booking, error) {
	return s.bookings.GetBooking(ctx, id)
}

// Create makes a new booking. A new booking always starts as reserved,
// whatever the form says.
func (s *BookingService) Create(ctx context.Context, form BookingForm) (*models.Booking, error) {
	booking, err := s.bookingFromForm(form)
	if err != nil {
		return nil, err
	}
	booking.Status = models.StatusReserved

	if _, err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	metrics.IncOperation("bookings", "create")
	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("guest_id", booking.GuestID).
		Int64("room_number", booking.RoomNumber).
		Msg("booking created")
	return booking, nil
}

// Update edits a booking. A status change goes through the lifecycle rules:
// reserved can become occupied or cancelled, occupied can become completed
// or cancelled, and the terminal states stay put.
func (s *BookingService) Update(ctx context.Context, id int64, form BookingForm) (*models.Booking, error) {
	booking, err := s.bookingFromForm(form)
	if err != nil {
		return nil, err
	}
	booking.ID = id

	current, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransition(booking.Status) {
		return nil, &models.InvalidTransitionError{From: current.Status, To: booking.Status}
	}

	if err := s.bookings.UpdateBooking(ctx, booking); err != nil {
		return nil, err
	}

	if current.Status != booking.Status {
		s.publishStatusChange(id, current.Status, booking.Status)
	}

	metrics.IncOperation("bookings", "update")
	return booking, nil
}

// ChangeStatus moves a booking through its lifecycle.
func (s *BookingService) ChangeStatus(ctx context.Context, id int64, statusText string) error {
	next, ok := models.ParseStatus(statusText)
	if !ok {
		return &models.ValidationError{Field: "status", Reason: "unknown status"}
	}

	current, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == next {
		return nil
	}
	if !current.Status.CanTransition(next) {
		return &models.InvalidTransitionError{From: current.Status, To: next}
	}

	if err := s.bookings.UpdateBookingStatus(ctx, id, next); err != nil {
		return err
	}

	s.publishStatusChange(id, current.Status, next)
	metrics.IncOperation("bookings", "change_status")
	return nil
}

// Delete refuses while bills reference the booking, then insists on an
// explicit confirmation. The booking's service links go with it.
func (s *BookingService) Delete(ctx context.Context, id int64, confirmed bool) error {
	billed, err := s.bookings.BookingHasBills(ctx, id)
	if err != nil {
		return err
	}
	if billed {
		return database.ErrBookingHasBills
	}
	if !confirmed {
		return database.ErrNotConfirmed
	}

	if err := s.bookings.DeleteBooking(ctx, id); err != nil {
		return err
	}

	metrics.IncOperation("bookings", "delete")
	s.logger.Info().Int64("booking_id", id).Msg("booking deleted")
	return nil
}

// Services returns the service-selection view for a booking.
func (s *BookingService) Services(ctx context.Context, bookingID int64) ([]*models.BookingServiceRow, error) {
	return s.bookings.BookingServices(ctx, bookingID)
}

// SetServices replaces the booking's service set.
func (s *BookingService) SetServices(ctx context.Context, bookingID int64, serviceIDs []int64) error {
	if _, err := s.bookings.GetBooking(ctx, bookingID); err != nil {
		return err
	}
	if err := s.bookings.SetBookingServices(ctx, bookingID, serviceIDs); err != nil {
		return err
	}

	metrics.IncOperation("bookings", "set_services")
	return nil
}

// GuestOptions returns picker options for every guest.
func (s *BookingService) GuestOptions(ctx context.Context) ([]string, error) {
	guests, err := s.guests.ListGuests(ctx, "")
	if err != nil {
		return nil, err
	}

	options := make([]string, 0, len(guests))
	for _, g := range guests {
		options = append(options, g.Option())
	}
	return options, nil
}

// RoomOptions returns picker options for rooms open to new bookings.
func (s *BookingService) RoomOptions(ctx context.Context) ([]string, error) {
	rooms, err := s.rooms.AvailableRooms(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]string, 0, len(rooms))
	for _, r := range rooms {
		options = append(options, r.Option())
	}
	return options, nil
}

func (s *BookingService) publishStatusChange(id int64, from, to models.Status) {
	err := s.bus.PublishJSON(events.EventBookingStatusChanged, events.StatusEventPayload{
		BookingID: id,
		From:      string(from),
		To:        string(to),
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish status event")
	}
}

func (s *BookingService) bookingFromForm(form BookingForm) (*models.Booking, error) {
	guestID, err := parseOptionID("guest", form.Guest)
	if err != nil {
		return nil, err
	}
	roomNumber, err := parseOptionID("room", form.Room)
	if err != nil {
		return nil, err
	}
	if err := validateDateField("checkin_date", form.CheckIn); err != nil {
		return nil, err
	}
	if err := validateDateField("checkout_date", form.CheckOut); err != nil {
		return nil, err
	}

	status := models.StatusReserved
	if form.Status != "" {
		parsed, ok := models.ParseStatus(form.Status)
		if !ok {
			return nil, &models.ValidationError{Field: "status", Reason: "unknown status"}
		}
		status = parsed
	}

	return &models.Booking{
		GuestID:    guestID,
		RoomNumber: roomNumber,
		CheckIn:    form.CheckIn,
		CheckOut:   form.CheckOut,
		Status:     status,
		Notes:      form.Notes,
	}, nil
}
