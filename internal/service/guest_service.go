package service

import (
	"context"

	"frontdesk/internal/database"
	"frontdesk/internal/domain"
	"frontdesk/internal/metrics"
	"frontdesk/internal/models"

	"github.com/rs/zerolog"
)

// GuestForm carries raw field values from the guest editing form.
type GuestForm struct {
	LastName   string
	FirstName  string
	MiddleName string
	Phone      string
	Email      string
	Passport   string
}

type GuestService struct {
	store  domain.GuestStore
	logger zerolog.Logger
}

func NewGuestService(store domain.GuestStore, logger *zerolog.Logger) *GuestService {
	return &GuestService{
		store:  store,
		logger: logger.With().Str("component", "guests").Logger(),
	}
}

func (s *GuestService) List(ctx context.Context, search string) ([]*models.Guest, error) {
	return s.store.ListGuests(ctx, search)
}

func (s *GuestService) Get(ctx context.Context, id int64) (*models.Guest, error) {
	return s.store.GetGuest(ctx, id)
}

func (s *GuestService) Create(ctx context.Context, form GuestForm) (*models.Guest, error) {
	guest, err := guestFromForm(form)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.CreateGuest(ctx, guest); err != nil {
		return nil, err
	}

	metrics.IncOperation("guests", "create")
	s.logger.Info().Int64("guest_id", guest.ID).Msg("guest created")
	return guest, nil
}

func (s *GuestService) Update(ctx context.Context, id int64, form GuestForm) (*models.Guest, error) {
	guest, err := guestFromForm(form)
	if err != nil {
		return nil, err
	}
	guest.ID = id

	if err := s.store.UpdateGuest(ctx, guest); err != nil {
		return nil, err
	}

	metrics.IncOperation("guests", "update")
	return guest, nil
}

// Delete refuses while bookings reference the guest, then insists on an
// explicit confirmation before removing the row.
func (s *GuestService) Delete(ctx context.Context, id int64, confirmed bool) error {
	referenced, err := s.store.GuestHasBookings(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return database.ErrGuestHasBookings
	}
	if !confirmed {
		return database.ErrNotConfirmed
	}

	if err := s.store.DeleteGuest(ctx, id); err != nil {
		return err
	}

	metrics.IncOperation("guests", "delete")
	s.logger.Info().Int64("guest_id", id).Msg("guest deleted")
	return nil
}

func guestFromForm(form GuestForm) (*models.Guest, error) {
	if err := requireField("last_name", form.LastName); err != nil {
		return nil, err
	}
	if err := requireField("first_name", form.FirstName); err != nil {
		return nil, err
	}

	return &models.Guest{
		LastName:   form.LastName,
		FirstName:  form.FirstName,
		MiddleName: form.MiddleName,
		Phone:      form.Phone,
		Email:      form.Email,
		Passport:   form.Passport,
	}, nil
}
