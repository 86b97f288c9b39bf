package service

import (
	"context"

	"frontdesk/internal/database"
	"frontdesk/internal/domain"
	"frontdesk/internal/metrics"
	"frontdesk/internal/models"

	"github.com/rs/zerolog"
)

// RoomForm carries raw field values from the room editing form.
type RoomForm struct {
	Number    string
	Type      string
	Price     string
	Available bool
}

type RoomService struct {
	store  domain.RoomStore
	logger zerolog.Logger
}

func NewRoomService(store domain.RoomStore, logger *zerolog.Logger) *RoomService {
	return &RoomService{
		store:  store,
		logger: logger.With().Str("component", "rooms").Logger(),
	}
}

func (s *RoomService) List(ctx context.Context, search string) ([]*models.Room, error) {
	return s.store.ListRooms(ctx, search)
}

func (s *RoomService) Get(ctx context.Context, number int64) (*models.Room, error) {
	return s.store.GetRoom(ctx, number)
}

func (s *RoomService) Create(ctx context.Context, form RoomForm) (*models.Room, error) {
	room, err := roomFromForm(form)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateRoom(ctx, room); err != nil {
		return nil, err
	}

	metrics.IncOperation("rooms", "create")
	s.logger.Info().Int64("room_number", room.Number).Msg("room created")
	return room, nil
}

// Update edits the room currently numbered oldNumber. Changing the number
// renumbers the room; every booking referencing it follows atomically.
func (s *RoomService) Update(ctx context.Context, oldNumber int64, form RoomForm) (*models.Room, error) {
	room, err := roomFromForm(form)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateRoom(ctx, oldNumber, room); err != nil {
		return nil, err
	}

	metrics.IncOperation("rooms", "update")
	return room, nil
}

// Delete refuses while bookings reference the room, then insists on an
// explicit confirmation before removing the row.
func (s *RoomService) Delete(ctx context.Context, number int64, confirmed bool) error {
	referenced, err := s.store.RoomHasBookings(ctx, number)
	if err != nil {
		return err
	}
	if referenced {
		return database.ErrRoomHasBookings
	}
	if !confirmed {
		return database.ErrNotConfirmed
	}

	if err := s.store.DeleteRoom(ctx, number); err != nil {
		return err
	}

	metrics.IncOperation("rooms", "delete")
	s.logger.Info().Int64("room_number", number).Msg("room deleted")
	return nil
}

func roomFromForm(form RoomForm) (*models.Room, error) {
	number, err := parseID("room_number", form.Number)
	if err != nil {
		return nil, err
	}
	if err := requireField("room_type", form.Type); err != nil {
		return nil, err
	}
	price, err := parsePrice("price", form.Price)
	if err != nil {
		return nil, err
	}

	return &models.Room{
		Number:    number,
		Type:      form.Type,
		Price:     price,
		Available: form.Available,
	}, nil
}
