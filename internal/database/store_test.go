package database

import (
	"context"
	"testing"

	"frontdesk/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := zerolog.Nop()
	store, err := Open(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestGuest(t *testing.T, store *Store) int64 {
	t.Helper()
	id, err := store.CreateGuest(context.Background(), &models.Guest{
		LastName:  "Тестов",
		FirstName: "Тест",
		Phone:     "+7 (900) 000-00-00",
	})
	require.NoError(t, err)
	return id
}

func createTestBooking(t *testing.T, store *Store, guestID, roomNumber int64) int64 {
	t.Helper()
	id, err := store.CreateBooking(context.Background(), &models.Booking{
		GuestID:    guestID,
		RoomNumber: roomNumber,
		CheckIn:    "01.03.2025",
		CheckOut:   "05.03.2025",
		Status:     models.StatusReserved,
	})
	require.NoError(t, err)
	return id
}

func TestSeedData(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rooms, err := store.ListRooms(ctx, "")
	require.NoError(t, err)
	assert.Len(t, rooms, 9)

	room, err := store.GetRoom(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, room.Price)
	assert.True(t, room.Available)

	services, err := store.ListServices(ctx, "")
	require.NoError(t, err)
	assert.Len(t, services, 4)

	admin, err := store.GetAdminByLogin(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Иванов", admin.LastName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("1")))
}

func TestSeedRunsOnce(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.seed())

	rooms, err := store.ListRooms(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, rooms, 9)
}

func TestGuestRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.CreateGuest(ctx, &models.Guest{
		LastName:  "Вернадский",
		FirstName: "Владимир",
		Passport:  "4500 123456",
	})
	require.NoError(t, err)

	// substring of the last name finds the guest exactly once
	guests, err := store.ListGuests(ctx, "ернадск")
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, id, guests[0].ID)

	guests[0].Phone = "+7 (911) 222-33-44"
	require.NoError(t, store.UpdateGuest(ctx, guests[0]))

	got, err := store.GetGuest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "+7 (911) 222-33-44", got.Phone)
}

func TestGuestNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetGuest(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.UpdateGuest(context.Background(), &models.Guest{ID: 9999, LastName: "x", FirstName: "y"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.DeleteGuest(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGuestDeleteGuardedByBookings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	guestID := createTestGuest(t, store)
	createTestBooking(t, store, guestID, 101)

	err := store.DeleteGuest(ctx, guestID)
	assert.ErrorIs(t, err, ErrGuestHasBookings)

	// guest untouched
	_, err = store.GetGuest(ctx, guestID)
	assert.NoError(t, err)
}

func TestRoomDeleteGuardedByBookings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	guestID := createTestGuest(t, store)
	createTestBooking(t, store, guestID, 103)

	err := store.DeleteRoom(ctx, 103)
	assert.ErrorIs(t, err, ErrRoomHasBookings)

	room, err := store.GetRoom(ctx, 103)
	require.NoError(t, err)
	assert.Equal(t, int64(103), room.Number)
}

func TestRoomDeleteWithoutBookings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.DeleteRoom(ctx, 304))

	_, err := store.GetRoom(ctx, 304)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRoomDuplicateNumber(t *testing.T) {
	store := newTestStore(t)

	err := store.CreateRoom(context.Background(), &models.Room{
		Number: 101, Type: "Стандартный", Price: 900, Available: true,
	})
	assert.ErrorIs(t, err, ErrRoomExists)
}

func TestRoomRenumberCascadesToBookings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	guestID := createTestGuest(t, store)
	bookingID := createTestBooking(t, store, guestID, 101)

	room, err := store.GetRoom(ctx, 101)
	require.NoError(t, err)
	room.Number = 105
	require.NoError(t, store.UpdateRoom(ctx, 101, room))

	booking, err := store.GetBooking(ctx, bookingID)
	require.NoError(t, err)
	assert.Equal(t, int64(105), booking.RoomNumber)

	_, err = store.GetRoom(ctx, 101)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoomRenumberToTakenNumberFails(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	room, err := store.GetRoom(ctx, 101)
	require.NoError(t, err)
	room.Number = 102
	err = store.UpdateRoom(ctx, 101, room)
	assert.ErrorIs(t, err, ErrRoomExists)

	// original row untouched
	_, err = store.GetRoom(ctx, 101)
	assert.NoError(t, err)
}

func TestListRoomsSearch(t *testing.T) {
	store := newTestStore(t)

	rooms, err := store.ListRooms(context.Background(), "Люкс")
	require.NoError(t, err)
	assert.Len(t, rooms, 3)

	rooms, err = store.ListRooms(context.Background(), "304")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, int64(304), rooms[0].Number)
}

func TestAvailableRooms(t *testing.T) {
	store := newTestStore(t)

	rooms, err := store.AvailableRooms(context.Background())
	require.NoError(t, err)
	// 103 and 203 are seeded unavailable
	assert.Len(t, rooms, 7)
	for _, r := range rooms {
		assert.True(t, r.Available)
	}
}
