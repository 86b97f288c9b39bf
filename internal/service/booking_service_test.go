package service

import (
	"context"
	"testing"

	"frontdesk/internal/database"
	"frontdesk/internal/events"
	"frontdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingCreateParsesPickerOptions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	guest := f.createGuest(t)

	booking, err := f.bookings.Create(ctx, BookingForm{
		Guest:    guest.Option(),
		Room:     "202 - Люкс",
		CheckIn:  "10.04.2025",
		CheckOut: "12.04.2025",
		Status:   "completed", // ignored: new bookings always start reserved
	})
	require.NoError(t, err)

	assert.Equal(t, guest.ID, booking.GuestID)
	assert.Equal(t, int64(202), booking.RoomNumber)
	assert.Equal(t, models.StatusReserved, booking.Status)
}

func TestBookingCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	guest := f.createGuest(t)
	var validationErr *models.ValidationError

	_, err := f.bookings.Create(ctx, BookingForm{
		Guest: "", Room: "101", CheckIn: "10.04.2025", CheckOut: "12.04.2025",
	})
	assert.ErrorAs(t, err, &validationErr)

	_, err = f.bookings.Create(ctx, BookingForm{
		Guest: guest.Option(), Room: "101", CheckIn: "2025-04-10", CheckOut: "12.04.2025",
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "checkin_date", validationErr.Field)
}

func TestBookingCreateUnknownRoomFails(t *testing.T) {
	f := newFixture(t)

	guest := f.createGuest(t)
	_, err := f.bookings.Create(context.Background(), BookingForm{
		Guest:    guest.Option(),
		Room:     "999",
		CheckIn:  "10.04.2025",
		CheckOut: "12.04.2025",
	})
	// foreign key violation from the store
	assert.Error(t, err)
}

func TestChangeStatusFollowsLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	guest := f.createGuest(t)
	booking := f.createBooking(t, guest, "101")

	// reserved cannot jump straight to completed
	err := f.bookings.ChangeStatus(ctx, booking.ID, "completed")
	var transitionErr *models.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, models.StatusReserved, transitionErr.From)

	require.NoError(t, f.bookings.ChangeStatus(ctx, booking.ID, "occupied"))
	require.NoError(t, f.bookings.ChangeStatus(ctx, booking.ID, "completed"))

	// completed is terminal
	err = f.bookings.ChangeStatus(ctx, booking.ID, "cancelled")
	assert.ErrorAs(t, err, &transitionErr)

	got, err := f.bookings.Get(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestChangeStatusPublishesEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var changes []events.StatusEventPayload
	f.bus.Subscribe(events.EventBookingStatusChanged, func(event *events.Event) error {
		changes = append(changes, events.StatusEventPayload{})
		return nil
	})

	guest := f.createGuest(t)
	booking := f.createBooking(t, guest, "101")

	require.NoError(t, f.bookings.ChangeStatus(ctx, booking.ID, "occupied"))
	assert.Len(t, changes, 1)

	// same status is a no-op and publishes nothing
	require.NoError(t, f.bookings.ChangeStatus(ctx, booking.ID, "occupied"))
	assert.Len(t, changes, 1)
}

func TestBookingUpdateEnforcesTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	guest := f.createGuest(t)
	booking := f.createBooking(t, guest, "101")

	form := BookingForm{
		Guest:    guest.Option(),
		Room:     "101",
		CheckIn:  "01.03.2025",
		CheckOut: "06.03.2025",
		Status:   "completed",
	}
	_, err := f.bookings.Update(ctx, booking.ID, form)
	var transitionErr *models.InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)

	// keeping the status while editing other fields is fine
	form.Status = "reserved"
	updated, err := f.bookings.Update(ctx, booking.ID, form)
	require.NoError(t, err)
	assert.Equal(t, "06.03.2025", updated.CheckOut)
}

func TestBookingDeleteGuardedByBills(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	guest := f.createGuest(t)
	booking := f.createBooking(t, guest, "101")
	_, err := f.store.CreateBill(ctx, &models.Bill{
		BookingID:     booking.ID,
		Total:         1000,
		PaymentStatus: models.PaymentUnpaid,
	})
	require.NoError(t, err)

	err = f.bookings.Delete(ctx, booking.ID, true)
	assert.ErrorIs(t, err, database.ErrBookingHasBills)
}

func TestBookingSetAndListServices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	guest := f.createGuest(t)
	booking := f.createBooking(t, guest, "101")

	require.NoError(t, f.bookings.SetServices(ctx, booking.ID, []int64{1, 3}))

	rows, err := f.bookings.Services(ctx, booking.ID)
	require.NoError(t, err)

	var selected []int64
	for _, row := range rows {
		if row.Selected {
			selected = append(selected, row.ID)
		}
	}
	assert.ElementsMatch(t, []int64{1, 3}, selected)

	err = f.bookings.SetServices(ctx, 999, []int64{1})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestGuestAndRoomOptions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	guest := f.createGuest(t)

	guests, err := f.bookings.GuestOptions(ctx)
	require.NoError(t, err)
	assert.Contains(t, guests, guest.Option())

	rooms, err := f.bookings.RoomOptions(ctx)
	require.NoError(t, err)
	// only available rooms are offered: 103 and 203 are seeded unavailable
	assert.Len(t, rooms, 7)
	assert.Contains(t, rooms, "101 - Стандартный")
	assert.NotContains(t, rooms, "103 - Стандартный")
}
