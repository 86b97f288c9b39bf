package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"frontdesk/internal/models"
)

// ListBookings returns the booking list as rendered: guest and room shown as
// derived "id - name" text. The substring filter covers the derived columns
// too, so searching for a guest's surname finds their bookings.
func (s *Store) ListBookings(ctx context.Context, search string) ([]*models.BookingRow, error) {
	query := `
        SELECT b.booking_id,
               g.guest_id || ' - ' || g.last_name || ' ' || g.first_name AS guest_info,
               r.room_number || ' - ' || r.room_type AS room_info,
               b.checkin_date, b.checkout_date, b.status, COALESCE(b.notes, '')
        FROM bookings b
        JOIN guests g ON g.guest_id = b.guest_id
        JOIN rooms r ON r.room_number = b.room_number
        WHERE ? = ''
           OR CAST(b.booking_id AS TEXT) LIKE ?
           OR g.guest_id || ' - ' || g.last_name || ' ' || g.first_name LIKE ?
           OR r.room_number || ' - ' || r.room_type LIKE ?
           OR b.checkin_date LIKE ?
           OR b.checkout_date LIKE ?
           OR b.status LIKE ?
           OR COALESCE(b.notes, '') LIKE ?
        ORDER BY b.booking_id
    `
	pattern := "%" + search + "%"
	rows, err := s.db.QueryContext(ctx, query, search,
		pattern, pattern, pattern, pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.BookingRow
	for rows.Next() {
		var b models.BookingRow
		if err := rows.Scan(&b.ID, &b.GuestInfo, &b.RoomInfo,
			&b.CheckIn, &b.CheckOut, &b.Status, &b.Notes); err != nil {
			return nil, err
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}

func (s *Store) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	var b models.Booking
	err := s.db.QueryRowContext(ctx, `
        SELECT booking_id, guest_id, room_number, checkin_date, checkout_date, status, COALESCE(notes, '')
        FROM bookings WHERE booking_id = ?
    `, id).Scan(&b.ID, &b.GuestID, &b.RoomNumber, &b.CheckIn, &b.CheckOut, &b.Status, &b.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking %d: %w", id, err)
	}
	return &b, nil
}

func (s *Store) CreateBooking(ctx context.Context, booking *models.Booking) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO bookings (guest_id, room_number, checkin_date, checkout_date, status, notes)
        VALUES (?, ?, ?, ?, ?, ?)
    `, booking.GuestID, booking.RoomNumber, booking.CheckIn, booking.CheckOut,
		booking.Status, booking.Notes)
	if err != nil {
		return 0, fmt.Errorf("create booking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	booking.ID = id
	return id, nil
}

func (s *Store) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	res, err := s.db.ExecContext(ctx, `
        UPDATE bookings
        SET guest_id = ?, room_number = ?, checkin_date = ?, checkout_date = ?, status = ?, notes = ?
        WHERE booking_id = ?
    `, booking.GuestID, booking.RoomNumber, booking.CheckIn, booking.CheckOut,
		booking.Status, booking.Notes, booking.ID)
	if err != nil {
		return fmt.Errorf("update booking %d: %w", booking.ID, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateBookingStatus(ctx context.Context, id int64, status models.Status) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE booking_id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("update booking %d status: %w", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// BookingHasBills reports whether any bill still references the booking.
func (s *Store) BookingHasBills(ctx context.Context, id int64) (bool, error) {
	var dependents int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bills WHERE booking_id = ?`, id).Scan(&dependents)
	if err != nil {
		return false, fmt.Errorf("check booking bills: %w", err)
	}
	return dependents > 0, nil
}

// DeleteBooking removes a booking and its service links in one transaction.
// A booking with bills stays put: bills are the financial record.
func (s *Store) DeleteBooking(ctx context.Context, id int64) error {
	billed, err := s.BookingHasBills(ctx, id)
	if err != nil {
		return err
	}
	if billed {
		return ErrBookingHasBills
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM booking_services WHERE booking_id = ?`, id); err != nil {
		return fmt.Errorf("delete booking %d service links: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE booking_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete booking %d: %w", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// BookingServices returns the service-selection view for a booking: every
// service still offered, plus any service already linked even if it has
// since been withdrawn.
func (s *Store) BookingServices(ctx context.Context, bookingID int64) ([]*models.BookingServiceRow, error) {
	query := `
        SELECT s.service_id, s.service_name, s.price, COALESCE(s.description, ''),
               s.service_type, s.availability,
               CASE WHEN bs.service_id IS NULL THEN 0 ELSE 1 END AS selected
        FROM services s
        LEFT JOIN booking_services bs
            ON bs.service_id = s.service_id AND bs.booking_id = ?
        WHERE s.availability = 1 OR bs.service_id IS NOT NULL
        ORDER BY s.service_id
    `
	rows, err := s.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list booking %d services: %w", bookingID, err)
	}
	defer rows.Close()

	var result []*models.BookingServiceRow
	for rows.Next() {
		var row models.BookingServiceRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Price, &row.Description,
			&row.Type, &row.Available, &row.Selected); err != nil {
			return nil, err
		}
		result = append(result, &row)
	}
	return result, rows.Err()
}

// SetBookingServices replaces the booking's service set with serviceIDs.
// The rewrite (delete all links, insert the new set) runs in one transaction
// so a failure mid-way never leaves a half-replaced selection.
func (s *Store) SetBookingServices(ctx context.Context, bookingID int64, serviceIDs []int64) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM booking_services WHERE booking_id = ?`, bookingID); err != nil {
		return fmt.Errorf("clear booking %d services: %w", bookingID, err)
	}

	for _, serviceID := range serviceIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO booking_services (booking_id, service_id) VALUES (?, ?)`,
			bookingID, serviceID); err != nil {
			return fmt.Errorf("link service %d to booking %d: %w", serviceID, bookingID, err)
		}
	}

	return tx.Commit()
}

// RoomRate returns the nightly rate of the room a booking occupies.
func (s *Store) RoomRate(ctx context.Context, bookingID int64) (float64, error) {
	var rate float64
	err := s.db.QueryRowContext(ctx, `
        SELECT r.price
        FROM bookings b
        JOIN rooms r ON r.room_number = b.room_number
        WHERE b.booking_id = ?
    `, bookingID).Scan(&rate)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("room rate for booking %d: %w", bookingID, err)
	}
	return rate, nil
}

// ServiceCharges returns the price and charge type of every service linked
// to a booking.
func (s *Store) ServiceCharges(ctx context.Context, bookingID int64) ([]models.ServiceCharge, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT s.service_id, s.price, s.service_type
        FROM booking_services bs
        JOIN services s ON s.service_id = bs.service_id
        WHERE bs.booking_id = ?
    `, bookingID)
	if err != nil {
		return nil, fmt.Errorf("service charges for booking %d: %w", bookingID, err)
	}
	defer rows.Close()

	var charges []models.ServiceCharge
	for rows.Next() {
		var c models.ServiceCharge
		if err := rows.Scan(&c.ServiceID, &c.Price, &c.Type); err != nil {
			return nil, err
		}
		charges = append(charges, c)
	}
	return charges, rows.Err()
}
