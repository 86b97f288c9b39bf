package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"frontdesk/internal/models"
)

// ListGuests returns guests matching the substring filter across every
// displayed column, newest first. An empty filter returns everything.
func (s *Store) ListGuests(ctx context.Context, search string) ([]*models.Guest, error) {
	query := `
        SELECT guest_id, last_name, first_name, COALESCE(middle_name, ''),
               COALESCE(phone, ''), COALESCE(email, ''), COALESCE(passport, '')
        FROM guests
        WHERE ? = ''
           OR last_name LIKE ?
           OR first_name LIKE ?
           OR COALESCE(middle_name, '') LIKE ?
           OR COALESCE(phone, '') LIKE ?
           OR COALESCE(email, '') LIKE ?
           OR COALESCE(passport, '') LIKE ?
        ORDER BY guest_id
    `
	pattern := "%" + search + "%"
	rows, err := s.db.QueryContext(ctx, query, search,
		pattern, pattern, pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	defer rows.Close()

	var guests []*models.Guest
	for rows.Next() {
		var g models.Guest
		if err := rows.Scan(&g.ID, &g.LastName, &g.FirstName, &g.MiddleName,
			&g.Phone, &g.Email, &g.Passport); err != nil {
			return nil, err
		}
		guests = append(guests, &g)
	}
	return guests, rows.Err()
}

func (s *Store) GetGuest(ctx context.Context, id int64) (*models.Guest, error) {
	query := `
        SELECT guest_id, last_name, first_name, COALESCE(middle_name, ''),
               COALESCE(phone, ''), COALESCE(email, ''), COALESCE(passport, '')
        FROM guests WHERE guest_id = ?
    `
	var g models.Guest
	err := s.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.LastName,
		&g.FirstName, &g.MiddleName, &g.Phone, &g.Email, &g.Passport)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get guest %d: %w", id, err)
	}
	return &g, nil
}

func (s *Store) CreateGuest(ctx context.Context, guest *models.Guest) (int64, error) {
	query := `
        INSERT INTO guests (last_name, first_name, middle_name, phone, email, passport)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	res, err := s.db.ExecContext(ctx, query, guest.LastName, guest.FirstName,
		guest.MiddleName, guest.Phone, guest.Email, guest.Passport)
	if err != nil {
		return 0, fmt.Errorf("create guest: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	guest.ID = id
	return id, nil
}

func (s *Store) UpdateGuest(ctx context.Context, guest *models.Guest) error {
	query := `
        UPDATE guests
        SET last_name = ?, first_name = ?, middle_name = ?, phone = ?, email = ?, passport = ?
        WHERE guest_id = ?
    `
	res, err := s.db.ExecContext(ctx, query, guest.LastName, guest.FirstName,
		guest.MiddleName, guest.Phone, guest.Email, guest.Passport, guest.ID)
	if err != nil {
		return fmt.Errorf("update guest %d: %w", guest.ID, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GuestHasBookings reports whether any booking still references the guest.
func (s *Store) GuestHasBookings(ctx context.Context, id int64) (bool, error) {
	var dependents int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE guest_id = ?`, id).Scan(&dependents)
	if err != nil {
		return false, fmt.Errorf("check guest bookings: %w", err)
	}
	return dependents > 0, nil
}

// DeleteGuest removes a guest unless any booking still references them.
func (s *Store) DeleteGuest(ctx context.Context, id int64) error {
	referenced, err := s.GuestHasBookings(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return ErrGuestHasBookings
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM guests WHERE guest_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete guest %d: %w", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}
