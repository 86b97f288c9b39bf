package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"frontdesk/internal/models"
)

func (s *Store) ListRooms(ctx context.Context, search string) ([]*models.Room, error) {
	query := `
        SELECT room_number, room_type, price, availability
        FROM rooms
        WHERE ? = ''
           OR CAST(room_number AS TEXT) LIKE ?
           OR room_type LIKE ?
           OR CAST(price AS TEXT) LIKE ?
        ORDER BY room_number
    `
	pattern := "%" + search + "%"
	rows, err := s.db.QueryContext(ctx, query, search, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	return scanRooms(rows)
}

// AvailableRooms returns rooms open for new bookings, for the room picker.
func (s *Store) AvailableRooms(ctx context.Context) ([]*models.Room, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT room_number, room_type, price, availability
        FROM rooms WHERE availability = 1 ORDER BY room_number
    `)
	if err != nil {
		return nil, fmt.Errorf("list available rooms: %w", err)
	}
	defer rows.Close()

	return scanRooms(rows)
}

func scanRooms(rows *sql.Rows) ([]*models.Room, error) {
	var rooms []*models.Room
	for rows.Next() {
		var r models.Room
		if err := rows.Scan(&r.Number, &r.Type, &r.Price, &r.Available); err != nil {
			return nil, err
		}
		rooms = append(rooms, &r)
	}
	return rooms, rows.Err()
}

func (s *Store) GetRoom(ctx context.Context, number int64) (*models.Room, error) {
	var r models.Room
	err := s.db.QueryRowContext(ctx, `
        SELECT room_number, room_type, price, availability
        FROM rooms WHERE room_number = ?
    `, number).Scan(&r.Number, &r.Type, &r.Price, &r.Available)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get room %d: %w", number, err)
	}
	return &r, nil
}

func (s *Store) CreateRoom(ctx context.Context, room *models.Room) error {
	exists, err := s.roomExists(ctx, room.Number)
	if err != nil {
		return err
	}
	if exists {
		return ErrRoomExists
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO rooms (room_number, room_type, price, availability)
        VALUES (?, ?, ?, ?)
    `, room.Number, room.Type, room.Price, room.Available)
	if err != nil {
		return fmt.Errorf("create room %d: %w", room.Number, err)
	}
	return nil
}

// UpdateRoom updates the room identified by oldNumber. Renumbering is done
// in one transaction; the bookings foreign key is declared ON UPDATE CASCADE,
// so every booking referencing the room follows the new number atomically.
func (s *Store) UpdateRoom(ctx context.Context, oldNumber int64, room *models.Room) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if room.Number != oldNumber {
		var count int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM rooms WHERE room_number = ?`, room.Number).Scan(&count); err != nil {
			return fmt.Errorf("check room number %d: %w", room.Number, err)
		}
		if count > 0 {
			return ErrRoomExists
		}
	}

	res, err := tx.ExecContext(ctx, `
        UPDATE rooms
        SET room_number = ?, room_type = ?, price = ?, availability = ?
        WHERE room_number = ?
    `, room.Number, room.Type, room.Price, room.Available, oldNumber)
	if err != nil {
		return fmt.Errorf("update room %d: %w", oldNumber, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	if room.Number != oldNumber {
		s.logger.Info().
			Int64("old_number", oldNumber).
			Int64("new_number", room.Number).
			Msg("room renumbered, bookings cascaded")
	}
	return nil
}

// RoomHasBookings reports whether any booking still references the room.
func (s *Store) RoomHasBookings(ctx context.Context, number int64) (bool, error) {
	var dependents int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE room_number = ?`, number).Scan(&dependents)
	if err != nil {
		return false, fmt.Errorf("check room bookings: %w", err)
	}
	return dependents > 0, nil
}

// DeleteRoom removes a room unless any booking still references it.
func (s *Store) DeleteRoom(ctx context.Context, number int64) error {
	referenced, err := s.RoomHasBookings(ctx, number)
	if err != nil {
		return err
	}
	if referenced {
		return ErrRoomHasBookings
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE room_number = ?`, number)
	if err != nil {
		return fmt.Errorf("delete room %d: %w", number, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) roomExists(ctx context.Context, number int64) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rooms WHERE room_number = ?`, number).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check room number %d: %w", number, err)
	}
	return count > 0, nil
}
