package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"frontdesk/internal/models"
)

func (s *Store) CreateBill(ctx context.Context, bill *models.Bill) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO bills (booking_id, total_amount, payment_status)
        VALUES (?, ?, ?)
    `, bill.BookingID, bill.Total, bill.PaymentStatus)
	if err != nil {
		return 0, fmt.Errorf("create bill: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	bill.ID = id
	return id, nil
}

// ListBills returns bills with the derived guest and room columns joined in;
// the substring filter covers them too.
func (s *Store) ListBills(ctx context.Context, search string) ([]*models.BillRow, error) {
	query := `
        SELECT bl.bill_id, bl.booking_id,
               g.guest_id || ' - ' || g.last_name || ' ' || g.first_name AS guest_info,
               r.room_number || ' - ' || r.room_type AS room_info,
               bl.total_amount, bl.payment_status
        FROM bills bl
        JOIN bookings b ON b.booking_id = bl.booking_id
        JOIN guests g ON g.guest_id = b.guest_id
        JOIN rooms r ON r.room_number = b.room_number
        WHERE ? = ''
           OR CAST(bl.bill_id AS TEXT) LIKE ?
           OR g.guest_id || ' - ' || g.last_name || ' ' || g.first_name LIKE ?
           OR r.room_number || ' - ' || r.room_type LIKE ?
           OR CAST(bl.total_amount AS TEXT) LIKE ?
           OR bl.payment_status LIKE ?
        ORDER BY bl.bill_id
    `
	pattern := "%" + search + "%"
	rows, err := s.db.QueryContext(ctx, query, search,
		pattern, pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var bills []*models.BillRow
	for rows.Next() {
		var b models.BillRow
		if err := rows.Scan(&b.ID, &b.BookingID, &b.GuestInfo, &b.RoomInfo,
			&b.Total, &b.PaymentStatus); err != nil {
			return nil, err
		}
		bills = append(bills, &b)
	}
	return bills, rows.Err()
}

func (s *Store) GetBill(ctx context.Context, id int64) (*models.Bill, error) {
	var b models.Bill
	err := s.db.QueryRowContext(ctx, `
        SELECT bill_id, booking_id, total_amount, payment_status
        FROM bills WHERE bill_id = ?
    `, id).Scan(&b.ID, &b.BookingID, &b.Total, &b.PaymentStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get bill %d: %w", id, err)
	}
	return &b, nil
}

func (s *Store) UpdateBillPayment(ctx context.Context, id int64, status models.PaymentStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE bills SET payment_status = ? WHERE bill_id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("update bill %d payment: %w", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteBill(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bills WHERE bill_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete bill %d: %w", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}
