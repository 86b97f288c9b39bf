package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"frontdesk/internal/models"
)

func (s *Store) GetAdminByLogin(ctx context.Context, login string) (*models.Admin, error) {
	var a models.Admin
	err := s.db.QueryRowContext(ctx, `
        SELECT admin_id, last_name, first_name, COALESCE(middle_name, ''),
               login, password_hash, COALESCE(phone, ''), COALESCE(email, '')
        FROM admins WHERE login = ?
    `, login).Scan(&a.ID, &a.LastName, &a.FirstName, &a.MiddleName,
		&a.Login, &a.PasswordHash, &a.Phone, &a.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get admin by login: %w", err)
	}
	return &a, nil
}
