package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"frontdesk/internal/models"
)

func (s *Store) ListServices(ctx context.Context, search string) ([]*models.Service, error) {
	query := `
        SELECT service_id, service_name, price, COALESCE(description, ''), service_type, availability
        FROM services
        WHERE ? = ''
           OR service_name LIKE ?
           OR COALESCE(description, '') LIKE ?
           OR service_type LIKE ?
           OR CAST(price AS TEXT) LIKE ?
        ORDER BY service_id
    `
	pattern := "%" + search + "%"
	rows, err := s.db.QueryContext(ctx, query, search, pattern, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		var svc models.Service
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Price, &svc.Description,
			&svc.Type, &svc.Available); err != nil {
			return nil, err
		}
		services = append(services, &svc)
	}
	return services, rows.Err()
}

func (s *Store) GetService(ctx context.Context, id int64) (*models.Service, error) {
	var svc models.Service
	err := s.db.QueryRowContext(ctx, `
        SELECT service_id, service_name, price, COALESCE(description, ''), service_type, availability
        FROM services WHERE service_id = ?
    `, id).Scan(&svc.ID, &svc.Name, &svc.Price, &svc.Description, &svc.Type, &svc.Available)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get service %d: %w", id, err)
	}
	return &svc, nil
}

func (s *Store) CreateService(ctx context.Context, service *models.Service) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO services (service_name, price, description, service_type, availability)
        VALUES (?, ?, ?, ?, ?)
    `, service.Name, service.Price, service.Description, service.Type, service.Available)
	if err != nil {
		return 0, fmt.Errorf("create service: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	service.ID = id
	return id, nil
}

// UpdateService writes the service row; when availability drops to false the
// service is also unlinked from every booking, in the same transaction, so a
// withdrawn service never lingers on open bookings.
func (s *Store) UpdateService(ctx context.Context, service *models.Service) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
        UPDATE services
        SET service_name = ?, price = ?, description = ?, service_type = ?, availability = ?
        WHERE service_id = ?
    `, service.Name, service.Price, service.Description, service.Type,
		service.Available, service.ID)
	if err != nil {
		return fmt.Errorf("update service %d: %w", service.ID, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}

	if !service.Available {
		unlinked, err := tx.ExecContext(ctx,
			`DELETE FROM booking_services WHERE service_id = ?`, service.ID)
		if err != nil {
			return fmt.Errorf("unlink service %d: %w", service.ID, err)
		}
		if count, _ := unlinked.RowsAffected(); count > 0 {
			s.logger.Info().
				Int64("service_id", service.ID).
				Int64("links_removed", count).
				Msg("service availability revoked")
		}
	}

	return tx.Commit()
}

// ServiceLinked reports whether any booking is still linked to the service.
func (s *Store) ServiceLinked(ctx context.Context, id int64) (bool, error) {
	var dependents int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM booking_services WHERE service_id = ?`, id).Scan(&dependents)
	if err != nil {
		return false, fmt.Errorf("check service links: %w", err)
	}
	return dependents > 0, nil
}

// DeleteService removes a service unless it is linked to any booking.
func (s *Store) DeleteService(ctx context.Context, id int64) error {
	linked, err := s.ServiceLinked(ctx, id)
	if err != nil {
		return err
	}
	if linked {
		return ErrServiceInUse
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM services WHERE service_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete service %d: %w", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}
