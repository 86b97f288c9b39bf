package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Store owns the sqlite database for the whole property: guests, rooms,
// services, bookings and bills live in one file so referential checks can
// span them.
type Store struct {
	db     *sql.DB
	path   string
	logger zerolog.Logger
}

// Open opens (creating and seeding if needed) the database at path.
// Foreign-key enforcement is switched on in the DSN so every pooled
// connection gets it.
func Open(path string, logger *zerolog.Logger) (*Store, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Одна запись за раз: настольное однопользовательское приложение.
	// A single connection also keeps :memory: databases stable in tests.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	store := &Store{
		db:     db,
		path:   path,
		logger: logger.With().Str("component", "store").Logger(),
	}

	if err := store.seed(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	store.logger.Info().Str("path", path).Msg("database ready")
	return store, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS admins (
            admin_id INTEGER PRIMARY KEY,
            last_name TEXT NOT NULL,
            first_name TEXT NOT NULL,
            middle_name TEXT,
            login TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            phone TEXT,
            email TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS guests (
            guest_id INTEGER PRIMARY KEY AUTOINCREMENT,
            last_name TEXT NOT NULL,
            first_name TEXT NOT NULL,
            middle_name TEXT,
            phone TEXT,
            email TEXT,
            passport TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS rooms (
            room_number INTEGER PRIMARY KEY,
            room_type TEXT NOT NULL,
            price REAL NOT NULL CHECK (price >= 0),
            availability BOOLEAN NOT NULL DEFAULT 1
        )`,
		`CREATE TABLE IF NOT EXISTS services (
            service_id INTEGER PRIMARY KEY AUTOINCREMENT,
            service_name TEXT NOT NULL,
            price REAL NOT NULL CHECK (price >= 0),
            description TEXT,
            service_type TEXT NOT NULL CHECK (service_type IN ('one_time', 'daily')),
            availability BOOLEAN NOT NULL DEFAULT 1
        )`,
		`CREATE TABLE IF NOT EXISTS bookings (
            booking_id INTEGER PRIMARY KEY AUTOINCREMENT,
            guest_id INTEGER NOT NULL,
            room_number INTEGER NOT NULL,
            checkin_date TEXT NOT NULL,
            checkout_date TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'reserved'
                CHECK (status IN ('reserved', 'occupied', 'completed', 'cancelled')),
            notes TEXT,
            FOREIGN KEY (guest_id) REFERENCES guests(guest_id),
            FOREIGN KEY (room_number) REFERENCES rooms(room_number) ON UPDATE CASCADE
        )`,
		`CREATE TABLE IF NOT EXISTS booking_services (
            booking_id INTEGER NOT NULL,
            service_id INTEGER NOT NULL,
            PRIMARY KEY (booking_id, service_id),
            FOREIGN KEY (booking_id) REFERENCES bookings(booking_id),
            FOREIGN KEY (service_id) REFERENCES services(service_id)
        )`,
		`CREATE TABLE IF NOT EXISTS bills (
            bill_id INTEGER PRIMARY KEY AUTOINCREMENT,
            booking_id INTEGER NOT NULL,
            total_amount REAL NOT NULL CHECK (total_amount > 0),
            payment_status TEXT NOT NULL DEFAULT 'unpaid'
                CHECK (payment_status IN ('unpaid', 'paid')),
            FOREIGN KEY (booking_id) REFERENCES bookings(booking_id)
        )`,

		`CREATE INDEX IF NOT EXISTS idx_bookings_guest_id ON bookings(guest_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_room_number ON bookings(room_number)`,
		`CREATE INDEX IF NOT EXISTS idx_bills_booking_id ON bills(booking_id)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}

// seed inserts the property's initial room stock, the service catalog and the
// admin accounts the first time the database is created.
func (s *Store) seed() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM rooms`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	rooms := []struct {
		number    int64
		roomType  string
		price     float64
		available bool
	}{
		{101, "Стандартный", 1000, true},
		{102, "Стандартный", 1000, true},
		{103, "Стандартный", 1500, false},
		{104, "Стандартный", 2000, true},
		{202, "Люкс", 2500, true},
		{203, "Люкс", 3000, false},
		{204, "Люкс", 3500, true},
		{303, "Апартаменты", 8000, true},
		{304, "Апартаменты", 10000, true},
	}
	for _, r := range rooms {
		if _, err := tx.Exec(
			`INSERT INTO rooms (room_number, room_type, price, availability) VALUES (?, ?, ?, ?)`,
			r.number, r.roomType, r.price, r.available,
		); err != nil {
			return err
		}
	}

	services := []struct {
		name        string
		price       float64
		description string
		serviceType string
		available   bool
	}{
		{"Уборка номера", 500, "Ежедневная уборка номера в течение пребывания", "daily", true},
		{"Трансфер", 1500, "Трансфер от/до аэропорта", "one_time", true},
		{"Завтрак", 350, "Континентальный завтрак в ресторане отеля", "daily", true},
		{"Массаж", 1200, "Массаж с использованием эфирных масел", "one_time", false},
	}
	for _, svc := range services {
		if _, err := tx.Exec(
			`INSERT INTO services (service_name, price, description, service_type, availability) VALUES (?, ?, ?, ?, ?)`,
			svc.name, svc.price, svc.description, svc.serviceType, svc.available,
		); err != nil {
			return err
		}
	}

	admins := []struct {
		lastName, firstName, middleName string
		login, password, phone, email   string
	}{
		{"Иванов", "Алексей", "Сергеевич", "1", "1", "+7 (999) 123-45-67", "ivanov.alexey@example.com"},
		{"Кузнецов", "Дмитрий", "Владимирович", "2", "2", "+7 (999) 987-65-43", "kuznetsov.dmitry@example.com"},
		{"Смирнова", "Анна", "Игоревна", "3", "3", "+7 (999) 543-21-09", "smirnova.anna@example.com"},
	}
	for _, a := range admins {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(
			`INSERT INTO admins (last_name, first_name, middle_name, login, password_hash, phone, email)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			a.lastName, a.firstName, a.middleName, a.login, string(hash), a.phone, a.email,
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info().
		Int("rooms", len(rooms)).
		Int("services", len(services)).
		Int("admins", len(admins)).
		Msg("seeded initial data")
	return nil
}

// begin starts a transaction that is rolled back unless committed.
func (s *Store) begin(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

func (s *Store) Close() error {
	return s.db.Close()
}
