package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteSelectWithRows(t *testing.T) {
	store := newTestStore(t)

	res, err := store.Execute(context.Background(),
		`SELECT room_number, room_type FROM rooms WHERE room_number = ?`, 101)
	require.NoError(t, err)
	assert.False(t, res.Empty())
	assert.Equal(t, []string{"room_number", "room_type"}, res.Columns)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, int64(101), res.Rows[0][0])
}

func TestExecuteSelectEmptyIsNotFailure(t *testing.T) {
	store := newTestStore(t)

	res, err := store.Execute(context.Background(),
		`SELECT room_number FROM rooms WHERE room_number = ?`, 999)
	require.NoError(t, err)
	assert.True(t, res.Empty())
}

func TestExecuteStatementReportsRowsAffected(t *testing.T) {
	store := newTestStore(t)

	res, err := store.Execute(context.Background(),
		`UPDATE rooms SET price = price WHERE room_type = ?`, "Люкс")
	require.NoError(t, err)
	assert.True(t, res.Empty())
	assert.Equal(t, int64(3), res.RowsAffected)
}

func TestExecuteFailureIsDistinctFromEmpty(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Execute(context.Background(), `SELECT * FROM no_such_table`)
	assert.Error(t, err)

	// constraint violation surfaces as an error, not an empty result
	_, err = store.Execute(context.Background(),
		`INSERT INTO bookings (guest_id, room_number, checkin_date, checkout_date)
         VALUES (?, ?, ?, ?)`, 999, 101, "01.03.2025", "02.03.2025")
	assert.Error(t, err)
}

func TestForeignKeysEnforced(t *testing.T) {
	store := newTestStore(t)

	res, err := store.Execute(context.Background(), `PRAGMA foreign_keys`)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.EqualValues(t, 1, res.Rows[0][0])
}
