package database

import (
	"context"
	"path/filepath"
	"testing"

	"frontdesk/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformBackupCreatesReadableSnapshot(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "hotel.db")

	logger := zerolog.Nop()
	store, err := Open(dbPath, &logger)
	require.NoError(t, err)
	defer store.Close()

	backupDir := filepath.Join(tmpDir, "backups")
	svc := NewBackupService(dbPath, config.BackupConfig{
		Enabled:     true,
		StoragePath: backupDir,
	}, &logger)

	require.NoError(t, svc.PerformBackup())

	files, err := filepath.Glob(filepath.Join(backupDir, "hotel_*.db"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	// snapshot opens as a regular database with the seeded data
	snapshot, err := Open(files[0], &logger)
	require.NoError(t, err)
	defer snapshot.Close()

	rooms, err := snapshot.ListRooms(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, rooms, 9)
}

func TestCleanupSkipsWhenRetentionDisabled(t *testing.T) {
	logger := zerolog.Nop()
	svc := NewBackupService("unused.db", config.BackupConfig{RetentionDays: 0}, &logger)

	assert.NotPanics(t, func() { svc.CleanupOldBackups() })
}
