package multigrid

import (
	"errors"
	"path/filepath"
	"testing"

	sqlx "github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openMappingDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "mapping.db")
	db, err := sqlx.Connect("sqlite", dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	db.MustExec(`CREATE TABLE VmmChannelMapping (
		ChipID INTEGER NOT NULL,
		Channel INTEGER NOT NULL,
		MGChannel INTEGER,
		MinRun INTEGER NOT NULL,
		MaxRun INTEGER NOT NULL
	)`)
	return db
}

func insertMapping(t *testing.T, db *sqlx.DB, chipID int64, channel int64, mgChannel *int64, minRun int, maxRun int) {
	t.Helper()
	_, err := db.Exec("INSERT INTO VmmChannelMapping (ChipID, Channel, MGChannel, MinRun, MaxRun) VALUES (?, ?, ?, ?, ?)",
		chipID, channel, mgChannel, minRun, maxRun)
	require.NoError(t, err)
}

func mg(channel int64) *int64 {
	return &channel
}

func TestLoadChannelMap(t *testing.T) {
	db := openMappingDB(t)
	insertMapping(t, db, 2, 0, mg(11), 0, 100)
	insertMapping(t, db, 3, 0, mg(40), 0, 100)
	insertMapping(t, db, 3, 1, nil, 0, 100)
	// Superseded entry for later runs
	insertMapping(t, db, 3, 0, mg(41), 101, 200)

	channelMap, err := LoadChannelMap(db, 50)
	require.NoError(t, err)
	assert.Equal(t, 3, channelMap.Len())
	assert.Equal(t, int64(11), channelMap.Lookup(2, 0))
	assert.Equal(t, int64(40), channelMap.Lookup(3, 0))
	assert.Equal(t, UnmappedChannel, channelMap.Lookup(3, 1))

	channelMap, err = LoadChannelMap(db, 150)
	require.NoError(t, err)
	assert.Equal(t, 1, channelMap.Len())
	assert.Equal(t, int64(41), channelMap.Lookup(3, 0))

	channelMap, err = LoadChannelMap(db, 500)
	require.NoError(t, err)
	assert.Equal(t, 0, channelMap.Len())
}

func TestLoadChannelMapInvalidRow(t *testing.T) {
	db := openMappingDB(t)
	insertMapping(t, db, 2, 0, mg(1), 0, 10)
	insertMapping(t, db, 8, 0, mg(2), 0, 10)

	channelMap, err := LoadChannelMap(db, 5)
	assert.Nil(t, channelMap)
	var rowErr *ErrMappingRow
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, int64(8), rowErr.Entry.ChipID)
	assert.Equal(t, 1, rowErr.Row)
}

func TestLoadChannelMapMissingTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	db, err := sqlx.Connect("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = LoadChannelMap(db, 1)
	assert.Error(t, err)
}
