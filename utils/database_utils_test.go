package utils

import (
	"testing"

	"github.com/streamtube-app/streamtube/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTempDBExists(t *testing.T) {
	_, dbName := CreateTempDB(t)

	exists, err := IsDatabaseExist(dbName)
	assert.Nil(t, err)
	assert.True(t, exists)
}

func TestIsDatabaseExist(t *testing.T) {
	exists, err := IsDatabaseExist("postgres")
	assert.Nil(t, err)
	assert.True(t, exists)

	exists, err = IsDatabaseExist("DOES_NOT_EXIST")
	assert.Nil(t, err)
	assert.False(t, exists)
}

// The server binary must connect to the application database named by
// DB_NAME, never the maintenance database behind GetDefaultDBConnection.
func TestGetDBConnectionTargetsConfiguredDatabase(t *testing.T) {
	_, dbName := CreateTempDB(t)
	t.Setenv("DB_NAME", dbName)

	db, err := GetDBConnection()
	require.NoError(t, err)
	defer func() {
		// Close before cleanup so the temp DB can be dropped.
		conn, _ := db.DB()
		conn.Close()
	}()

	var current string
	require.NoError(t, db.Raw("SELECT current_database()").Scan(&current).Error)
	assert.Equal(t, dbName, current)
	assert.NotEqual(t, "postgres", current)
}

// The Cursor columns must be assigned by the store in insert order; the
// pagination engine depends on them being strictly increasing.
func TestCursorColumnsAreMonotonic(t *testing.T) {
	db, _ := CreateTempDB(t)
	owner := TestCreateUser(t, db, "owner")

	var last int64
	for i := 0; i < 5; i++ {
		video := TestCreateVideo(t, db, owner.Id, "v", 0, true)
		var stored model.Video
		require.NoError(t, db.First(&stored, "id = ?", video.Id).Error)
		require.Greater(t, stored.Cursor, last)
		last = stored.Cursor
	}
}
