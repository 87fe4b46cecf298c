package database

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/libris/internal/entities"
)

func TestNewDatabase(t *testing.T) {
	dbPath := "./test_db_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	defer os.Remove(dbPath)

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	// All three tables are migrated and writable
	user := &entities.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, db.DB.Create(user).Error)

	book := &entities.Book{Name: "Dune", Author: "Frank Herbert"}
	require.NoError(t, db.DB.Create(book).Error)

	reservation := &entities.Reservation{BookID: book.ID, UserID: user.ID}
	require.NoError(t, db.DB.Create(reservation).Error)

	assert.False(t, book.Reserved)
}

func TestDatabase_Close(t *testing.T) {
	dbPath := "./test_db_close.db"
	defer os.Remove(dbPath)

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	assert.NoError(t, db.Close())
}
