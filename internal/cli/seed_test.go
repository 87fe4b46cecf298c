package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/libris/internal/database"
	"github.com/avolkov/libris/internal/database/books"
)

func TestSeedCommand_LoadsDemoCatalog(t *testing.T) {
	dbPath, cleanup := testDBPath(t)
	defer cleanup()

	cmd := NewSeedCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-db", dbPath}))
	require.NoError(t, cmd.Run())

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	catalog, err := books.NewRepository(db.DB).All()
	require.NoError(t, err)
	assert.Len(t, catalog, len(demoCatalog))
}

func TestSeedCommand_Reseed(t *testing.T) {
	dbPath, cleanup := testDBPath(t)
	defer cleanup()

	cmd := NewSeedCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-db", dbPath}))
	require.NoError(t, cmd.Run())
	// Running again must not duplicate titles
	require.NoError(t, cmd.Run())

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	catalog, err := books.NewRepository(db.DB).All()
	require.NoError(t, err)
	assert.Len(t, catalog, len(demoCatalog))
}
