package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/testutil"
)

func TestNewMySQLTemplateRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLTemplateRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestTemplateRepository_GetAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLTemplateRepository(db)

	// Inserted out of position order on purpose.
	fragments := []struct {
		category string
		position int
		fragment string
	}{
		{"greetings", 2, "Hello"},
		{"greetings", 1, "Salam"},
		{"closings", 1, "Thank you."},
	}
	for _, f := range fragments {
		_, err := db.Exec(`INSERT INTO message_templates (category, position, fragment) VALUES (?, ?, ?)`,
			f.category, f.position, f.fragment)
		require.NoError(t, err)
	}

	templates, err := repo.GetAll(context.Background())
	require.NoError(t, err)

	assert.Len(t, templates, 2)
	assert.Equal(t, []string{"Salam", "Hello"}, templates["greetings"])
	assert.Equal(t, []string{"Thank you."}, templates["closings"])
}

func TestTemplateRepository_GetAll_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLTemplateRepository(db)

	templates, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, templates)
}
