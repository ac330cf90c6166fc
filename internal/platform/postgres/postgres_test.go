package postgres

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	migrations "consentd/migrations/postgres"
)

func TestParseMigrations(t *testing.T) {
	t.Run("orders by version and ignores other files", func(t *testing.T) {
		fsys := fstest.MapFS{
			"sql/0010_add_index.sql": {Data: []byte("CREATE INDEX x ON t (a);")},
			"sql/0002_tables.sql":    {Data: []byte("CREATE TABLE t (a INT);")},
			"sql/README.md":          {Data: []byte("notes")},
		}

		got, err := ParseMigrations(fsys, "sql")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 2, got[0].Version)
		assert.Equal(t, "tables", got[0].Name)
		assert.Equal(t, 10, got[1].Version)
		assert.Equal(t, "add_index", got[1].Name)
	})

	t.Run("rejects duplicate versions", func(t *testing.T) {
		fsys := fstest.MapFS{
			"sql/0001_a.sql": {Data: []byte("SELECT 1;")},
			"sql/1_b.sql":    {Data: []byte("SELECT 2;")},
		}
		_, err := ParseMigrations(fsys, "sql")
		assert.ErrorContains(t, err, "duplicate migration version 1")
	})

	t.Run("embedded schema parses", func(t *testing.T) {
		got, err := ParseMigrations(migrations.FS, migrations.Dir)
		require.NoError(t, err)
		require.NotEmpty(t, got)
		assert.Equal(t, 1, got[0].Version)
		assert.Contains(t, got[0].SQL, "approved_sites")
	})
}
