package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(FS, "sql")
	require.NoError(t, err)

	ups, downs := map[string]bool{}, map[string]bool{}
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}
	assert.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestSchemaCarriesSlotIndex(t *testing.T) {
	schema, err := fs.ReadFile(FS, "sql/000001_init_schema.up.sql")
	require.NoError(t, err)

	assert.Contains(t, string(schema), "CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_doctor_slot")
	assert.Contains(t, string(schema), "status <> 4")
	assert.Contains(t, string(schema), "CONSTRAINT idx_doctor_specialty UNIQUE")
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("down")
	require.NoError(t, err)
	assert.Equal(t, Down, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}
