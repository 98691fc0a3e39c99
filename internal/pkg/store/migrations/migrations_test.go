package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryUpHasDown(t *testing.T) {
	entries, err := fs.ReadDir(Files(), ".")
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, e := range entries {
		names[e.Name()] = true
	}

	ups := 0
	for name := range names {
		if strings.HasSuffix(name, ".up.sql") {
			ups++
			down := strings.TrimSuffix(name, ".up.sql") + ".down.sql"
			assert.True(t, names[down], "missing %s", down)
		}
	}
	assert.Equal(t, 3, ups)
}

func TestDatabaseURL(t *testing.T) {
	url, err := databaseURL("postgres://u:p@localhost:5432/db?sslmode=disable")
	require.NoError(t, err)
	assert.Equal(t, "pgx5://u:p@localhost:5432/db?sslmode=disable", url)

	url, err = databaseURL("postgresql://localhost/db")
	require.NoError(t, err)
	assert.Equal(t, "pgx5://localhost/db", url)

	_, err = databaseURL("host=localhost dbname=db")
	assert.Error(t, err)
}

func TestDownRejectsZeroSteps(t *testing.T) {
	assert.Error(t, Down("postgres://localhost/db", 0))
}
