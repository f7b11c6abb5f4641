package postgres

import (
	"testing"

	"github.com/LeJamon/goBondedMarkets/internal/storage/relationaldb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholder(t *testing.T) {
	d := Dialect{}
	assert.Equal(t, "$1", d.Placeholder(1))
	assert.Equal(t, "$10", d.Placeholder(10))
}

func TestRegistered(t *testing.T) {
	assert.Contains(t, relationaldb.Drivers(), relationaldb.DriverPostgres)

	m, err := relationaldb.NewManager(relationaldb.PostgresConfig())
	require.NoError(t, err)
	assert.False(t, m.IsConnected())
}
