package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	for _, provider := range []string{"mysql", "mariadb", "postgres", "postgresql", "sqlite", "sqlite3"} {
		l, err := NewLoader(provider, nil)
		require.NoError(t, err, provider)
		assert.NotNil(t, l)
	}

	_, err := NewLoader("mongodb", nil)
	assert.ErrorContains(t, err, "unsupported database provider")
}
