package audit

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RecordAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Record("list_projects", nil, nil))
	require.NoError(t, s.Record("open_project", map[string]interface{}{"project_id": "p1"}, nil))
	require.NoError(t, s.Record("send_console", map[string]interface{}{"node": "R1"}, errors.New("console disconnected")))

	entries, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "send_console", entries[0].Tool)
	assert.False(t, entries[0].Success)
	assert.Equal(t, "console disconnected", entries[0].Error)

	assert.Equal(t, "list_projects", entries[2].Tool)
	assert.True(t, entries[2].Success)
}

func TestStore_RecentRespectsLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record("noop", nil, nil))
	}

	entries, err := s.Recent(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
