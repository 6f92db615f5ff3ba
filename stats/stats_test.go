package stats

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEmptyStore(t *testing.T) {
	s := openTemp(t)

	runs, err := s.RecentRuns(0)
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, ok, err := s.BestRun()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordAndQuery(t *testing.T) {
	s := openTemp(t)
	at := time.Unix(1_700_000_000, 0)

	for _, r := range []Run{
		{Levels: 3, Deaths: 4, Frames: 9000, Seed: 1, CreatedAt: at},
		{Levels: 3, Deaths: 1, Frames: 12000, Seed: 2, CreatedAt: at},
		{Levels: 3, Deaths: 1, Frames: 8000, Seed: 3, CreatedAt: at},
	} {
		id, err := s.RecordRun(r)
		require.NoError(t, err)
		assert.NotZero(t, id)
	}

	recent, err := s.RecentRuns(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, uint64(3), recent[0].Seed)
	assert.Equal(t, uint64(2), recent[1].Seed)
	assert.True(t, recent[0].CreatedAt.Equal(at))

	best, ok, err := s.BestRun()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, best.Deaths)
	assert.Equal(t, uint64(8000), best.Frames)
}

func TestRecordRunStampsTime(t *testing.T) {
	s := openTemp(t)
	before := time.Now().Add(-time.Second)

	_, err := s.RecordRun(Run{Levels: 1})
	require.NoError(t, err)

	runs, err := s.RecentRuns(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].CreatedAt.Before(before.Truncate(time.Second)))
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.RecordRun(Run{Levels: 2, Deaths: 7})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 7, runs[0].Deaths)
}
