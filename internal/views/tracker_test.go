package views

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockViewRepo struct {
	counts map[string]int64
	err    error
}

func newMockViewRepo() *mockViewRepo {
	return &mockViewRepo{counts: make(map[string]int64)}
}

func (m *mockViewRepo) Increment(_ context.Context, slug string) error {
	if m.err != nil {
		return m.err
	}
	m.counts[slug]++
	return nil
}

func (m *mockViewRepo) Count(_ context.Context, slug string) (int64, error) {
	return m.counts[slug], nil
}

func TestTrack_DedupsPerSession(t *testing.T) {
	repo := newMockViewRepo()
	tr := NewTracker(repo, 1000, 0.001)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		count, err := tr.Track(ctx, "s1", "sourdough")
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "repeat views report the stored count")
	}

	assert.Equal(t, int64(1), repo.counts["sourdough"])
}

func TestTrack_DistinctSessionsCount(t *testing.T) {
	repo := newMockViewRepo()
	tr := NewTracker(repo, 1000, 0.001)
	ctx := context.Background()

	count, err := tr.Track(ctx, "s1", "sourdough")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = tr.Track(ctx, "s2", "sourdough")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = tr.Track(ctx, "s1", "baguette")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.Equal(t, int64(2), repo.counts["sourdough"])
	assert.Equal(t, int64(1), repo.counts["baguette"])
}

func TestTrack_RepoError(t *testing.T) {
	repo := newMockViewRepo()
	repo.err = errors.New("db down")
	tr := NewTracker(repo, 1000, 0.001)

	_, err := tr.Track(context.Background(), "s1", "sourdough")
	require.Error(t, err)
}
