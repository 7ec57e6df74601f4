package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/watchscape/internal/model"
)

func TestPinCapacity(t *testing.T) {
	repo := NewPinRepository(newTestDB(t))

	for i := 1; i <= model.MaxPinnedFilms; i++ {
		err := repo.Pin(&model.PinnedFilm{UserID: "u1", TmdbID: i, Title: fmt.Sprintf("film %d", i)})
		require.NoError(t, err)
	}

	// 第 7 部被拒绝，存量保持 6
	err := repo.Pin(&model.PinnedFilm{UserID: "u1", TmdbID: 7, Title: "one too many"})
	assert.ErrorIs(t, err, ErrPinLimit)

	count, err := repo.CountByUser("u1")
	require.NoError(t, err)
	assert.Equal(t, model.MaxPinnedFilms, count)

	// 上限按用户隔离
	assert.NoError(t, repo.Pin(&model.PinnedFilm{UserID: "u2", TmdbID: 1, Title: "film 1"}))
}

func TestPinRejectsDuplicate(t *testing.T) {
	repo := NewPinRepository(newTestDB(t))

	require.NoError(t, repo.Pin(&model.PinnedFilm{UserID: "u1", TmdbID: 42, Title: "X"}))
	err := repo.Pin(&model.PinnedFilm{UserID: "u1", TmdbID: 42, Title: "X"})
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}

func TestUnpin(t *testing.T) {
	repo := NewPinRepository(newTestDB(t))

	require.NoError(t, repo.Pin(&model.PinnedFilm{UserID: "u1", TmdbID: 42, Title: "X"}))
	require.NoError(t, repo.Unpin("u1", 42))

	pins, err := repo.ListByUser("u1")
	require.NoError(t, err)
	assert.Empty(t, pins)

	assert.ErrorIs(t, repo.Unpin("u1", 42), ErrNotFound)
}
