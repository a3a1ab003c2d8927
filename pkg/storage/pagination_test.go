package storage

import (
	"testing"

	"github.com/adfharrison1/go-sortdex/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate_Offset(t *testing.T) {
	positions := []int{1, 3, 5, 7, 9}

	page, err := paginate(positions, &domain.PaginationOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5}, page.Positions)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)
	assert.Equal(t, int64(5), page.Total)
	assert.NotEmpty(t, page.NextCursor)

	page, err = paginate(positions, &domain.PaginationOptions{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, positions, page.Positions)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
	assert.Empty(t, page.NextCursor)

	page, err = paginate(positions, &domain.PaginationOptions{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Positions)
}

func TestPaginate_CursorWalksEveryPage(t *testing.T) {
	positions := []int{0, 2, 4, 6, 8, 10, 12}
	options := &domain.PaginationOptions{Limit: 3}

	var seen []int
	for pages := 0; pages < 10; pages++ {
		page, err := paginate(positions, options)
		require.NoError(t, err)
		seen = append(seen, page.Positions...)
		if !page.HasNext {
			break
		}
		options = &domain.PaginationOptions{Limit: 3, After: page.NextCursor}
	}
	assert.Equal(t, positions, seen)
}

func TestPaginate_BadCursor(t *testing.T) {
	_, err := paginate([]int{1}, &domain.PaginationOptions{After: "not-base64!"})
	assert.Error(t, err)
}

func TestPaginate_MaxLimitCaps(t *testing.T) {
	page, err := paginate([]int{1, 2, 3, 4}, &domain.PaginationOptions{Limit: 0, MaxLimit: 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, page.Positions)
}
