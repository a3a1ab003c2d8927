package storage

import (
	"fmt"
	"sort"

	"github.com/adfharrison1/go-sortdex/pkg/domain"
)

// paginate cuts one page out of ascending match positions
func paginate(positions []int, options *domain.PaginationOptions) (*domain.PaginationResult, error) {
	if options.After != "" {
		return applyCursorPagination(positions, options)
	}
	return applyOffsetPagination(positions, options)
}

// applyCursorPagination returns the page following the cursor's position
func applyCursorPagination(positions []int, options *domain.PaginationOptions) (*domain.PaginationResult, error) {
	cursor, err := domain.DecodeCursor(options.After)
	if err != nil {
		return nil, fmt.Errorf("invalid after cursor: %w", err)
	}

	// Positions are ascending, so the page starts at the first one past the cursor
	start := sort.SearchInts(positions, cursor.Position+1)
	return buildPage(positions, start, effectiveLimit(options))
}

// applyOffsetPagination applies offset-based pagination
func applyOffsetPagination(positions []int, options *domain.PaginationOptions) (*domain.PaginationResult, error) {
	return buildPage(positions, options.Offset, effectiveLimit(options))
}

func effectiveLimit(options *domain.PaginationOptions) int {
	limit := options.Limit
	if limit <= 0 {
		limit = 50 // default
	}
	if options.MaxLimit > 0 && limit > options.MaxLimit {
		limit = options.MaxLimit
	}
	return limit
}

func buildPage(positions []int, start, limit int) (*domain.PaginationResult, error) {
	result := &domain.PaginationResult{
		Documents: []domain.Document{},
		Positions: []int{},
		Total:     int64(len(positions)),
		HasPrev:   start > 0,
	}

	// Check bounds
	if start >= len(positions) {
		return result, nil
	}

	end := start + limit
	if end < len(positions) {
		result.HasNext = true
	} else {
		end = len(positions)
	}

	result.Positions = append(result.Positions, positions[start:end]...)

	// Generate cursor for the next page
	if result.HasNext {
		next, err := domain.EncodeCursor(&domain.Cursor{Position: positions[end-1]})
		if err != nil {
			return nil, err
		}
		result.NextCursor = next
	}

	return result, nil
}
