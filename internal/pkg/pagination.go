package pkg

import (
	"context"
	"math"

	"github.com/simp-lee/pagination"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	// windowSize is the maximum number of page buttons shown at once.
	windowSize = 5
)

// TotalPages computes ceil(total/limit). It returns 0 when limit <= 0 or
// total <= 0, matching the API's pagination envelope semantics.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// ClampPage normalizes a 1-based page number.
func ClampPage(page int) int {
	if page < 1 {
		return defaultPage
	}
	return page
}

// ClampLimit normalizes a page size to [1, maxLimit], defaulting to 10.
func ClampLimit(limit int) int {
	if limit < 1 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// PageWindow returns the sequence of page numbers to display for the
// given current page, at most 5 entries.
//
// When totalPages <= 5 the window is 1..totalPages. Otherwise it is
// centered on current and clamped so it never runs off either end:
// current near the start yields 1..5, near the end yields
// totalPages-4..totalPages. A current beyond the last page is clamped
// to it.
func PageWindow(current, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}

	// One synthetic item per page so the paginator's page count equals
	// totalPages; only the navigation range is consumed.
	p := pagination.NewPaginator(
		pagination.WithItemsPerPage[struct{}](1),
		pagination.WithPagesInRange[struct{}](windowSize),
		pagination.WithKnownTotal[struct{}](int64(totalPages)),
		pagination.WithSliceCallback(func(context.Context, int, int) ([]struct{}, error) {
			return nil, nil
		}),
	)

	result, err := p.Paginate(context.Background(), ClampPage(current))
	if err != nil {
		return nil
	}
	return result.Pages
}
