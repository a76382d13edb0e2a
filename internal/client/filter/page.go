package filter

import "github.com/acemeet/aceletters/internal/client/models"

// PageSize is the number of profile cards shown per browse page.
const PageSize = 24

// Page returns the page-th slice (0-based) of items, or an empty slice
// when the page is out of range. size <= 0 falls back to PageSize.
func Page(items []models.Profile, page, size int) []models.Profile {
	if size <= 0 {
		size = PageSize
	}
	if page < 0 {
		return nil
	}

	start := page * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Pages returns how many pages of the given size the items span.
func Pages(n, size int) int {
	if size <= 0 {
		size = PageSize
	}
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}
