// Package pager slices a result set into fixed-size pages.
package pager

// PageSize is the number of records shown per page
const PageSize = 12

// TotalPages returns the page count for n records, never less than 1
func TotalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// Clamp bounds page into [1, TotalPages(n)]
func Clamp(page, n int) int {
	if page < 1 {
		return 1
	}
	if total := TotalPages(n); page > total {
		return total
	}
	return page
}

// Slice returns the records on page, clamped to the valid range
func Slice[T any](records []T, page int) []T {
	page = Clamp(page, len(records))
	start := (page - 1) * PageSize
	if start >= len(records) {
		return nil
	}
	end := min(start+PageSize, len(records))
	return records[start:end]
}

// Next advances one page, stopping at the last
func Next(page, n int) int { return Clamp(page+1, n) }

// Prev goes back one page, stopping at the first
func Prev(page, n int) int { return Clamp(page-1, n) }

// Jump moves to an arbitrary page, clamped
func Jump(page, n int) int { return Clamp(page, n) }

// ShowControls reports whether navigation is needed at all
func ShowControls(n int) bool { return TotalPages(n) > 1 }

// Range returns the 1-based positions of the first and last record on page.
// Both are zero when there are no records.
func Range(page, n int) (from, to int) {
	if n <= 0 {
		return 0, 0
	}
	page = Clamp(page, n)
	from = (page-1)*PageSize + 1
	to = min(page*PageSize, n)
	return from, to
}
