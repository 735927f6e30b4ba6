package domain

// Paginate slices items for the requested page. Out-of-range pages are
// clamped to [1, totalPages] rather than rejected, so "/0" and "/9999"
// both render a valid page. Returns the page slice, the clamped page
// number and the total page count (at least 1, even for empty input).
func Paginate[T any](items []T, page, perPage int) ([]T, int, int) {
	if perPage < 1 {
		perPage = 1
	}
	totalPages := (len(items) + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * perPage
	end := start + perPage
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], page, totalPages
}
