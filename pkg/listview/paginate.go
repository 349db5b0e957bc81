package listview

// DefaultWindowSize is the number of page buttons shown by the pager.
const DefaultWindowSize = 5

// Page is one window of an ordered collection.
type Page[T any] struct {
	Items      []T
	TotalPages int
	// Current is the requested page clamped to [1, max(1, TotalPages)].
	Current int
}

// TotalPages returns ceil(count/pageSize); an empty collection has zero
// pages.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// ClampPage keeps page inside [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate slices out the requested page of items. Items is never nil.
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	total := TotalPages(len(items), pageSize)
	current := ClampPage(page, total)
	if total == 0 {
		return Page[T]{Items: []T{}, Current: current}
	}

	start := (current - 1) * pageSize
	end := min(start+pageSize, len(items))
	window := make([]T, end-start)
	copy(window, items[start:end])
	return Page[T]{Items: window, TotalPages: total, Current: current}
}

// PageWindow returns the page numbers shown by the pager: size pages centred
// on current, shifted to stay within [1, totalPages].
func PageWindow(current, totalPages, size int) []int {
	if totalPages <= 0 || size <= 0 {
		return []int{}
	}
	start := max(1, current-size/2)
	end := min(totalPages, start+size-1)
	if end-start < size-1 {
		start = max(1, end-size+1)
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
