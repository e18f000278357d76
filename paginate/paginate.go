// Package paginate slices ordered collections into fixed-size pages
// addressed by 1-indexed page numbers.
package paginate

// DefaultPerPage is the listing size used unless a view chooses its
// own (group and profile pages use 5).
const DefaultPerPage = 10

type Page struct {
	// Number is the resolved page number, clamped to [1, TotalPages].
	Number     int
	PerPage    int
	Total      int
	TotalPages int
}

// New resolves a requested page number against a collection of total
// items. Out-of-range requests clamp to the nearest valid page; an
// empty collection yields a single empty page 1.
func New(total, perPage, requested int) Page {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	if requested < 1 {
		requested = 1
	}
	if requested > pages {
		requested = pages
	}
	return Page{
		Number:     requested,
		PerPage:    perPage,
		Total:      total,
		TotalPages: pages,
	}
}

// Offset is the number of items to skip to reach this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

func (p Page) HasPrev() bool {
	return p.Number > 1
}

func (p Page) Next() int {
	return p.Number + 1
}

func (p Page) Prev() int {
	return p.Number - 1
}

// Numbers lists every page number, for template page links.
func (p Page) Numbers() []int {
	nums := make([]int, p.TotalPages)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}
