// Package pagination provides fixed-size page windows over counted result
// sets. Out-of-range page requests clamp to the nearest valid page instead of
// failing: a non-numeric page falls back to the first page, a page past the
// end falls back to the last.
package pagination

import "strconv"

// Pager produces page windows of a fixed size.
type Pager struct {
	perPage int
}

// Page describes one resolved window into a result set.
type Page struct {
	Number   int // 1-based, always within [1, NumPages]
	NumPages int // at least 1, even for an empty result set
	Total    int
	PerPage  int
	Offset   int
	Limit    int
}

// New creates a Pager. perPage values below 1 are coerced to 1.
func New(perPage int) *Pager {
	if perPage < 1 {
		perPage = 1
	}
	return &Pager{perPage: perPage}
}

// PerPage returns the configured page size.
func (p *Pager) PerPage() int {
	return p.perPage
}

// Page resolves the raw page parameter of a request against a total item
// count. raw may be empty or garbage; the result is always a valid page.
func (p *Pager) Page(total int, raw string) Page {
	if total < 0 {
		total = 0
	}
	numPages := (total + p.perPage - 1) / p.perPage
	if numPages < 1 {
		numPages = 1
	}

	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	return Page{
		Number:   number,
		NumPages: numPages,
		Total:    total,
		PerPage:  p.perPage,
		Offset:   (number - 1) * p.perPage,
		Limit:    p.perPage,
	}
}

// HasPrevious reports whether a page precedes this one.
func (pg Page) HasPrevious() bool {
	return pg.Number > 1
}

// HasNext reports whether a page follows this one.
func (pg Page) HasNext() bool {
	return pg.Number < pg.NumPages
}

// PreviousNumber returns the preceding page number, clamped to 1.
func (pg Page) PreviousNumber() int {
	if pg.Number <= 1 {
		return 1
	}
	return pg.Number - 1
}

// NextNumber returns the following page number, clamped to the last page.
func (pg Page) NextNumber() int {
	if pg.Number >= pg.NumPages {
		return pg.NumPages
	}
	return pg.Number + 1
}
