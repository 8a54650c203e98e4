package pagination

import "testing"

func TestPageCount(t *testing.T) {
	cases := []struct {
		name     string
		total    int
		perPage  int
		numPages int
		lastLen  int // items on the last page
	}{
		{"empty", 0, 10, 1, 0},
		{"exact single page", 10, 10, 1, 10},
		{"partial single page", 7, 10, 1, 7},
		{"exact multiple", 30, 10, 3, 10},
		{"remainder", 13, 10, 2, 3},
		{"one item", 1, 10, 1, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := New(tc.perPage)
			pg := p.Page(tc.total, "")
			if pg.NumPages != tc.numPages {
				t.Fatalf("NumPages = %d, want %d", pg.NumPages, tc.numPages)
			}
			last := p.Page(tc.total, "9999")
			got := tc.total - last.Offset
			if got < 0 {
				got = 0
			}
			if got > last.Limit {
				got = last.Limit
			}
			if got != tc.lastLen {
				t.Fatalf("last page holds %d items, want %d", got, tc.lastLen)
			}
		})
	}
}

func TestPageClamping(t *testing.T) {
	p := New(10)

	cases := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-3", 1},
		{"1", 1},
		{"2", 2},
		{"3", 3},
		{"4", 3},   // past the end clamps to the last page
		{"999", 3}, // far past the end still clamps
	}

	for _, tc := range cases {
		pg := p.Page(25, tc.raw)
		if pg.Number != tc.want {
			t.Errorf("Page(25, %q).Number = %d, want %d", tc.raw, pg.Number, tc.want)
		}
	}
}

func TestPageWindow(t *testing.T) {
	p := New(10)

	pg := p.Page(25, "2")
	if pg.Offset != 10 || pg.Limit != 10 {
		t.Fatalf("page 2 window = (%d, %d), want (10, 10)", pg.Offset, pg.Limit)
	}
	if !pg.HasPrevious() || !pg.HasNext() {
		t.Fatalf("page 2 of 3 should have both neighbours")
	}

	last := p.Page(25, "3")
	if last.HasNext() {
		t.Fatalf("last page should not have a next page")
	}
	if last.NextNumber() != 3 || last.PreviousNumber() != 2 {
		t.Fatalf("neighbour numbers = (%d, %d), want (2, 3)", last.PreviousNumber(), last.NextNumber())
	}

	first := p.Page(25, "1")
	if first.HasPrevious() {
		t.Fatalf("first page should not have a previous page")
	}
	if first.PreviousNumber() != 1 {
		t.Fatalf("PreviousNumber on first page = %d, want 1", first.PreviousNumber())
	}
}

func TestEmptyResultSet(t *testing.T) {
	p := New(10)
	pg := p.Page(0, "5")
	if pg.Number != 1 || pg.NumPages != 1 || pg.Offset != 0 {
		t.Fatalf("empty set page = %+v, want page 1 of 1", pg)
	}
}
