package pagination

import "testing"

func TestNormalizeDefaultsAndCaps(t *testing.T) {
	n := Params{}.Normalize()
	if n.Page != 1 || n.Size != DefaultSize {
		t.Fatalf("unexpected defaults: %+v", n)
	}

	n = Params{Page: 3, Size: 500}.Normalize()
	if n.Size != MaxSize {
		t.Fatalf("expected size capped at %d, got %d", MaxSize, n.Size)
	}
	if n.Page != 3 {
		t.Fatalf("page should be preserved, got %d", n.Page)
	}
}

func TestOffset(t *testing.T) {
	if got := (Params{Page: 1, Size: 10}).Offset(); got != 0 {
		t.Fatalf("expected offset 0, got %d", got)
	}
	if got := (Params{Page: 4, Size: 10}).Offset(); got != 30 {
		t.Fatalf("expected offset 30, got %d", got)
	}
}

func TestNewPageTotals(t *testing.T) {
	page := NewPage([]string{"a", "b"}, 11, Params{Page: 1, Size: 5})
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", page.TotalPages)
	}
	if len(page.Items) != 2 || page.Total != 11 {
		t.Fatalf("unexpected page: %+v", page)
	}

	empty := NewPage[string](nil, 0, Params{})
	if empty.Items == nil {
		t.Fatal("items should never be nil")
	}
}
