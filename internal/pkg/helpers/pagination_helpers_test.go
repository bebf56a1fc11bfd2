package helpers

import "testing"

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page clamps to first", 0, 10, 0, 10},
		{"negative page clamps to first", -4, 10, 0, 10},
		{"zero size uses default", 2, 0, 10, DefaultPageSize},
		{"oversized size uses default", 1, 500, 0, DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Fatalf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.size, offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 10)
	if info.TotalPages != 5 {
		t.Fatalf("expected 5 total pages, got %d", info.TotalPages)
	}
	if info.CurrentPage != 2 {
		t.Fatalf("expected current page 2, got %d", info.CurrentPage)
	}
	if info.TotalItems != 45 {
		t.Fatalf("expected 45 total items, got %d", info.TotalItems)
	}

	large := NewPaginationInfo(5_000_000_000, 1, 100)
	if large.TotalItems != 5_000_000_000 {
		t.Fatalf("total item count must carry the repository's 64-bit total, got %d", large.TotalItems)
	}

	empty := NewPaginationInfo(0, 1, 10)
	if empty.TotalPages != 1 {
		t.Fatalf("empty result set should still report one page, got %d", empty.TotalPages)
	}

	overshoot := NewPaginationInfo(10, 9, 10)
	if overshoot.CurrentPage != 1 {
		t.Fatalf("page past the end should clamp to the last page, got %d", overshoot.CurrentPage)
	}
}
