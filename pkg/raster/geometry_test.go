package raster

import (
	"errors"
	"testing"

	"github.com/shouni/canvas-extend-kit/pkg/domain"
)

func TestSplitThirds(t *testing.T) {
	t.Run("3以上のすべての寸法で区間の合計が全長に一致すること", func(t *testing.T) {
		for total := 3; total <= 300; total++ {
			thirds, err := SplitThirds(total)
			if err != nil {
				t.Fatalf("total=%d: unexpected error: %v", total, err)
			}
			sum := thirds.First.Length() + thirds.Second.Length() + thirds.Last.Length()
			if sum != total {
				t.Errorf("total=%d: spans sum to %d", total, sum)
			}
			if thirds.First.Start != 0 || thirds.Last.End != total {
				t.Errorf("total=%d: spans do not cover the dimension", total)
			}
			if thirds.First.End != thirds.Second.Start || thirds.Second.End != thirds.Last.Start {
				t.Errorf("total=%d: spans are not contiguous", total)
			}
		}
	})

	t.Run("端数は最後の区間が吸収し、差は高々1であること", func(t *testing.T) {
		for total := 3; total <= 300; total++ {
			thirds, _ := SplitThirds(total)
			diff := thirds.Last.Length() - thirds.First.Length()
			if diff < 0 || diff > 1 {
				t.Errorf("total=%d: last span %d vs first span %d", total, thirds.Last.Length(), thirds.First.Length())
			}
		}
	})

	t.Run("既知の境界値", func(t *testing.T) {
		tests := []struct {
			total               int
			first, second, last int
		}{
			{3, 1, 1, 1},
			{4, 1, 1, 2},
			{90, 30, 30, 30},
			{100, 33, 33, 34},
		}
		for _, tt := range tests {
			thirds, err := SplitThirds(tt.total)
			if err != nil {
				t.Fatalf("total=%d: unexpected error: %v", tt.total, err)
			}
			if thirds.First.Length() != tt.first || thirds.Second.Length() != tt.second || thirds.Last.Length() != tt.last {
				t.Errorf("total=%d: got %d/%d/%d, want %d/%d/%d", tt.total,
					thirds.First.Length(), thirds.Second.Length(), thirds.Last.Length(),
					tt.first, tt.second, tt.last)
			}
		}
	})

	t.Run("3未満はErrGeometryになること", func(t *testing.T) {
		for _, total := range []int{-1, 0, 1, 2} {
			if _, err := SplitThirds(total); !errors.Is(err, domain.ErrGeometry) {
				t.Errorf("total=%d: expected ErrGeometry, got %v", total, err)
			}
		}
	})
}

func TestRegionHelpers(t *testing.T) {
	thirds, err := SplitThirds(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	col := ColumnRegion(thirds.Last, 7)
	if col.Left != 6 || col.Top != 0 || col.Width != 4 || col.Height != 7 {
		t.Errorf("unexpected column region: %+v", col)
	}

	row := RowRegion(thirds.Second, 5)
	if row.Left != 0 || row.Top != 3 || row.Width != 5 || row.Height != 3 {
		t.Errorf("unexpected row region: %+v", row)
	}
}
