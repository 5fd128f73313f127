package chunker_test

import (
	"testing"

	"github.com/valpere/dialectran/internal/chunker"
)

func TestSplit_Sizes(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		size      int
		wantSizes []int
	}{
		{name: "empty input", total: 0, size: 20, wantSizes: nil},
		{name: "single short batch", total: 5, size: 20, wantSizes: []int{5}},
		{name: "exact multiple", total: 40, size: 20, wantSizes: []int{20, 20}},
		{name: "forty five rows", total: 45, size: 20, wantSizes: []int{20, 20, 5}},
		{name: "size one", total: 3, size: 1, wantSizes: []int{1, 1, 1}},
		{name: "zero size treated as one", total: 2, size: 0, wantSizes: []int{1, 1}},
		{name: "size larger than input", total: 7, size: 100, wantSizes: []int{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.total)
			for i := range items {
				items[i] = i
			}

			batches := chunker.Split(items, tt.size)
			if len(batches) != len(tt.wantSizes) {
				t.Fatalf("got %d batches, want %d", len(batches), len(tt.wantSizes))
			}
			for i, b := range batches {
				if len(b) != tt.wantSizes[i] {
					t.Errorf("batch %d: got size %d, want %d", i, len(b), tt.wantSizes[i])
				}
			}
		})
	}
}

// Concatenating the batches must reproduce the input exactly, for every
// combination of row count and batch size.
func TestSplit_PreservesOrder(t *testing.T) {
	for total := 0; total <= 50; total++ {
		for size := 1; size <= 25; size++ {
			items := make([]int, total)
			for i := range items {
				items[i] = i * 7
			}

			batches := chunker.Split(items, size)
			if want := chunker.Count(total, size); len(batches) != want {
				t.Fatalf("total=%d size=%d: got %d batches, want %d", total, size, len(batches), want)
			}

			var joined []int
			for i, b := range batches {
				if len(b) == 0 {
					t.Fatalf("total=%d size=%d: batch %d is empty", total, size, i)
				}
				if len(b) > size {
					t.Fatalf("total=%d size=%d: batch %d has %d items", total, size, i, len(b))
				}
				joined = append(joined, b...)
			}

			if len(joined) != total {
				t.Fatalf("total=%d size=%d: sizes sum to %d", total, size, len(joined))
			}
			for i := range joined {
				if joined[i] != items[i] {
					t.Fatalf("total=%d size=%d: item %d is %d, want %d", total, size, i, joined[i], items[i])
				}
			}
		}
	}
}

func TestSplit_BatchesCannotGrowIntoNeighbour(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	batches := chunker.Split(items, 2)

	_ = append(batches[0], "x")

	if items[2] != "c" {
		t.Errorf("appending to a batch overwrote the next row: %v", items)
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{45, 20, 3},
		{5, 0, 5},
		{-3, 4, 0},
	}
	for _, tt := range tests {
		if got := chunker.Count(tt.total, tt.size); got != tt.want {
			t.Errorf("Count(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}
