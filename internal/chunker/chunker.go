// Package chunker splits dataset rows into fixed-size batches. Each batch is
// sent to the remote generator in a single call, so batches are contiguous,
// never overlap, and keep the input order.
package chunker

const (
	// DefaultBatchSize is the number of rows grouped into one remote call.
	// Two text fields are flattened per row, so a full batch carries 40 texts.
	DefaultBatchSize = 20
)

// Split divides items into consecutive batches of at most size elements.
// The final batch may be shorter. A size below 1 is treated as 1.
// An empty input yields no batches.
//
// The returned batches share the backing array of items; callers must not
// append to them.
func Split[T any](items []T, size int) [][]T {
	if size < 1 {
		size = 1
	}
	if len(items) == 0 {
		return nil
	}

	batches := make([][]T, 0, Count(len(items), size))
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end:end])
	}
	return batches
}

// Count returns ceil(total/size), the number of batches Split produces.
func Count(total, size int) int {
	if size < 1 {
		size = 1
	}
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
