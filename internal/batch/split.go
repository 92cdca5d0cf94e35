package batch

import "stancelab/internal/dataset"

// DefaultSize is the default number of rows per batch.
const DefaultSize = 100

// Split partitions rows into fixed-size batches; the final batch may be
// shorter. Batch i holds rows [i*size, min((i+1)*size, len(rows))), so
// numbering is deterministic for a given input ordering and size —
// checkpoint resumption depends on that.
func Split(rows []dataset.Row, size int) [][]dataset.Row {
	if size <= 0 {
		size = DefaultSize
	}

	var batches [][]dataset.Row
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		batches = append(batches, rows[start:end])
	}
	return batches
}

// Count returns ceil(n/size), the number of batches Split produces for n rows.
func Count(n, size int) int {
	if size <= 0 {
		size = DefaultSize
	}
	return (n + size - 1) / size
}
