package batch

import (
	"context"
	"fmt"
)

// DefaultChunkSize is the store-imposed ceiling on operations per commit.
const DefaultChunkSize = 500

// CommitFunc commits one chunk of operations as a single atomic unit.
type CommitFunc[T any] func(ctx context.Context, chunk []T) error

// Result reports how far a chunked run progressed.
type Result struct {
	// ChunksCommitted is the number of chunks committed by this run.
	ChunksCommitted int
	// OpsApplied is the number of operations inside committed chunks.
	OpsApplied int
	// Cursor is the index of the next chunk to commit. After a clean run it
	// equals the total chunk count; after a failure it marks the resume point.
	Cursor int
}

// Partition splits ops into chunks of at most size elements. Chunks share the
// backing array of ops; callers must not mutate them during a run.
func Partition[T any](ops []T, size int) [][]T {
	if size <= 0 {
		size = DefaultChunkSize
	}

	chunks := make([][]T, 0, (len(ops)+size-1)/size)
	for start := 0; start < len(ops); start += size {
		end := start + size
		if end > len(ops) {
			end = len(ops)
		}
		chunks = append(chunks, ops[start:end])
	}
	return chunks
}

// Run commits ops sequentially in chunks of at most size operations,
// starting at chunk index fromChunk (0 resumes nothing). Each chunk is one
// atomic commit; a failure leaves earlier chunks committed, aborts the rest,
// and returns the cursor of the failed chunk alongside the error.
func Run[T any](ctx context.Context, ops []T, size, fromChunk int, commit CommitFunc[T]) (Result, error) {
	chunks := Partition(ops, size)

	res := Result{Cursor: fromChunk}
	if fromChunk > len(chunks) {
		return res, fmt.Errorf("resume cursor %d beyond chunk count %d", fromChunk, len(chunks))
	}

	for i := fromChunk; i < len(chunks); i++ {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("batch run cancelled before chunk %d: %w", i, err)
		}
		if err := commit(ctx, chunks[i]); err != nil {
			return res, fmt.Errorf("failed to commit chunk %d/%d: %w", i+1, len(chunks), err)
		}
		res.ChunksCommitted++
		res.OpsApplied += len(chunks[i])
		res.Cursor = i + 1
	}

	return res, nil
}
