package batch

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		size      int
		wantLens  []int
	}{
		{name: "empty", total: 0, size: 3, wantLens: []int{}},
		{name: "single partial chunk", total: 2, size: 3, wantLens: []int{2}},
		{name: "exact multiple", total: 6, size: 3, wantLens: []int{3, 3}},
		{name: "trailing partial", total: 7, size: 3, wantLens: []int{3, 3, 1}},
		{name: "default size when zero", total: 501, size: 0, wantLens: []int{500, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := make([]int, tt.total)
			chunks := Partition(ops, tt.size)
			require.Len(t, chunks, len(tt.wantLens))
			for i, want := range tt.wantLens {
				assert.Len(t, chunks[i], want)
			}
		})
	}
}

func TestRun_CommitsSequentially(t *testing.T) {
	ops := []int{1, 2, 3, 4, 5, 6, 7}

	var committed [][]int
	res, err := Run(context.Background(), ops, 3, 0, func(ctx context.Context, chunk []int) error {
		committed = append(committed, chunk)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, res.ChunksCommitted)
	assert.Equal(t, 7, res.OpsApplied)
	assert.Equal(t, 3, res.Cursor)
	require.Len(t, committed, 3)
	assert.Equal(t, []int{1, 2, 3}, committed[0])
	assert.Equal(t, []int{7}, committed[2])
}

func TestRun_FailureKeepsPriorChunksAndReportsCursor(t *testing.T) {
	ops := make([]int, 10)

	calls := 0
	res, err := Run(context.Background(), ops, 3, 0, func(ctx context.Context, chunk []int) error {
		calls++
		if calls == 3 {
			return fmt.Errorf("store unavailable")
		}
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunk 3/4")
	assert.Contains(t, err.Error(), "store unavailable")
	// Two chunks committed before the failure; nothing after was attempted.
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, res.ChunksCommitted)
	assert.Equal(t, 6, res.OpsApplied)
	assert.Equal(t, 2, res.Cursor)
}

func TestRun_ResumesFromCursor(t *testing.T) {
	ops := make([]int, 10)

	var committed int
	res, err := Run(context.Background(), ops, 3, 2, func(ctx context.Context, chunk []int) error {
		committed += len(chunk)
		return nil
	})

	require.NoError(t, err)
	// Chunks 0 and 1 (6 ops) are skipped; chunks 2 and 3 (4 ops) commit.
	assert.Equal(t, 2, res.ChunksCommitted)
	assert.Equal(t, 4, res.OpsApplied)
	assert.Equal(t, 4, committed)
	assert.Equal(t, 4, res.Cursor)
}

func TestRun_RejectsCursorBeyondChunkCount(t *testing.T) {
	_, err := Run(context.Background(), []int{1}, 1, 5, func(ctx context.Context, chunk []int) error {
		t.Fatal("commit should not be called")
		return nil
	})
	assert.Error(t, err)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, []int{1, 2}, 1, 0, func(ctx context.Context, chunk []int) error {
		t.Fatal("commit should not be called")
		return nil
	})
	assert.Error(t, err)
	assert.Equal(t, 0, res.ChunksCommitted)
}
