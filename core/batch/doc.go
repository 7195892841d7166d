// Package batch provides generic chunked bulk-write machinery.
//
// The trip store caps atomic writes at 500 operations, so a reconciliation
// run partitions its operation list into fixed-size chunks and commits them
// sequentially. Atomicity exists only at chunk granularity: a mid-run failure
// leaves prior chunks committed and the remainder unattempted. Run reports a
// cursor so a re-invocation can resume from the first uncommitted chunk
// instead of restarting blindly.
package batch
