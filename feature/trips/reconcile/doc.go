// Package reconcile implements the charge-to-trip reconciliation engine.
//
// The engine migrates the legacy, loosely structured charge stream into the
// normalized trip store. One run is a single-threaded, run-to-completion
// batch pipeline:
//
//  1. Bulk-load all charges and all trips into memory (feature loader).
//  2. Build lookup indexes over the trips (BuildIndexes): by (visitid,
//     typeTrip), by (ship, typeTrip, calendar date), and by
//     migratedFromChargeID for re-run safety.
//  3. Match every charge (Match): tier 1 via visit reference, tier 2 via
//     ship/type/date with a one-day fallback either side, with a
//     deterministic tie-break favouring unconfirmed trips and the closest
//     boarding time.
//  4. Plan writes (BuildPlan): confirmed trips with a ship name are already
//     synced; other matches become updates; unmatched charges become new
//     confirmed trips tagged with migration provenance.
//  5. Commit the plan (Apply) in 500-operation chunks, one transaction per
//     chunk, sequentially, with a resume cursor on failure.
//
// Analyze is a read-only sibling of the matching phase that classifies every
// unmatched charge by reason and aggregates counts per year, month and
// reason; it never writes.
//
// Matching is a pure in-memory scan; the only I/O boundaries are the bulk
// reads and the per-chunk commits. The whole run is expected to finish inside
// the caller's execution-time ceiling; concurrent runs are not coordinated.
package reconcile
