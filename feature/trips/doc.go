// Package trips exposes the charge-to-trip reconciliation engine as an
// application feature.
//
// It wires the bulk record loader, the reconcile engine (feature/trips/
// reconcile) and the report archive together behind two remote-invocable
// operations:
//
//   - POST /trips/reconcile          run a full reconciliation
//   - GET  /trips/reconcile/analysis run the read-only orphan analysis
//
// Archived run reports are browsable under /trips/reconcile/reports.
package trips
