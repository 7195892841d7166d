// Package models defines the charge and trip records and the API report
// shapes of the trips feature.
//
// Charge is the legacy billing record: free-text ship names, a raw boarding
// value of uneven quality, and an optional visit reference. Trip is the
// normalized operational record owned by the live visit workflow. The
// reconciliation engine reads charges, never writes them, and is the only
// path that flips a trip from draft to confirmed.
package models
