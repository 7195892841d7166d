// Package storage provides an object-storage client for archiving run reports.
//
// The Client interface wraps the subset of the Minio API the application
// uses (bucket checks, uploads, downloads, listing) so that services can be
// tested against the mock in storage/mocks without a live backend.
//
// Storage is an optional collaborator: a reconciliation run proceeds without
// it and only loses report archival.
package storage
