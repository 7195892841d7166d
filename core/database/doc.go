// Package database provides the GORM connection factory.
//
// Production deployments run against MySQL; the sqlite driver exists so that
// feature tests can run against an in-memory database with the same GORM
// surface. Connection pooling and timeouts are applied on the MySQL path.
package database
