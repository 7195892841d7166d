// Package server holds configuration for the HTTP server layer.
//
// It is intentionally small: the Fiber application itself is assembled in the
// start command, and this package only carries the settings (port, API key,
// port-operations defaults) that the command and middleware need.
package server
