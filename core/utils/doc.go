// Package utils provides common utility functions for the triprecord
// application. Its main job is coercing the loosely typed timestamp values
// the legacy charge intake produced into proper time.Time values.
package utils
