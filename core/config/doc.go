// Package config assembles the application configuration from environment
// variables and an optional .env file.
//
// The top-level Config is composed of the partial Config structs owned by the
// packages they configure (server, database, storage, logger). Defaults are
// declared as struct tags and registered with Viper by reflection, so adding
// a setting never requires touching this package beyond the struct field.
package config
