package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	// When empty, authentication is disabled (development mode).
	ApiKey string `mapstructure:"api_key" default:""`
	// Port name stamped on trips created by the migration when the
	// source charge carries no port of its own.
	DefaultPort string `mapstructure:"default_port" default:"Foynes"`
}
