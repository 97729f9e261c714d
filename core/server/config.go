package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps the size of uploaded exports, in megabytes.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"32"`
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 32 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}

// RequiresAuth reports whether an API key has been configured.
func (c Config) RequiresAuth() bool {
	return c.ApiKey != ""
}
