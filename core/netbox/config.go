package netbox

// Config holds configuration for the NetBox API connection.
type Config struct {
	// URL is the base URL of the NetBox instance (e.g. https://netbox.internal).
	URL string `mapstructure:"url" default:"http://localhost:8000"`
	// Token is the API token used for authentication.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// VerifySSL disables certificate verification when false.
	VerifySSL bool `mapstructure:"verify_ssl" default:"true"`
}
