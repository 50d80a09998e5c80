// Package config provides configuration management for the NetBox importer.
//
// It utilizes Viper for loading configuration from environment variables,
// a local .env file, and struct tag defaults.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Netbox: NetBox API endpoint, token and TLS settings
//   - Importer: Reconciliation behavior (VLAN import mode)
//   - Database: MySQL connection details for the run history
//   - Storage: S3/MinIO credentials and bucket settings for snapshot archives
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Netbox.URL)
package config
