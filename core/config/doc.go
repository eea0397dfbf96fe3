// Package config provides configuration management for datajoin.
//
// It utilizes Viper for loading configuration from environment
// variables and a .env file, with defaults taken from struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided
// into subsections:
//   - Server: HTTP server settings (port, API key, session limit)
//   - Storage: bucket storage credentials for object snapshot sources
//   - Database: MySQL connection details for database snapshot sources
//   - Source: the default snapshot source (kind, key field, cache TTL)
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
