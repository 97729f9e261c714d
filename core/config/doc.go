// Package config provides configuration management for the stock reconciler.
//
// It uses Viper for environment variables and godotenv for an optional .env
// file. Defaults are declared with `default:` struct tags on each section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key and upload limit
//   - Database: mapping database driver and connection details
//   - Storage: S3/MinIO credentials and bucket
//   - Log: logging level and format
//   - Reconcile: default store mapping, export locations and cache lifetime
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Reconcile.SessionsPrefix)
package config
