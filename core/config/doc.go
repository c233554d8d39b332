// Package config provides configuration management for kodi2jellyfin.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file, with defaults taken from struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Jellyfin: destination data directory and store file names
//   - Log: logging level and format
//
// Command-line arguments override whatever the environment provides.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Jellyfin.UsersFile)
package config
