package database

// Config holds configuration for the Jellyfin data directory.
type Config struct {
	// DataDir is the path to the Jellyfin data directory holding both stores.
	DataDir string `mapstructure:"data_dir" default:""`
	// UsersFile is the file name of the users store inside DataDir.
	UsersFile string `mapstructure:"users_file" default:"jellyfin.db"`
	// LibraryFile is the file name of the library store inside DataDir.
	LibraryFile string `mapstructure:"library_file" default:"library.db"`
	// BusyTimeoutMS is the SQLite busy timeout in milliseconds.
	BusyTimeoutMS int `mapstructure:"busy_timeout_ms" default:"5000"`
}
