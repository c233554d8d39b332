package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrStoreUnreachable indicates that one of the Jellyfin stores could not be
// opened. Nothing has been mutated when this error is returned.
var ErrStoreUnreachable = errors.New("jellyfin store unreachable")

// Stores bundles the two Jellyfin SQLite stores. They are opened together and
// must be closed together; a migration run owns both connections exclusively.
type Stores struct {
	// Users is the connection to the users store (jellyfin.db).
	Users *gorm.DB
	// Library is the connection to the library store (library.db).
	Library *gorm.DB
}

// Open establishes connections to both Jellyfin stores.
// Both files must already exist: the destination schema is owned by Jellyfin,
// and an absent store means the data directory is wrong, not that we should
// create an empty database there.
func Open(cfg Config) (*Stores, error) {
	usersPath := filepath.Join(cfg.DataDir, cfg.UsersFile)
	libraryPath := filepath.Join(cfg.DataDir, cfg.LibraryFile)

	users, err := openStore(usersPath, cfg.BusyTimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("open users store %s: %w", usersPath, err)
	}

	library, err := openStore(libraryPath, cfg.BusyTimeoutMS)
	if err != nil {
		// Release the first connection before reporting failure so no
		// handle leaks on the partial-open path.
		closeDB(users)
		return nil, fmt.Errorf("open library store %s: %w", libraryPath, err)
	}

	return &Stores{Users: users, Library: library}, nil
}

// openStore opens a single SQLite database file with GORM.
func openStore(path string, busyTimeoutMS int) (*gorm.DB, error) {
	// The SQLite driver happily creates a missing file, which would silently
	// turn a typo'd data dir into an empty database. Require the file upfront.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}

	timeout := busyTimeoutMS
	if timeout <= 0 {
		timeout = 5000
	}

	// busy_timeout avoids "database is locked" errors on a briefly-held lock
	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d", path, timeout)

	// Suppress GORM logging; the application logger reports what matters
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}

	// One writer, no concurrent readers: a single connection is all a
	// sequential migration run needs.
	sqlDB.SetMaxOpenConns(1)

	// Verify the file actually is a reachable database before any work starts.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: %v", ErrStoreUnreachable, err)
	}

	return db, nil
}

// Close releases both underlying connections. It is safe to call on every exit
// path; the first error encountered is returned after both closes ran.
func (s *Stores) Close() error {
	usersErr := closeDB(s.Users)
	libraryErr := closeDB(s.Library)

	if usersErr != nil {
		return usersErr
	}
	return libraryErr
}

func closeDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
