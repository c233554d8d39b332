package watched

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kodi2jellyfin/feature/watched/models"

	"gorm.io/gorm"
)

// ErrUserNotFound indicates the destination username has no matching row in
// the Jellyfin users store. There is no default user to fall back to, so this
// is fatal and raised before any write.
var ErrUserNotFound = errors.New("jellyfin user not found")

// Store is the destination-side lookup/upsert surface the reconciliation
// engine works against.
type Store interface {
	// FindUserByName resolves a Jellyfin user by exact username match.
	FindUserByName(ctx context.Context, username string) (*models.User, error)

	// FindItemKeyForPath resolves a filesystem path to the opaque user-data
	// key of the matching library item. A miss is expected and reported via
	// the boolean, not as an error.
	FindItemKeyForPath(ctx context.Context, path string) (string, bool, error)

	// GetUserData returns the current watch state stored under a key, or nil
	// if none exists. Used for inspection; the write path does not need it.
	GetUserData(ctx context.Context, key string) (*models.UserData, error)

	// UpsertUserData writes the watch state for (key, user) with full-row
	// replace semantics. IsFavorite and PlaybackPositionTicks are always
	// written as false and 0; any prior values are discarded.
	UpsertUserData(ctx context.Context, key, userID string, played bool, playCount int, lastPlayed time.Time) error
}

// LibraryStore implements Store on top of the two Jellyfin SQLite stores.
type LibraryStore struct {
	users   *gorm.DB
	library *gorm.DB
}

// NewLibraryStore creates a store over the users and library connections.
// Pass a transaction handle as library to scope all writes to it.
func NewLibraryStore(users, library *gorm.DB) *LibraryStore {
	return &LibraryStore{users: users, library: library}
}

// FindUserByName looks up a user row by exact username.
func (s *LibraryStore) FindUserByName(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.users.WithContext(ctx).Where("Username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrUserNotFound, username)
		}
		return nil, err
	}
	return &user, nil
}

// FindItemKeyForPath looks up the user-data key of the library item stored
// under an exact path.
func (s *LibraryStore) FindItemKeyForPath(ctx context.Context, path string) (string, bool, error) {
	var item models.TypedBaseItem
	err := s.library.WithContext(ctx).Where("Path = ?", path).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return item.UserDataKey, true, nil
}

// GetUserData returns the watch state stored under key, or nil on a miss.
func (s *LibraryStore) GetUserData(ctx context.Context, key string) (*models.UserData, error) {
	var data models.UserData
	err := s.library.WithContext(ctx).Where("key = ?", key).First(&data).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &data, nil
}

// UpsertUserData replaces the watch state row for key.
//
// REPLACE leans on the table's unique key the same way Jellyfin itself does:
// an existing row is deleted and re-inserted wholesale, never merged
// field-by-field. Favorite status and resume position are deliberately reset;
// Kodi knows nothing about either, and a half-merged row would be worse than a
// documented overwrite.
func (s *LibraryStore) UpsertUserData(ctx context.Context, key, userID string, played bool, playCount int, lastPlayed time.Time) error {
	var lastPlayedDate int64
	if !lastPlayed.IsZero() {
		lastPlayedDate = lastPlayed.Unix()
	}

	return s.library.WithContext(ctx).Exec(
		`REPLACE INTO UserDatas (key, userId, played, playCount, lastPlayedDate, isFavorite, playbackPositionTicks)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		key, userID, played, playCount, lastPlayedDate, false, 0,
	).Error
}
