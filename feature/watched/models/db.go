package models

import (
	"time"
)

// User represents a row of the 'Users' table in the Jellyfin users store.
type User struct {
	InternalID string `gorm:"column:InternalId;primaryKey"`
	Username   string `gorm:"column:Username"`
}

// TableName overrides the table name for the Jellyfin users store.
func (User) TableName() string {
	return "Users"
}

// TypedBaseItem represents the columns of the 'TypedBaseItems' table in the
// Jellyfin library store that the path lookup depends on. Path is the only
// join key between the two systems; UserDataKey is the opaque identifier
// Jellyfin assigns to the library entry.
type TypedBaseItem struct {
	Path        string `gorm:"column:Path;primaryKey"`
	UserDataKey string `gorm:"column:UserDataKey"`
}

// TableName overrides the table name for the Jellyfin library store.
func (TypedBaseItem) TableName() string {
	return "TypedBaseItems"
}

// UserData represents a row of the 'UserDatas' table in the Jellyfin library
// store: the per-(item, user) watch state being migrated.
//
// LastPlayedDate is kept as a Unix timestamp, matching how the destination
// stores it. Use LastPlayed for a time.Time view.
type UserData struct {
	Key                   string `gorm:"column:key;primaryKey"`
	UserID                string `gorm:"column:userId"`
	Played                bool   `gorm:"column:played"`
	PlayCount             int    `gorm:"column:playCount"`
	LastPlayedDate        int64  `gorm:"column:lastPlayedDate"`
	IsFavorite            bool   `gorm:"column:isFavorite"`
	PlaybackPositionTicks int64  `gorm:"column:playbackPositionTicks"`
}

// TableName overrides the table name for the Jellyfin library store.
func (UserData) TableName() string {
	return "UserDatas"
}

// LastPlayed converts the stored Unix timestamp to a time.Time in UTC.
func (u UserData) LastPlayed() time.Time {
	return time.Unix(u.LastPlayedDate, 0).UTC()
}
