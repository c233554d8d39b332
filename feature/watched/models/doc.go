// Package models defines the data types the watched-status migration works on.
//
// It contains two kinds of types:
//
//   - WatchRecord: one row of the Kodi export, as decoded from the TSV dump.
//   - User, TypedBaseItem, UserData: GORM mappings of the Jellyfin tables the
//     migration reads and writes. The schema is fixed by Jellyfin; column tags
//     and TableName overrides mirror it exactly and are never migrated.
package models
