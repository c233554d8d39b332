package models

import (
	"time"
)

// WatchRecord is one row of a Kodi watched-status export.
type WatchRecord struct {
	// Folder is the directory portion of the path (strPath).
	Folder string
	// FileName is the file portion of the path (strFileName).
	FileName string
	// LastPlayed is the time the file was last played. It is nil only for
	// records that were never played (PlayCount == 0); the loader rejects any
	// row that claims plays but carries no parseable timestamp.
	LastPlayed *time.Time
	// PlayCount is the number of times the file was played.
	PlayCount int
}

// Path returns the full path Kodi knows the file under.
// Kodi stores folder and file name separately and joins them by plain
// concatenation. That is preserved here unchanged, including for folders
// without a trailing separator, so the paths we look up are exactly the paths
// Kodi wrote.
func (r WatchRecord) Path() string {
	return r.Folder + r.FileName
}
