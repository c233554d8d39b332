// Package database handles the Jellyfin SQLite store connections and schema
// inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) configured
// for the two SQLite files a Jellyfin data directory contains: the users store
// (jellyfin.db) and the library store (library.db).
//
// # Open
//
// Open connects to both stores as one scoped resource. Either both connections
// succeed or neither is kept; Close releases both on every exit path. The
// schema itself is owned by Jellyfin, so Open refuses to create missing files.
//
// # Schema Inspection
//
// The package includes tools to inspect a store's schema via PRAGMA
// table_info. VerifyTable is run before any mutation so an unexpected schema
// aborts the run while the destination is still untouched.
//
// # Usage
//
//	stores, err := database.Open(cfg.Jellyfin)
//	if err != nil {
//	    log.Fatal("Store connection failed", err)
//	}
//	defer stores.Close()
package database
