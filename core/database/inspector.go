package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo describes one column of an inspected table.
type ColumnInfo struct {
	Field string
	Type  string
}

// GetTableColumns retrieves the column definitions for a given table using
// SQLite's PRAGMA table_info. Field and type names are normalized to lowercase.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	type sqliteColumn struct {
		Cid        int
		Name       string
		Type       string
		Notnull    int
		DefaultVal *string
		Pk         int
	}

	var sqliteCols []sqliteColumn
	if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	var columns []ColumnInfo
	for _, col := range sqliteCols {
		columns = append(columns, ColumnInfo{
			Field: strings.ToLower(col.Name),
			Type:  strings.ToLower(col.Type),
		})
	}
	return columns, nil
}

// VerifyTable checks that a table exists and carries every required column.
// It runs before any mutation so a Jellyfin schema we don't recognize fails the
// run while the destination is still untouched.
func VerifyTable(db *gorm.DB, tableName string, requiredColumns []string) error {
	columns, err := GetTableColumns(db, tableName)
	if err != nil {
		return err
	}

	// PRAGMA table_info yields no rows for a missing table rather than an error
	if len(columns) == 0 {
		return fmt.Errorf("%w: table %s not found", ErrStoreUnreachable, tableName)
	}

	present := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		present[col.Field] = struct{}{}
	}

	for _, required := range requiredColumns {
		if _, ok := present[strings.ToLower(required)]; !ok {
			return fmt.Errorf("%w: table %s is missing column %s", ErrStoreUnreachable, tableName, required)
		}
	}

	return nil
}
