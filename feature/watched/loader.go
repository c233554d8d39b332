package watched

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"kodi2jellyfin/feature/watched/models"
)

// ErrMalformedRecord indicates a row of the Kodi export that fails structural
// or type validation. It is fatal for the whole run; bad rows are never
// silently skipped.
var ErrMalformedRecord = errors.New("malformed watch record")

// Column names of the Kodi TSV export. Extra columns are ignored; a missing
// required column fails the parse.
const (
	columnPath       = "strPath"
	columnFileName   = "strFileName"
	columnLastPlayed = "lastPlayed"
	columnPlayCount  = "playCount"
)

// lastPlayedLayouts are the accepted timestamp formats, tried in order.
// Kodi exports ISO-8601 date-times, with or without a zone offset.
var lastPlayedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// RecordReader decodes a Kodi watched-status TSV export row by row.
// It is forward-only and single-pass; re-reading requires a fresh OpenRecords.
type RecordReader struct {
	file    *os.File
	reader  *csv.Reader
	columns map[string]int
	line    int
}

// RecordSource is the record stream the reconciliation engine consumes.
// Next returns io.EOF after the last record.
type RecordSource interface {
	Next() (*models.WatchRecord, error)
}

// OpenRecords opens a Kodi TSV export and decodes its header row.
// The four required columns must be present or the whole parse fails.
func OpenRecords(path string) (*RecordReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open kodi export: %w", err)
	}

	reader := csv.NewReader(file)
	reader.Comma = '\t'
	// Media paths may contain stray quote characters
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		_ = file.Close()
		if err == io.EOF {
			return nil, fmt.Errorf("%w: export has no header row", ErrMalformedRecord)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	for _, required := range []string{columnPath, columnFileName, columnLastPlayed, columnPlayCount} {
		if _, ok := columns[required]; !ok {
			_ = file.Close()
			return nil, fmt.Errorf("%w: export is missing column %q", ErrMalformedRecord, required)
		}
	}

	return &RecordReader{
		file:    file,
		reader:  reader,
		columns: columns,
		line:    1,
	}, nil
}

// Next decodes and returns the next watch record, in file order.
// It returns io.EOF once the export is exhausted and a MalformedRecord error
// for any row that fails validation.
func (r *RecordReader) Next() (*models.WatchRecord, error) {
	row, err := r.reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	r.line++

	playCountField := row[r.columns[columnPlayCount]]
	playCount, err := strconv.Atoi(playCountField)
	if err != nil || playCount < 0 {
		return nil, fmt.Errorf("%w: line %d: invalid play count %q", ErrMalformedRecord, r.line, playCountField)
	}

	lastPlayed, err := parseLastPlayed(row[r.columns[columnLastPlayed]], playCount)
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, r.line, err)
	}

	return &models.WatchRecord{
		Folder:     row[r.columns[columnPath]],
		FileName:   row[r.columns[columnFileName]],
		LastPlayed: lastPlayed,
		PlayCount:  playCount,
	}, nil
}

// Close releases the underlying file.
func (r *RecordReader) Close() error {
	return r.file.Close()
}

// parseLastPlayed decodes a last-played timestamp. An empty value is permitted
// only for never-played records; every record that reaches the upsert with a
// positive play count therefore carries a timestamp by construction.
func parseLastPlayed(value string, playCount int) (*time.Time, error) {
	if value == "" {
		if playCount > 0 {
			return nil, fmt.Errorf("record has %d plays but no last-played timestamp", playCount)
		}
		return nil, nil
	}

	for _, layout := range lastPlayedLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed, nil
		}
	}
	return nil, fmt.Errorf("invalid last-played timestamp %q", value)
}
