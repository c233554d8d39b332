package watched

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"kodi2jellyfin/feature/watched/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kodi.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readAll(t *testing.T, reader *RecordReader) []*models.WatchRecord {
	t.Helper()
	var records []*models.WatchRecord
	for {
		record, err := reader.Next()
		if err == io.EOF {
			return records
		}
		require.NoError(t, err)
		records = append(records, record)
	}
}

func TestOpenRecords_ParsesRowsInOrder(t *testing.T) {
	path := writeExport(t,
		"strPath\tstrFileName\tlastPlayed\tplayCount\n"+
			"/movies/\tfoo.mkv\t2023-01-01T00:00:00\t3\n"+
			"/movies/\tbar.mkv\t2022-06-15 20:30:00\t1\n"+
			"/shows/\tbaz.mkv\t2021-12-24T18:00:00\t0\n")

	reader, err := OpenRecords(path)
	require.NoError(t, err)
	defer reader.Close()

	records := readAll(t, reader)
	require.Len(t, records, 3)

	assert.Equal(t, "/movies/foo.mkv", records[0].Path())
	assert.Equal(t, 3, records[0].PlayCount)
	require.NotNil(t, records[0].LastPlayed)
	assert.True(t, records[0].LastPlayed.Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))

	assert.Equal(t, "/movies/bar.mkv", records[1].Path())
	assert.Equal(t, "/shows/baz.mkv", records[2].Path())
	assert.Equal(t, 0, records[2].PlayCount)
}

func TestOpenRecords_IgnoresExtraColumns(t *testing.T) {
	path := writeExport(t,
		"idFile\tstrPath\tstrFileName\tlastPlayed\tplayCount\tidPath\n"+
			"7\t/movies/\tfoo.mkv\t2023-01-01T00:00:00\t2\t12\n")

	reader, err := OpenRecords(path)
	require.NoError(t, err)
	defer reader.Close()

	records := readAll(t, reader)
	require.Len(t, records, 1)
	assert.Equal(t, "/movies/foo.mkv", records[0].Path())
	assert.Equal(t, 2, records[0].PlayCount)
}

func TestOpenRecords_MissingRequiredColumn(t *testing.T) {
	path := writeExport(t,
		"strPath\tstrFileName\tlastPlayed\n"+
			"/movies/\tfoo.mkv\t2023-01-01T00:00:00\n")

	_, err := OpenRecords(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.Contains(t, err.Error(), "playCount")
}

func TestNext_MalformedRows(t *testing.T) {
	header := "strPath\tstrFileName\tlastPlayed\tplayCount\n"

	tests := []struct {
		name string
		row  string
	}{
		{
			name: "unparseable timestamp",
			row:  "/movies/\tfoo.mkv\tnot-a-date\t3\n",
		},
		{
			name: "unparseable play count",
			row:  "/movies/\tfoo.mkv\t2023-01-01T00:00:00\tmany\n",
		},
		{
			name: "negative play count",
			row:  "/movies/\tfoo.mkv\t2023-01-01T00:00:00\t-1\n",
		},
		{
			name: "played but no timestamp",
			row:  "/movies/\tfoo.mkv\t\t3\n",
		},
		{
			name: "missing field",
			row:  "/movies/\tfoo.mkv\t2023-01-01T00:00:00\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := OpenRecords(writeExport(t, header+tt.row))
			require.NoError(t, err)
			defer reader.Close()

			_, err = reader.Next()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestNext_NeverPlayedWithoutTimestamp(t *testing.T) {
	// An empty lastPlayed is only valid for a record that was never played.
	path := writeExport(t,
		"strPath\tstrFileName\tlastPlayed\tplayCount\n"+
			"/movies/\tfoo.mkv\t\t0\n")

	reader, err := OpenRecords(path)
	require.NoError(t, err)
	defer reader.Close()

	record, err := reader.Next()
	require.NoError(t, err)
	assert.Nil(t, record.LastPlayed)
	assert.Equal(t, 0, record.PlayCount)
}

func TestOpenRecords_EmptyFile(t *testing.T) {
	_, err := OpenRecords(writeExport(t, ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestOpenRecords_MissingFile(t *testing.T) {
	_, err := OpenRecords(filepath.Join(t.TempDir(), "nope.tsv"))
	require.Error(t, err)
}
