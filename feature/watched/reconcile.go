package watched

import (
	"context"
	"io"
	"strings"
	"time"

	"kodi2jellyfin/feature/watched/models"

	"go.uber.org/zap"
)

// DefaultSkipPrefixes are folder prefixes that mark virtual sources in a Kodi
// library. Paths under them do not correspond to real files and can never
// match a Jellyfin item, so they are excluded up front instead of flooding the
// unmatched report.
var DefaultSkipPrefixes = []string{"plugin://"}

// rootPath is Kodi's sentinel for "no folder"; it is unmatchable by the same
// argument as the virtual-source prefixes.
const rootPath = "/"

// Options controls reconciliation behavior.
type Options struct {
	// DryRun runs the full pass and produces the full report without issuing
	// any writes.
	DryRun bool

	// SkipPrefixes overrides DefaultSkipPrefixes when non-nil.
	SkipPrefixes []string
}

// Report contains the aggregate outcome of one reconciliation pass.
type Report struct {
	// Applied counts records whose watch state was written to Jellyfin
	// (or would have been, on a dry run).
	Applied int `json:"applied"`

	// Skipped counts records excluded by the virtual-source policy.
	Skipped int `json:"skipped"`

	// Unmatched counts valid records whose path has no Jellyfin item.
	Unmatched int `json:"unmatched"`

	// UnmatchedPaths lists every unmatched path, in input order. They are
	// surfaced once, together, after the pass completes; an unmatched record
	// is not a run failure.
	UnmatchedPaths []string `json:"unmatched_paths"`
}

// Engine drives a single pass over a Kodi record stream and reconciles each
// record against the Jellyfin store. Processing is strictly sequential:
// correctness depends on read-then-write consistency per record, and there is
// exactly one writer.
type Engine struct {
	store  Store
	logger *zap.Logger
}

// NewEngine creates a reconciliation engine.
func NewEngine(store Store, logger *zap.Logger) *Engine {
	return &Engine{store: store, logger: logger}
}

// Run consumes records until the source is exhausted and applies each one to
// the given user's watch state. Per record the outcome is terminal: skipped,
// unmatched, or applied. Any error from the source or the store aborts the
// whole pass; unmatched records never do.
func (e *Engine) Run(ctx context.Context, records RecordSource, user *models.User, opts Options) (*Report, error) {
	skipPrefixes := opts.SkipPrefixes
	if skipPrefixes == nil {
		skipPrefixes = DefaultSkipPrefixes
	}

	report := &Report{}

	for {
		record, err := records.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if e.shouldSkip(record, skipPrefixes) {
			e.logger.Debug("Skipping virtual-source record",
				zap.String("path", record.Path()),
				zap.Int("play_count", record.PlayCount),
			)
			report.Skipped++
			continue
		}

		key, found, err := e.store.FindItemKeyForPath(ctx, record.Path())
		if err != nil {
			return nil, err
		}
		if !found {
			report.Unmatched++
			report.UnmatchedPaths = append(report.UnmatchedPaths, record.Path())
			continue
		}

		// The loader guarantees a timestamp whenever PlayCount > 0, so a
		// nil LastPlayed here can only belong to a never-played record.
		var lastPlayed time.Time
		if record.LastPlayed != nil {
			lastPlayed = *record.LastPlayed
		}

		if !opts.DryRun {
			err = e.store.UpsertUserData(ctx, key, user.InternalID,
				record.PlayCount > 0, record.PlayCount, lastPlayed)
			if err != nil {
				return nil, err
			}
		}
		report.Applied++
	}

	return report, nil
}

// shouldSkip applies the virtual-source policy: the root-path sentinel and any
// folder under a configured virtual-source prefix are excluded before the
// store is ever queried.
func (e *Engine) shouldSkip(record *models.WatchRecord, skipPrefixes []string) bool {
	if record.Path() == rootPath {
		return true
	}
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(record.Folder, prefix) {
			return true
		}
	}
	return false
}
