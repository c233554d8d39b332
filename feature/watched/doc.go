// Package watched implements the watched-status migration feature.
//
// It reconciles a Kodi watched-status export against a Jellyfin server's
// persisted state by matching items on filesystem path:
//  1. Loader: decodes the tab-separated Kodi export into watch records.
//  2. Store: lookup/upsert operations over the two Jellyfin SQLite stores.
//  3. Engine: the single-pass reconciliation loop with the skip policy and the
//     deferred unmatched report.
//
// # Policy
//
// Records under a virtual-source prefix (plugin:// by default) and the root
// path sentinel "/" can never match a real file and are skipped before any
// lookup. A record whose path has no Jellyfin item is collected and reported
// once at the end of the run; it does not fail the run. Every write replaces
// the destination row wholesale with played == (playCount > 0), favorite
// status cleared, and resume position zeroed.
package watched
