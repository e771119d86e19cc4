// Package watchlist owns the user's persisted saved-movie list.
//
// The durable "watchlist" key is the single source of truth; every operation
// is a full read-modify-write cycle against it, so any in-memory copy held
// by a view is only a cache to be invalidated on the next change
// notification. Conflict policy across concurrent writers is last-writer-wins
// at the granularity of one add/remove cycle.
//
// Membership is keyed by catalog id, never by title: two movies sharing a
// title are independent entries.
package watchlist
