// Package storage implements the durable client-side state directory.
//
// Each durable key is one file under the state directory, mirroring a
// browser origin's key-value store: "watchlist" holds the JSON-encoded
// watchlist array, "theme" holds the UI theme preference. Reads of absent
// or unreadable keys degrade to empty values; they never fail the caller.
//
// [Store.Watch] observes external writes to a key with fsnotify, which is
// how a second running process (the "other tab") sees mutations without
// polling.
package storage
