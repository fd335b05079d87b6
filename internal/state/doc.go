// Package state provides the thread-safe catalog store shared between
// the background refresh loop and the UI.
//
// The package follows a producer-consumer pattern: the poller fetches
// the product list and calls Update; the UI calls Snapshot on its own
// schedule. The Store mediates between the two goroutines with a
// readers-writer lock and defensive copies, so the UI always sees an
// atomic view and the most recent successful data survives transient
// fetch failures.
//
// Update has special error handling: on success the entire snapshot is
// replaced; on failure the old products are kept, the error and a
// consecutive-failure counter are recorded, and the UI can surface an
// offline indicator without losing the last known good catalog.
package state
