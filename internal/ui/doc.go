// Package ui provides the terminal user interface for the ReStyle
// storefront client.
//
// The package is built on Bubble Tea. The root Model holds the current
// view (browse, detail, favorites, cart, auth, sell), the catalog
// filter and sort state, and handles to the session resolver, cart
// service, and engagement engine. Every network operation runs as a
// tea.Cmd on a background goroutine and comes back as a typed message;
// the Update loop checks that the owning view is still current before
// applying a late response, so navigating away mid-request simply
// discards the result.
//
// Failures never crash the UI: they land in the status line, and local
// state stays at its last known good value.
package ui
