// Package app is the composition root for the ReStyle client. Run
// wires configuration, the HTTP client, the session resolver, the
// cart and engagement services, the catalog poller, and the TUI, then
// blocks until the user exits or the context cancels.
//
// The catalog poller runs continuously in the background: it fetches
// the product list on a ticker, backs off while the API is
// unreachable, and updates the shared state.Store atomically. Polling
// failures are logged and never fatal; the UI keeps rendering the last
// known good catalog. User-initiated mutations (cart, favorites,
// likes, comments) do not go through the poller; the UI dispatches
// them directly against the services.
package app
