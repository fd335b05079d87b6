// Package api implements the HTTP client for the ReStyle marketplace
// backend. All calls carry the session cookie automatically; a 401 on
// any non-auth endpoint triggers the client's unauthorized hook so the
// application can route the user back to the login screen.
package api
