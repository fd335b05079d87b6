// Package localstore persists small client-side state between runs:
// the anonymous favorites and cart id lists and the chosen theme.
// Reads never fail the caller; a missing, corrupted, or expired entry
// simply yields the empty default.
package localstore
