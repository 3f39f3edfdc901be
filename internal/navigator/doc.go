// Package navigator maps navigation intents (next, previous, first, last,
// go to card N) onto deck service requests and applies the responses to the
// view-state controller.
//
// Directional failures go to the diagnostic log only unless
// WithNavigationErrors is set. Go-to failures always reach the error banner.
package navigator
