// Package service coordinates the view controller, theme store and payload
// inspector for the HTTP and CLI layers.
//
// # Sessions
//
// ViewService holds a single diagram session. Every transition runs under
// one mutex so concurrent requests apply in order, then publishes a
// state_changed event.
//
// # Event System
//
// Render commands issued by the controller are published on the EventBus by
// BusRenderer and fanned out to browsers over Server-Sent Events. Event types
// are render.nodes, render.edges, render.fit, alert, state_changed,
// theme_changed and catalog_reloaded.
package service
