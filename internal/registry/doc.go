// Package registry provides the process-wide channel index for Larkhub
// Core.
//
// Device adapters group their channels into Services and register those
// services here; application code (rules engine, client API layer) never
// addresses devices directly; it queries the registry by capability
// ("anything that can provide temperature") and invokes the channels it
// finds by id.
//
// # Architecture
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                         Registry                              │
//	│                                                               │
//	│  ┌───────────────┐   ┌───────────────┐   ┌────────────────┐   │
//	│  │   Services    │   │ Channel index │   │    Matcher     │   │
//	│  │ (service.go)  │──▶│ (registry.go) │◀──│ (selector.go)  │   │
//	│  │               │   │               │   │                │   │
//	│  │ • ownership   │   │ • id lookup   │   │ • kind + role  │   │
//	│  │ • lifecycle   │   │ • publish/    │   │ • tag filters  │   │
//	│  │ • per-svc mu  │   │   retract     │   │ • snapshots    │   │
//	│  └───────────────┘   └───────────────┘   └────────────────┘   │
//	│                              │                                │
//	└──────────────────────────────│────────────────────────────────┘
//	                               ▼
//	                      ┌─────────────────┐
//	                      │ SQLite tag store│
//	                      │   (tags.go)     │
//	                      └─────────────────┘
//
// # Ownership and lifecycle
//
// A Service exclusively owns its channels: deregistering a service (or
// calling Teardown) cascades channel removal, and the retraction of all
// of a service's channels from the index is atomic: no query observes a
// partially torn-down service. Channel ids are never reused within a
// process lifetime; once removed, invokes on an id fail with
// ErrChannelGone, which is terminal for that id.
//
// # Concurrency
//
// Each service's channel collection is synchronized independently, so
// adapters mutating their own service never block each other. The
// cross-service index is updated by short atomic publish/retract
// operations under the registry lock; Find takes a snapshot and never
// observes a half-registered channel. Invocations run outside all
// registry locks because they may block on device I/O.
package registry
