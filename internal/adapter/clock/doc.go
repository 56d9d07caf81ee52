// Package clock exposes the gateway's own clock as a registered
// service with read-only time channels. Automations select the
// channels like any other getter, so "is it past 07:30" rules need no
// special casing in the matching layer.
package clock
