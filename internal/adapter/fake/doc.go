// Package fake provides a scriptable in-memory channel mechanism for
// tests and for exercising the registry without hardware. The
// mechanism holds one value, counts invocations, and can be told to
// fail or delay on demand.
package fake
