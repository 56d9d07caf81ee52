// Package logging wraps log/slog with the gateway's conventions:
// one handler per process, service and version stamped on every entry,
// and level/format/output driven by configuration.
//
//	logging:
//	  level: info    # debug, info, warn, error
//	  format: json   # json, text
//	  output: stdout # stdout, stderr
//
// Domain packages do not import this package. They declare a minimal
// Logger interface of their own (Debug/Info/Warn/Error taking a message
// and key-value pairs) which *logging.Logger satisfies; main wires the
// concrete logger in. That keeps the domain free of infrastructure
// imports and keeps tests quiet by default.
//
// Never log secrets, tokens or passwords. Log identifying fields
// instead, never the credential itself.
package logging
