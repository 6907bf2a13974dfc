// Package services defines shared utilities consumed by the command handlers
// and external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp batch run IDs and operation stages for
//     logging.
//   - Structured error markers plus the Wrap helper so failures classify
//     consistently (missing input vs external tool vs configuration).
//   - Exit-code extraction for surfacing external tool failures.
//
// Use these helpers when wiring new commands so error handling and
// observability stay uniform across the toolkit.
package services
