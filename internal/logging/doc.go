// Package logging provides the structured logging interface used by the
// uintcalc application layers, with a zerolog backend and a log.Logger
// fallback.
package logging
