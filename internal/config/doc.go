// Package config loads and validates the application configuration.
//
// Values are gathered from environment variables and command-line flags and
// merged with built-in defaults; earlier sources win. The resulting
// StructuredConfig is constructed once at process start and passed by
// reference to every component that needs it — there is no ambient global
// configuration state.
package config
