// Package config loads the configuration of the sync server and the
// terminal runtime.
//
// Values are read from environment variables (after an optional .env file),
// command-line flags, an optional JSON file and built-in defaults, then
// merged with mergo so that earlier sources win for non-zero fields.
// [GetServerConfig] and [GetTerminalConfig] validate the settings each role
// requires.
package config
