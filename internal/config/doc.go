// Package config loads libris settings.
//
// Settings come from four layers, later layers winning:
//  1. built-in defaults (Default)
//  2. $LIBRIS_HOME/config.yaml, or ~/.libris/config.yaml
//  3. environment variables (LIBRIS_*), optionally seeded from a .env file
//  4. command-line flags, applied by the cli package
//
// An additional YAML file passed with --config is shallow-merged over layer 2
// one top-level section at a time.
package config
