// Package config handles loading and parsing the ReStyle client
// configuration file.
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/restyle/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Example config.toml:
//
//	api_base = "https://re-style-backend.example.com"
//	state_path = "~/.local/share/restyle/state.toml"
//	refresh_seconds = 30
//
// All fields are optional. Tilde expansion is performed automatically.
// Missing config files are NOT an error; defaults are used instead, so
// the client works out of the box against a local development server.
package config
