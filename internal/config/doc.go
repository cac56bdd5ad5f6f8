// Package config provides Inkwell's configuration system.
//
// Configuration is a single TOML file. It controls the lookback scan
// window, which built-in rules are enabled, and where Lua rule scripts are
// loaded from. Values merge over defaults; an absent file is not an error.
//
// A Watcher can observe the file for changes and notify a callback with
// the freshly loaded configuration. Reloading never mutates a running
// editor: the rule registry of a live editor is frozen, so new settings
// apply to editors created afterward.
package config
