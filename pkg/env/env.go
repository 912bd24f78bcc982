// Package env reads raw process environment values, for the few knobs that
// need resolving before the config package is loaded.
package env

import "os"

// Get returns the named variable's value, or fallback when it is unset or
// blank.
func Get(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
