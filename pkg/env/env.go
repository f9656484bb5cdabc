// Package env reads raw environment variables for the few knobs that
// sit outside the envconfig-managed configuration.
package env

import "os"

// Get returns the named environment variable, or fallback when it is
// unset or empty.
func Get(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
