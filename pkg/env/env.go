package env

import "os"

// Get returns the value of the given environment variable or a fallback when
// it is unset or empty.
func Get(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
