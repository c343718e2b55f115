// Package config loads and validates the runtime configuration for the
// pricing bridge from environment variables.
//
// Invalid values fail startup with sentinel errors instead of being clamped.
package config
