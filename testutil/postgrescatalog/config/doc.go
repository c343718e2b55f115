// Package config provides database configurations for the catalog integration tests.
package config
