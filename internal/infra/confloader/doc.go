// Package confloader loads layered configuration with koanf.
//
// Sources, highest priority first:
//
//  1. Command-line flags (LoadMap)
//  2. Environment variables (STATICSERVER_ prefix)
//  3. YAML configuration file
//  4. Default values already present in the target struct
//
// Environment keys nest with a double underscore, so
// STATICSERVER_METRICS__PATH sets metrics.path while
// STATICSERVER_SHUTDOWN_TIMEOUT sets shutdown_timeout.
package confloader
