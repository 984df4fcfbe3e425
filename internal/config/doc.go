// Package config loads the dashboard configuration.
//
// # Configuration Sources
//
// Configuration is built in increasing order of precedence:
//
//	1. Default values (Default)
//	2. A YAML file: $MOVIEDASH_CONFIG, or moviedash.yaml / configs/moviedash.yaml
//	3. Environment variables
//
// # Environment Variables
//
// Variables follow the pattern MOVIEDASH_<SECTION>_<FIELD>:
//
//	MOVIEDASH_SERVER_PORT=8080
//	MOVIEDASH_DATA_FILE=/data/movies.csv
//	MOVIEDASH_DATA_HISTOGRAM_BINS=30
//	MOVIEDASH_LOGGING_LEVEL=debug
//	MOVIEDASH_TELEMETRY_TRACE_EXPORTER=stdout
//	MOVIEDASH_SECURITY_ALLOWED_ORIGINS=http://localhost:8080,http://127.0.0.1:8080
//
// # Validation
//
// Field constraints are declared with validate tags and checked with
// go-playground/validator after all sources are applied. Log output is always
// JSON.
package config
