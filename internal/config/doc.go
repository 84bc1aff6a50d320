// Package config loads runtime configuration for the ticketly CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML; anything else as JSON, where comments
//     and trailing commas are allowed.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-b string   storage backend: sqlite, postgres, s3 or memory
//	-f string   sqlite database file
//	-d string   postgres DSN
//	-k string   s3 bucket
//	-g string   s3 region
//	-e string   s3 base endpoint
//	-x string   s3 object key prefix
//	-u string   s3 access key
//	-p string   s3 secret key
//	-s string   session token signing secret
//	-t int      storage operation timeout (seconds)
//	-l string   log level: debug, info, warn, error
//
// # File schema
//
// Durations are timex.Duration, so "5s" and 5000000000 mean the same:
//
//	{
//	  // local file by default
//	  "storage_backend": "sqlite",
//	  "storage_path": "ticketly.db",
//	  "operation_timeout": "5s",
//	}
//
// Keys left out of the file keep their default.
package config
