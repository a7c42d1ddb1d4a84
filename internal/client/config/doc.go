// Package config loads runtime configuration for the UDLM CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. UDLM_* environment variables.
//  4. Command-line flags.
//
// Supported flags
//
//	-a string   API base URL, e.g. http://127.0.0.1:8000
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-l string   log level
//	-m string   address for the /metrics endpoint
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:8000",
//	  "request_timeout": "10s",
//	  "online_check_interval": "30s",
//	  "currency": "INR",
//	  "log_level": "info",
//	  "metrics_addr": ":9091"
//	}
package config
