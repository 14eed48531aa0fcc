// Package config loads runtime configuration for the SnowballR CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags -a (server address) and -t (timeout in seconds).
//
// JSON example:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:3000",
//	  "request_timeout": "5s"
//	}
package config
