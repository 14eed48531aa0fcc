// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables and command-line
// flags.
package config

import "time"

const (
	PDFStorageMemory = "memory"
	PDFStorageS3     = "s3"
)

// Config holds runtime settings for the SnowballR mock server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the public gRPC endpoint.
//   - EndpointAddrHTTP: bind address for /metrics and /healthz.
//   - ResponseDelay: added to every successful response.
//   - LogLevel / LogFile: zap level name and optional log file.
//   - EnableDummyAdmin: registers admin@example.com at startup.
//   - ExampleDataFile: JSON or YAML file imported at startup.
//   - SecretKey: HMAC secret for signing access tokens (HS256).
//   - ResetPassword: the password a requested reset sets.
//   - AccessTokenValidityDuration: access token lifetime, 0 for no expiry.
//   - PDFStorage: "memory" or "s3".
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     S3-compatible backend used when PDFStorage is "s3".
type Config struct {
	EndpointAddrGRPC            string
	EndpointAddrHTTP            string
	ResponseDelay               time.Duration
	LogLevel                    string
	LogFile                     string
	EnableDummyAdmin            bool
	ExampleDataFile             string
	SecretKey                   string
	ResetPassword               string
	AccessTokenValidityDuration time.Duration
	PDFStorage                  string
	S3RootUser                  string
	S3RootPassword              string
	S3Bucket                    string
	S3Region                    string
	S3BaseEndpoint              string

	// Problems collects values that were rejected while loading and
	// replaced by their defaults. The caller logs them once a logger exists.
	Problems []error
}

// DefaultResponseDelay is used when no valid delay is configured.
const DefaultResponseDelay = 50 * time.Millisecond

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":3000"
	c.EndpointAddrHTTP = ":3001"
	c.ResponseDelay = DefaultResponseDelay
	c.LogLevel = "debug"
	c.LogFile = ""
	c.EnableDummyAdmin = false
	c.ExampleDataFile = ""
	c.SecretKey = "secretKey"
	c.ResetPassword = "reset"
	c.AccessTokenValidityDuration = 0
	c.PDFStorage = PDFStorageMemory
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "snowballr"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// setDelay parses raw as a response delay. Invalid values keep the default
// and are recorded in Problems.
func (c *Config) setDelay(source, raw string) {
	d, err := parseDelay(raw)
	if err != nil {
		c.ResponseDelay = DefaultResponseDelay
		c.Problems = append(c.Problems, delayError{source: source, raw: raw, err: err})
		return
	}
	c.ResponseDelay = d
}
