package config

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v11"
)

// EnvConfig lists the environment variables the server reads. Unset
// variables leave the current value untouched.
// GRPC_PORT and GRPC_WEB_PORT are accepted as the listen ports of the gRPC
// and HTTP servers; the *_ADDRESS variables take precedence over them.
type EnvConfig struct {
	EndpointAddrGRPC string `env:"GRPC_ADDRESS"`
	EndpointAddrHTTP string `env:"HTTP_ADDRESS"`
	PortGRPC         string `env:"GRPC_PORT"`
	PortHTTP         string `env:"GRPC_WEB_PORT"`
	ResponseDelay    string `env:"RESPONSE_DELAY"`
	LogLevel         string `env:"LOG_LEVEL"`
	LogFile          string `env:"LOG_FILE"`
	EnableDummyAdmin string `env:"ENABLE_DUMMY_ADMIN"`
	ExampleDataFile  string `env:"EXAMPLE_DATA_FILE"`
	SecretKey        string `env:"SECRET_KEY"`
	ResetPassword    string `env:"RESET_PASSWORD"`
	PDFStorage       string `env:"PDF_STORAGE"`
	S3RootUser       string `env:"S3_ROOT_USER"`
	S3RootPassword   string `env:"S3_ROOT_PASSWORD"`
	S3Bucket         string `env:"S3_BUCKET"`
	S3Region         string `env:"S3_REGION"`
	S3BaseEndpoint   string `env:"S3_BASE_ENDPOINT"`
}

// parseEnv overlays config with the environment. Malformed delays, toggles
// and ports keep the previous value and are recorded in Problems.
func parseEnv(config *Config) {
	e := EnvConfig{
		LogLevel:         config.LogLevel,
		LogFile:          config.LogFile,
		ExampleDataFile:  config.ExampleDataFile,
		SecretKey:        config.SecretKey,
		ResetPassword:    config.ResetPassword,
		PDFStorage:       config.PDFStorage,
		S3RootUser:       config.S3RootUser,
		S3RootPassword:   config.S3RootPassword,
		S3Bucket:         config.S3Bucket,
		S3Region:         config.S3Region,
		S3BaseEndpoint:   config.S3BaseEndpoint,
	}
	if err := env.Parse(&e); err != nil {
		config.Problems = append(config.Problems, err)
		return
	}

	config.setPort(&config.EndpointAddrGRPC, "GRPC_PORT", e.PortGRPC)
	config.setPort(&config.EndpointAddrHTTP, "GRPC_WEB_PORT", e.PortHTTP)
	if e.EndpointAddrGRPC != "" {
		config.EndpointAddrGRPC = e.EndpointAddrGRPC
	}
	if e.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = e.EndpointAddrHTTP
	}
	if e.ResponseDelay != "" {
		config.setDelay("RESPONSE_DELAY", e.ResponseDelay)
	}
	config.LogLevel = e.LogLevel
	config.LogFile = e.LogFile
	if e.EnableDummyAdmin != "" {
		var t Toggle
		if err := t.Set(e.EnableDummyAdmin); err != nil {
			config.Problems = append(config.Problems,
				fmt.Errorf("ENABLE_DUMMY_ADMIN: %w, keeping %t", err, config.EnableDummyAdmin))
		} else {
			config.EnableDummyAdmin = bool(t)
		}
	}
	config.ExampleDataFile = e.ExampleDataFile
	config.SecretKey = e.SecretKey
	config.ResetPassword = e.ResetPassword
	config.PDFStorage = e.PDFStorage
	config.S3RootUser = e.S3RootUser
	config.S3RootPassword = e.S3RootPassword
	config.S3Bucket = e.S3Bucket
	config.S3Region = e.S3Region
	config.S3BaseEndpoint = e.S3BaseEndpoint
}

// setPort points addr at ":<raw>" when raw is a valid TCP port.
func (c *Config) setPort(addr *string, source, raw string) {
	if raw == "" {
		return
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		c.Problems = append(c.Problems, fmt.Errorf("%s: invalid port %q, keeping %s", source, raw, *addr))
		return
	}
	*addr = ":" + strconv.Itoa(port)
}
