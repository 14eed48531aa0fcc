package config

import (
	"encoding/json"
	"os"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/flagx"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/timex"
)

// JsonConfig is the on-disk shape of a configuration file. Every field is
// optional; absent fields leave the current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	ResponseDelay               *timex.Duration `json:"response_delay"`
	LogLevel                    *string         `json:"log_level"`
	LogFile                     *string         `json:"log_file"`
	EnableDummyAdmin            *bool           `json:"enable_dummy_admin"`
	ExampleDataFile             *string         `json:"example_data_file"`
	SecretKey                   *string         `json:"secret_key"`
	ResetPassword               *string         `json:"reset_password"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	PDFStorage                  *string         `json:"pdf_storage"`
	S3RootUser                  *string         `json:"s3_root_user"`
	S3RootPassword              *string         `json:"s3_root_password"`
	S3Bucket                    *string         `json:"s3_bucket"`
	S3Region                    *string         `json:"s3_region"`
	S3BaseEndpoint              *string         `json:"s3_base_endpoint"`
}

// parseJson loads the file named by -c/-config into config. Without the flag
// nothing happens. An unreadable or malformed file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}
	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	set(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	set(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	if c.ResponseDelay != nil {
		config.ResponseDelay = c.ResponseDelay.Duration
	}
	set(&config.LogLevel, c.LogLevel)
	set(&config.LogFile, c.LogFile)
	set(&config.EnableDummyAdmin, c.EnableDummyAdmin)
	set(&config.ExampleDataFile, c.ExampleDataFile)
	set(&config.SecretKey, c.SecretKey)
	set(&config.ResetPassword, c.ResetPassword)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	set(&config.PDFStorage, c.PDFStorage)
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
