package config

import (
	"flag"
	"os"
	"time"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   gRPC bind address (e.g., ":3000")
//	-m string   HTTP bind address for /metrics and /healthz
//	-r string   response delay, milliseconds or a Go duration
//	-l string   log level
//	-o string   log file
//	-admin      register the dummy admin
//	-x string   example data file (JSON or YAML)
//	-s string   JWT HMAC secret key
//	-p string   reset password
//	-t int      access token validity, minutes (0 = no expiry)
//	-b string   PDF storage backend: memory or s3
//
// os.Args is first filtered to the flags above with flagx.FilterArgs, so the
// -c/-config flag of the JSON layer does not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-r", "-l", "-o", "-admin", "-x", "-s", "-p", "-t", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run the gRPC server")
	fs.StringVar(&config.EndpointAddrHTTP, "m", config.EndpointAddrHTTP, "address and port for metrics and health")
	delay := fs.String("r", "", "response delay (ms or duration)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFile, "o", config.LogFile, "log file")
	admin := Toggle(config.EnableDummyAdmin)
	fs.Var(&admin, "admin", "register admin@example.com")
	fs.StringVar(&config.ExampleDataFile, "x", config.ExampleDataFile, "example data file")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.ResetPassword, "p", config.ResetPassword, "reset password")
	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	fs.StringVar(&config.PDFStorage, "b", config.PDFStorage, "pdf storage backend (memory or s3)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *delay != "" {
		config.setDelay("-r", *delay)
	}
	config.EnableDummyAdmin = bool(admin)

	// minutes lose precision, so only an explicit -t replaces the value
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		}
	})
}
