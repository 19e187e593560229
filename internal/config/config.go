// Package config builds the application options from command-line flags,
// an optional config file and environment variables.
//
// Precedence, lowest first: defaults, config file, explicit flags,
// environment.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `mapstructure:"server_address"`

	// GeneratorURL is the base URL of the domain generation backend.
	GeneratorURL string `mapstructure:"generator_url"`

	// GeneratorTimeout bounds one generation call. Zero means no limit.
	GeneratorTimeout time.Duration `mapstructure:"generator_timeout"`

	LogLevel string `mapstructure:"log_level"`

	// SessionSecret signs the session cookie.
	SessionSecret string `mapstructure:"session_secret"`

	// SessionTTL is how long an untouched session is kept.
	SessionTTL time.Duration `mapstructure:"session_ttl"`

	// GenerateRate is the number of generate calls per minute allowed per
	// client. Zero disables limiting.
	GenerateRate  int `mapstructure:"generate_rate"`
	GenerateBurst int `mapstructure:"generate_burst"`

	EnablePprof bool `mapstructure:"enable_pprof"`
	EnableHTTPS bool `mapstructure:"enable_https"`

	// TLSHosts is a comma separated list of hosts autocert may issue for.
	TLSHosts string `mapstructure:"tls_hosts"`

	// Config is the path of an optional JSON, YAML or TOML config file.
	Config string `mapstructure:"-"`
}

// DefaultSessionSecret is only suitable for local development.
const DefaultSessionSecret = "dodomains-dev-secret"

func defaults() *Options {
	return &Options{
		Port:          "localhost:8080",
		GeneratorURL:  "http://localhost:3000",
		LogLevel:      "info",
		SessionSecret: DefaultSessionSecret,
		SessionTTL:    2 * time.Hour,
		GenerateRate:  10,
		GenerateBurst: 3,
	}
}

// binding ties one option to its flag, environment variable and file key.
type binding struct {
	flag  string
	env   string
	key   string
	value any
}

func bindings(o *Options) []binding {
	return []binding{
		{"a", "SERVER_ADDRESS", "server_address", &o.Port},
		{"g", "GENERATOR_URL", "generator_url", &o.GeneratorURL},
		{"t", "GENERATOR_TIMEOUT", "generator_timeout", &o.GeneratorTimeout},
		{"l", "LOG_LEVEL", "log_level", &o.LogLevel},
		{"k", "SESSION_SECRET", "session_secret", &o.SessionSecret},
		{"ttl", "SESSION_TTL", "session_ttl", &o.SessionTTL},
		{"r", "GENERATE_RATE", "generate_rate", &o.GenerateRate},
		{"burst", "GENERATE_BURST", "generate_burst", &o.GenerateBurst},
		{"p", "ENABLE_PPROF", "enable_pprof", &o.EnablePprof},
		{"s", "ENABLE_HTTPS", "enable_https", &o.EnableHTTPS},
		{"host", "TLS_HOSTS", "tls_hosts", &o.TLSHosts},
	}
}

// Parse reads os.Args and the environment.
func Parse() (*Options, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses args as command-line flags and applies the config file
// and environment on top of them.
func ParseArgs(args []string) (*Options, error) {
	o := defaults()

	fs := flag.NewFlagSet("dodomains", flag.ContinueOnError)
	fs.StringVar(&o.Port, "a", o.Port, "run on ip:port server")
	fs.StringVar(&o.GeneratorURL, "g", o.GeneratorURL, "domain generation backend base url")
	fs.DurationVar(&o.GeneratorTimeout, "t", o.GeneratorTimeout, "generation call timeout, 0 disables it")
	fs.StringVar(&o.LogLevel, "l", o.LogLevel, "log level")
	fs.StringVar(&o.SessionSecret, "k", o.SessionSecret, "session cookie signing key")
	fs.DurationVar(&o.SessionTTL, "ttl", o.SessionTTL, "idle session lifetime")
	fs.IntVar(&o.GenerateRate, "r", o.GenerateRate, "generate requests per minute per client, 0 disables limiting")
	fs.IntVar(&o.GenerateBurst, "burst", o.GenerateBurst, "generate request burst per client")
	fs.BoolVar(&o.EnablePprof, "p", o.EnablePprof, "enable pprof")
	fs.BoolVar(&o.EnableHTTPS, "s", o.EnableHTTPS, "enable https")
	fs.StringVar(&o.TLSHosts, "host", o.TLSHosts, "comma separated hosts for autocert")
	fs.StringVar(&o.Config, "c", o.Config, "path to config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	if cfg := os.Getenv("CONFIG"); cfg != "" {
		o.Config = cfg
	}

	if o.Config != "" {
		if err := applyFile(o, o.Config, explicit); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(o); err != nil {
		return nil, err
	}

	return o, nil
}

func applyFile(o *Options, path string, explicit map[string]bool) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	for _, b := range bindings(o) {
		if explicit[b.flag] || !v.IsSet(b.key) {
			continue
		}

		switch p := b.value.(type) {
		case *string:
			*p = v.GetString(b.key)
		case *bool:
			*p = v.GetBool(b.key)
		case *int:
			*p = v.GetInt(b.key)
		case *time.Duration:
			*p = v.GetDuration(b.key)
		}
	}
	return nil
}

func applyEnv(o *Options) error {
	for _, b := range bindings(o) {
		raw, ok := os.LookupEnv(b.env)
		if !ok || raw == "" {
			continue
		}

		var err error
		switch p := b.value.(type) {
		case *string:
			*p = raw
		case *bool:
			*p, err = strconv.ParseBool(raw)
		case *int:
			*p, err = strconv.Atoi(raw)
		case *time.Duration:
			*p, err = time.ParseDuration(raw)
		}
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", b.env, raw, err)
		}
	}
	return nil
}

// Hosts splits TLSHosts into a list.
func (o *Options) Hosts() []string {
	var hosts []string
	for _, h := range strings.Split(o.TLSHosts, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}
