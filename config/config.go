/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads client settings from a file, dotenv files and the
// environment, and turns them into the options the other packages take.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"dirpx.dev/callable/apis"
	"dirpx.dev/callable/httpx"
	"dirpx.dev/callable/policy"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CALLABLE_PROJECT_ID.
const EnvPrefix = "CALLABLE"

// EmulatorHostEnv is the conventional "host:port" emulator variable.
const EmulatorHostEnv = "FUNCTIONS_EMULATOR_HOST"

// Config is the resolved client configuration.
type Config struct {
	ProjectID       string
	Region          string
	DefaultTimeout  time.Duration
	Timeouts        []TimeoutRule
	TimeoutPrefixes []PrefixRule
	Emulator        Emulator
	LogLevel        logrus.Level
}

// TimeoutRule sets the timeout of one function. Names keep their case.
type TimeoutRule struct {
	Name    string        `mapstructure:"name"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// PrefixRule sets the timeout of a function group.
type PrefixRule struct {
	Prefix  string        `mapstructure:"prefix"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Emulator holds the local emulator endpoint. Origin wins over Host/Port.
type Emulator struct {
	Host   string
	Port   int
	Origin string
}

// Enabled reports whether any emulator endpoint is configured.
func (e Emulator) Enabled() bool { return e.Origin != "" || e.Host != "" }

// Load reads configuration.
// Environment > dotenv files > config file > defaults precedence.
//
// An empty path skips the config file. Dotenv files never override
// variables already set in the process environment.
func Load(path string, dotenv ...string) (*Config, error) {
	if len(dotenv) > 0 {
		if err := godotenv.Load(dotenv...); err != nil {
			return nil, fmt.Errorf("failed to load dotenv files: %w", err)
		}
	}

	v := viper.New()

	v.SetDefault("project_id", "")
	v.SetDefault("region", httpx.DefaultRegion)
	v.SetDefault("default_timeout", httpx.DefaultTimeout.String())
	v.SetDefault("emulator.host", "")
	v.SetDefault("emulator.port", 0)
	v.SetDefault("emulator.origin", "")
	v.SetDefault("log_level", "info")

	// Bind environment variables with CALLABLE_ prefix
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	lvl, err := logrus.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}

	cfg := &Config{
		ProjectID:      v.GetString("project_id"),
		Region:         v.GetString("region"),
		DefaultTimeout: v.GetDuration("default_timeout"),
		Emulator: Emulator{
			Host:   v.GetString("emulator.host"),
			Port:   v.GetInt("emulator.port"),
			Origin: v.GetString("emulator.origin"),
		},
		LogLevel: lvl,
	}
	if err := v.UnmarshalKey("timeouts", &cfg.Timeouts); err != nil {
		return nil, fmt.Errorf("timeouts: %w", err)
	}
	if err := v.UnmarshalKey("timeout_prefixes", &cfg.TimeoutPrefixes); err != nil {
		return nil, fmt.Errorf("timeout_prefixes: %w", err)
	}

	if !cfg.Emulator.Enabled() {
		if hp := os.Getenv(EmulatorHostEnv); hp != "" {
			host, port, err := splitHostPort(hp)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", EmulatorHostEnv, err)
			}
			cfg.Emulator.Host, cfg.Emulator.Port = host, port
		}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitHostPort(hp string) (string, int, error) {
	host, p, err := net.SplitHostPort(hp)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port %q", p)
	}
	return host, port, nil
}

// validateConfig checks required fields, positive timeouts and the
// emulator port range.
func validateConfig(cfg *Config) error {
	if cfg.ProjectID == "" {
		return fmt.Errorf("project_id is required")
	}
	if cfg.Region == "" {
		return fmt.Errorf("region must not be empty")
	}
	if cfg.DefaultTimeout <= 0 {
		return fmt.Errorf("default_timeout must be positive, got %v", cfg.DefaultTimeout)
	}
	if cfg.Emulator.Origin == "" && cfg.Emulator.Host != "" {
		if cfg.Emulator.Port <= 0 || cfg.Emulator.Port > 65535 {
			return fmt.Errorf("emulator.port must be between 1 and 65535, got %d", cfg.Emulator.Port)
		}
	}
	for _, r := range cfg.Timeouts {
		if r.Name == "" || r.Timeout <= 0 {
			return fmt.Errorf("timeouts: rule %q must name a function and a positive timeout", r.Name)
		}
	}
	for _, r := range cfg.TimeoutPrefixes {
		if r.Prefix == "" || r.Timeout <= 0 {
			return fmt.Errorf("timeout_prefixes: rule %q must name a prefix and a positive timeout", r.Prefix)
		}
	}
	return nil
}

// Policy builds the call policy described by the timeout settings.
func (c *Config) Policy() (apis.CallPolicy, error) {
	opts := []policy.Option{policy.WithDefaultTimeout(c.DefaultTimeout)}
	for _, r := range c.Timeouts {
		opts = append(opts, policy.WithTimeout(r.Name, r.Timeout))
	}
	for _, r := range c.TimeoutPrefixes {
		opts = append(opts, policy.WithTimeoutPrefix(r.Prefix, r.Timeout))
	}
	return policy.New(opts...)
}

// Logger returns a JSON logger at the configured level.
func (c *Config) Logger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(c.LogLevel)
	l.SetFormatter(&logrus.JSONFormatter{})
	return logrus.NewEntry(l).WithField("project", c.ProjectID)
}

// HTTPOptions returns httpx options for this configuration. Callers add
// transport, credentials and metrics.
func (c *Config) HTTPOptions(log *logrus.Entry) httpx.Options {
	return httpx.Options{
		ProjectID:      c.ProjectID,
		Region:         c.Region,
		DefaultTimeout: c.DefaultTimeout,
		Logger:         log,
	}
}

// EmulatorTarget is anything that can be redirected to an emulator, such
// as *functions.Functions.
type EmulatorTarget interface {
	UseEmulator(host string, port int)
	UseFunctionsEmulatorOrigin(origin string)
}

// ApplyEmulator redirects t when an emulator is configured and reports
// whether it did.
func (c *Config) ApplyEmulator(t EmulatorTarget) bool {
	switch {
	case c.Emulator.Origin != "":
		t.UseFunctionsEmulatorOrigin(c.Emulator.Origin)
	case c.Emulator.Host != "":
		t.UseEmulator(c.Emulator.Host, c.Emulator.Port)
	default:
		return false
	}
	return true
}
