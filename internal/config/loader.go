package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

/*
CONFIGURATION DESIGN:

- Config is static data, read once at startup
- Omitted keys keep the source-compatible defaults
- Unknown keys are rejected
- Validation happens BEFORE the config is returned
*/

const (
	DefaultServiceName = "sidecar service"
	DefaultListen      = "localhost:8060"
	DefaultLocale      = LocaleEN
)

type Service struct {
	Name string `yaml:"name"`
}

type Server struct {
	Listen       string        `yaml:"listen"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type Responder struct {
	Locale         string `yaml:"locale"`
	Welcome        string `yaml:"welcome"`
	NotFoundStatus int    `yaml:"not_found_status"`
}

// Config is the full sidecar configuration.
type Config struct {
	Service   Service   `yaml:"service"`
	Server    Server    `yaml:"server"`
	Responder Responder `yaml:"responder"`
}

// Default returns a config that behaves exactly like the original stub.
func Default() Config {
	return Config{
		Service: Service{Name: DefaultServiceName},
		Server: Server{
			Listen:       DefaultListen,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Responder: Responder{
			Locale:         DefaultLocale,
			NotFoundStatus: 200,
		},
	}
}

// LoadFromFile reads a YAML config on top of Default and validates it.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
// An empty document yields the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("invalid YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Welcome resolves the index message: an explicit welcome wins over the locale.
func (c Config) Welcome() string {
	if c.Responder.Welcome != "" {
		return c.Responder.Welcome
	}
	return welcomes[c.Responder.Locale]
}
