// Package config holds the runtime settings of the kryptolang server and
// clients: defaults, an optional YAML overlay, then command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/TheusHen/kryptolang/kryptolang/logging"
	"github.com/TheusHen/kryptolang/kryptolang/registry"
	"github.com/TheusHen/kryptolang/kryptolang/registry/memory"
)

const (
	TransportHTTP = "http"
	TransportQUIC = "quic"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds runtime settings.
//
// Fields:
//   - Transport: "http" or "quic", used both to serve and to reach services.
//   - Listen: bind address of the serve command.
//   - Services: address of each collaborator role, gateway included.
//   - SessionTTL: how long a passphrase-derived session stays cached.
//   - SweepInterval: how often expired sessions are dropped.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	Transport     string                   `yaml:"transport"`
	Listen        string                   `yaml:"listen"`
	Services      map[registry.Role]string `yaml:"services"`
	SessionTTL    time.Duration            `yaml:"session_ttl"`
	SweepInterval time.Duration            `yaml:"sweep_interval"`
	LogLevel      string                   `yaml:"log_level"`
}

// LoadDefaults populates Config with local development defaults: every
// collaborator on its own localhost port, the gateway on 5000.
func (c *Config) LoadDefaults() {
	c.Transport = TransportHTTP
	c.Listen = ":5000"
	c.Services = map[registry.Role]string{
		registry.RoleLexicon: "localhost:5001",
		registry.RoleGrammar: "localhost:5002",
		registry.RoleCrypto:  "localhost:5003",
		registry.RoleParser:  "localhost:5004",
		registry.RoleGateway: "localhost:5000",
	}
	c.SessionTTL = 10 * time.Minute
	c.SweepInterval = time.Minute
	c.LogLevel = "info"
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.overlay(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overlay decodes YAML onto c. Keys absent from data keep their value;
// services merge per role.
func (c *Config) overlay(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Transport {
	case TransportHTTP, TransportQUIC:
	default:
		return fmt.Errorf("%w: transport %q", ErrInvalidConfig, c.Transport)
	}
	if c.Listen == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalidConfig)
	}
	for role := range c.Services {
		if _, err := registry.ParseRole(string(role)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("%w: session_ttl must be positive", ErrInvalidConfig)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("%w: sweep_interval must be positive", ErrInvalidConfig)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Resolver exposes Services as a registry.
func (c *Config) Resolver() *memory.Store {
	return memory.FromAddrs(c.Services)
}
