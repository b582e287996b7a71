package config

import (
	"fmt"
	"log/slog"
	"net"
	"path/filepath"
	"strconv"

	"github.com/caarlos0/env/v11"
)

// DefaultPort is used when PORT is unset or not a usable port number.
const DefaultPort Port = 8123

type Config struct {
	Port      Port       `env:"PORT" envDefault:"8123"`
	Host      string     `env:"HOST" envDefault:"0.0.0.0"`
	PublicDir string     `env:"PUBLIC_DIR" envDefault:"public"`
	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	dir, err := filepath.Abs(cfg.PublicDir)
	if err != nil {
		return nil, fmt.Errorf("resolving public dir %q: %w", cfg.PublicDir, err)
	}
	cfg.PublicDir = dir

	return &cfg, nil
}

// Addr is the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port.String())
}

// URL is the address printed for humans at startup.
func (c *Config) URL() string {
	return "http://localhost:" + c.Port.String()
}

// Port is a TCP port that never fails to parse: anything that isn't a
// number in 1..65535 becomes DefaultPort.
type Port int

func (p *Port) UnmarshalText(text []byte) error {
	n, err := strconv.Atoi(string(text))
	if err != nil || n < 1 || n > 65535 {
		*p = DefaultPort
		return nil
	}
	*p = Port(n)
	return nil
}

func (p Port) String() string {
	return strconv.Itoa(int(p))
}
