package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBacklog = 10
	DefaultWindow  = 256
	DefaultLinger  = 5 * time.Second
)

type Config struct {
	// Backlog is the queue length passed to listen(2).
	Backlog int `yaml:"backlog"`
	// Window is the number of leading file bytes sent to the peer.
	Window int `yaml:"window"`
	// Linger is the pause between the transfer and closing the connection.
	Linger time.Duration `yaml:"linger"`
	// Root confines requested paths to a directory. Empty means paths are
	// opened relative to the working directory exactly as requested,
	// including ".." components.
	Root    string `yaml:"root"`
	Strict  bool   `yaml:"strict"`
	Verbose bool   `yaml:"verbose"`
}

func Default() *Config {
	return &Config{
		Backlog: DefaultBacklog,
		Window:  DefaultWindow,
		Linger:  DefaultLinger,
	}
}

// Load reads the configuration file at path. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses YAML from r over the defaults. Unknown keys are rejected.
func Read(r io.Reader) (*Config, error) {
	c := Default()
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Backlog <= 0 {
		return fmt.Errorf("backlog must be positive, got %d", c.Backlog)
	}
	if c.Window <= 0 {
		return fmt.Errorf("window must be positive, got %d", c.Window)
	}
	if c.Linger < 0 {
		return fmt.Errorf("linger must not be negative, got %s", c.Linger)
	}
	return nil
}

// Filesystem returns the filesystem requested paths are opened from.
func (c *Config) Filesystem() billy.Basic {
	if c.Root == "" {
		return osfs.Default
	}
	return osfs.New(c.Root, osfs.WithBoundOS())
}
