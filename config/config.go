// Package config reads the cgr YAML configuration file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/capgrowth"
	"github.com/etnz/capgrowth/csvindex"
	"github.com/etnz/capgrowth/date"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed default-config.yaml
var defaultConfigYAML []byte

// Config is the content of a configuration file.
type Config struct {
	Currency string   `yaml:"currency" validate:"omitempty,len=3,uppercase"`
	Source   Source   `yaml:"source"`
	Defaults Defaults `yaml:"defaults"`
	Server   Server   `yaml:"server"`
}

// Source locates the index series.
type Source struct {
	File       string `yaml:"file" validate:"required"`
	DateColumn string `yaml:"date_column"`
	// Columns maps an index type to the CSV column holding it.
	Columns map[capgrowth.IndexType]string `yaml:"columns" validate:"dive,keys,oneof=real nominal,endkeys,required"`
	// FRED and INSEE map an index type to the provider's series identifier.
	FRED  map[capgrowth.IndexType]string `yaml:"fred" validate:"dive,keys,oneof=real nominal,endkeys,required"`
	INSEE map[capgrowth.IndexType]string `yaml:"insee" validate:"dive,keys,oneof=real nominal,endkeys,numeric"`
}

// Defaults are the inputs used when none is given.
type Defaults struct {
	Index     capgrowth.IndexType `yaml:"index" validate:"omitempty,oneof=real nominal"`
	Price     float64             `yaml:"price" validate:"gte=1"`
	Purchased date.Date           `yaml:"purchased"`
	Raw       bool                `yaml:"raw"`
}

// Server configures `cgr serve`.
type Server struct {
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

var validate = validator.New()

// Default returns the built-in configuration.
func Default() *Config {
	c, err := Parse(defaultConfigYAML)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in configuration: %v", err))
	}
	return c
}

// Parse decodes a configuration, unset values are empty.
func Parse(data []byte) (*Config, error) {
	c := new(Config)
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the configuration file at path on top of the built-in one.
//
// A relative source file is resolved from the configuration file's folder.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("invalid configuration %q: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %q: %w", path, err)
	}
	if !filepath.IsAbs(c.Source.File) {
		c.Source.File = filepath.Join(filepath.Dir(path), c.Source.File)
	}
	return c, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IndexType returns the default index type.
func (c *Config) IndexType() capgrowth.IndexType {
	if c.Defaults.Index == "" {
		return capgrowth.IndexTypes()[0]
	}
	return c.Defaults.Index
}

// CSVOptions returns how to read the source file.
func (c *Config) CSVOptions() csvindex.Options {
	return csvindex.Options{DateColumn: c.Source.DateColumn, Columns: c.Source.Columns}
}

// LoadIndex reads the typ index from the source file.
func (c *Config) LoadIndex(typ capgrowth.IndexType) (capgrowth.IndexSeries, error) {
	s, err := csvindex.LoadFile(c.Source.File, typ, c.CSVOptions())
	if errors.Is(err, fs.ErrNotExist) {
		return s, fmt.Errorf("no index file %q, download it with 'cgr fetch fred' or 'cgr fetch insee', or set source.file: %w", c.Source.File, err)
	}
	return s, err
}

// Anchor returns the default purchase.
func (c *Config) Anchor() capgrowth.Anchor {
	return capgrowth.Anchor{Date: c.Defaults.Purchased, Value: c.Defaults.Price}
}
