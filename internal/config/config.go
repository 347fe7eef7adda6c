// Package config provides the optional YAML configuration for raplacal.
//
// Every field has a baked-in default, so running without a config file is the
// normal case. The file only exists to repoint the calendar identity fields
// and the source timezone without rebuilding.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingProdID  = errors.New("prodid must not be empty")
	ErrMissingDomain  = errors.New("uid_domain must not be empty")
	ErrMissingContact = errors.New("contact must not be empty")
)

// Config holds the calendar identity and extraction settings.
type Config struct {
	// ProdID is the PRODID header of generated calendars.
	ProdID string `yaml:"prodid"`
	// UIDDomain is the host part of generated UIDs.
	UIDDomain string `yaml:"uid_domain"`
	// Contact is the placeholder address for ORGANIZER/ATTENDEE entries.
	Contact string `yaml:"contact"`
	// Timezone is the IANA zone all scraped wall-clock text lives in.
	Timezone string `yaml:"timezone"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ProdID:    "-//raplacal//raplacal//DE",
		UIDDomain: "raplacal",
		Contact:   "noreply@raplacal.de",
		Timezone:  "Europe/Berlin",
	}
}

// Load reads a YAML config file over the defaults. Fields absent from the
// file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that no identity field was blanked out.
func (c *Config) Validate() error {
	if c.ProdID == "" {
		return ErrMissingProdID
	}
	if c.UIDDomain == "" {
		return ErrMissingDomain
	}
	if c.Contact == "" {
		return ErrMissingContact
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("resolving timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
