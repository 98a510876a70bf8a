package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for max7219ctl.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	SPI     SPIConfig     `yaml:"spi"`
	Latch   LatchConfig   `yaml:"latch"`
	Chain   ChainConfig   `yaml:"chain"`
	Logging LoggingConfig `yaml:"logging"`
}

// SPIConfig contains the SPI port settings.
type SPIConfig struct {
	// Port is the periph.io SPI port name, empty for the first one.
	Port string `yaml:"port"`
	// Hz is the clock frequency. Default: 10000000
	Hz int64 `yaml:"hz"`
	// Mode is the SPI mode, 0 to 3. Default: 0
	Mode int `yaml:"mode"`
}

// Latch kinds.
const (
	LatchNone   = "none"
	LatchPeriph = "periph"
	LatchGPIOD  = "gpiod"
)

// LatchConfig selects the LOAD/CS line of the chain.
type LatchConfig struct {
	// Kind is "none" (hardware chip select), "periph" or "gpiod".
	Kind string `yaml:"kind"`
	// Pin is the periph.io pin name, e.g. "GPIO8". Used when Kind is "periph".
	Pin string `yaml:"pin"`
	// Chip and Offset name the line when Kind is "gpiod".
	Chip   string `yaml:"chip"`
	Offset int    `yaml:"offset"`
}

// ChainConfig describes the daisy-chain and its power-up state.
type ChainConfig struct {
	Devices   int    `yaml:"devices"`
	Intensity int    `yaml:"intensity"`
	ScanLimit int    `yaml:"scan_limit"`
	Decode    string `yaml:"decode"` // "none", "b" or a hex mask like "0x0f"
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: MAX7219_SECTION_KEY
// For example: MAX7219_SPI_PORT, MAX7219_CHAIN_DEVICES
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config with sensible defaults: one device on the first
// SPI port, framed by its hardware chip select.
func Default() *Config {
	return &Config{
		SPI: SPIConfig{
			Hz:   10000000,
			Mode: 0,
		},
		Latch: LatchConfig{
			Kind: LatchNone,
			Chip: "gpiochip0",
		},
		Chain: ChainConfig{
			Devices:   1,
			Intensity: 8,
			ScanLimit: 8,
			Decode:    "none",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("MAX7219_SPI_PORT"); v != "" {
		cfg.SPI.Port = v
	}
	if v := os.Getenv("MAX7219_LATCH_KIND"); v != "" {
		cfg.Latch.Kind = v
	}
	if v := os.Getenv("MAX7219_LATCH_PIN"); v != "" {
		cfg.Latch.Pin = v
	}
	if v := os.Getenv("MAX7219_CHAIN_DEVICES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing MAX7219_CHAIN_DEVICES: %w", err)
		}
		cfg.Chain.Devices = n
	}
	if v := os.Getenv("MAX7219_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}

// Validate checks the configuration for errors.
//
// Chain values are range checked again by the driver; checking them here
// reports a bad file before any hardware is opened.
func (c *Config) Validate() error {
	var errs []error

	if c.SPI.Hz <= 0 || c.SPI.Hz > 10000000 {
		errs = append(errs, fmt.Errorf("spi.hz must be between 1 and 10000000, got %d", c.SPI.Hz))
	}
	if c.SPI.Mode < 0 || c.SPI.Mode > 3 {
		errs = append(errs, fmt.Errorf("spi.mode must be between 0 and 3, got %d", c.SPI.Mode))
	}

	switch strings.ToLower(c.Latch.Kind) {
	case LatchNone:
	case LatchPeriph:
		if c.Latch.Pin == "" {
			errs = append(errs, errors.New("latch.pin is required for a periph latch"))
		}
	case LatchGPIOD:
		if c.Latch.Chip == "" {
			errs = append(errs, errors.New("latch.chip is required for a gpiod latch"))
		}
		if c.Latch.Offset < 0 {
			errs = append(errs, fmt.Errorf("latch.offset must not be negative, got %d", c.Latch.Offset))
		}
	default:
		errs = append(errs, fmt.Errorf("latch.kind must be none, periph or gpiod, got %q", c.Latch.Kind))
	}

	if c.Chain.Devices < 1 || c.Chain.Devices > 8 {
		errs = append(errs, fmt.Errorf("chain.devices must be between 1 and 8, got %d", c.Chain.Devices))
	}
	if c.Chain.Intensity < 0 || c.Chain.Intensity > 15 {
		errs = append(errs, fmt.Errorf("chain.intensity must be between 0 and 15, got %d", c.Chain.Intensity))
	}
	if c.Chain.ScanLimit < 1 || c.Chain.ScanLimit > 8 {
		errs = append(errs, fmt.Errorf("chain.scan_limit must be between 1 and 8, got %d", c.Chain.ScanLimit))
	}
	if _, err := ParseDecode(c.Chain.Decode); err != nil {
		errs = append(errs, fmt.Errorf("chain.decode: %w", err))
	}

	return errors.Join(errs...)
}

// ParseDecode parses a decode mode: "none", "b" or a mask such as "0x0f".
func ParseDecode(s string) (byte, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return 0x00, nil
	case "b":
		return 0xFF, nil
	}
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid decode mode %q", s)
	}
	return byte(v), nil
}
