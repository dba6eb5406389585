// Package config sources gblur parameters for host applications.
//
// Parameters come from an option chain in the form used by video filter
// chains,
//
//	gaussianblur{sigma=1.5,height=120,black}
//	sigma=1.5:height=full:black=0
//
// or from a YAML file:
//
//	sigma: 1.5
//	height: full
//	black: false
//	float: true
//	chroma: i420
//	on_error: pass
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/gblur"
)

// Config errors.
var (
	// ErrSyntax is returned for a malformed option chain or value.
	ErrSyntax = errors.New("config: syntax error")

	// ErrUnknownOption is returned for an option name the filter does not have.
	ErrUnknownOption = errors.New("config: unknown option")
)

// Prefix is the optional prefix of option names, as in "gaussianblur-sigma".
const Prefix = "gaussianblur-"

// Error policies for frames the engine cannot process.
const (
	OnErrorDrop = "drop"
	OnErrorPass = "pass"
)

// Config is the full host-side configuration of the blur filter.
type Config struct {
	Sigma  float64 `yaml:"sigma"`
	Height Height  `yaml:"height"`
	Black  bool    `yaml:"black"`

	Float            bool    `yaml:"float"`
	ExactBounds      bool    `yaml:"exact_bounds"`
	PassThroughScale float64 `yaml:"pass_through_scale"`
	Round            bool    `yaml:"round"`
	MapCacheSize     int     `yaml:"map_cache_size"`

	// Chroma is the frame format fourcc expected by the host.
	Chroma string `yaml:"chroma"`

	// OnError is OnErrorDrop or OnErrorPass.
	OnError string `yaml:"on_error"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	p := gblur.DefaultParams()
	return Config{
		Sigma:        p.Sigma,
		Height:       Height(p.Height),
		Black:        p.Black,
		MapCacheSize: 1,
		Chroma:       gblur.ChromaI420.String(),
		OnError:      OnErrorDrop,
	}
}

// Load reads a YAML configuration file. Unset fields keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML configuration. Unset fields keep their defaults.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, err := c.Params(); err != nil {
		return err
	}
	if _, err := gblur.ParseChroma(c.Chroma); err != nil {
		return err
	}
	if c.PassThroughScale < 0 {
		return fmt.Errorf("%w: pass_through_scale %v", gblur.ErrInvalidParameter, c.PassThroughScale)
	}
	if c.MapCacheSize < 1 {
		return fmt.Errorf("%w: map_cache_size %d", gblur.ErrInvalidParameter, c.MapCacheSize)
	}
	switch c.OnError {
	case OnErrorDrop, OnErrorPass:
	default:
		return fmt.Errorf("%w: on_error %q", gblur.ErrInvalidParameter, c.OnError)
	}
	return nil
}

// Params returns the validated engine parameters.
func (c Config) Params() (gblur.Params, error) {
	p := gblur.Params{
		Sigma:  c.Sigma,
		Height: int(c.Height),
		Black:  c.Black,
	}
	if err := p.Validate(); err != nil {
		return gblur.Params{}, err
	}
	return p, nil
}

// Options returns the engine options selected by c.
func (c Config) Options() []gblur.Option {
	var opts []gblur.Option
	if c.Float {
		opts = append(opts, gblur.WithFloat())
	}
	if c.ExactBounds {
		opts = append(opts, gblur.WithExactBounds())
	}
	if c.PassThroughScale != 0 {
		opts = append(opts, gblur.WithPassThroughScale(c.PassThroughScale))
	}
	if c.Round {
		opts = append(opts, gblur.WithRounding())
	}
	if c.MapCacheSize > 1 {
		opts = append(opts, gblur.WithMapCacheSize(c.MapCacheSize))
	}
	return opts
}
