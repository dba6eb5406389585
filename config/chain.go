package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/gblur"
)

// ParseChain parses an option chain on top of Default.
func ParseChain(s string) (Config, error) {
	c := Default()
	if err := c.ApplyChain(s); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ApplyChain sets the options named in s.
//
// s is either a bare list "k=v:k=v" (':' or ',' separated) or a filter
// invocation "gaussianblur{k=v,k=v}". A key without a value sets a
// boolean option. Names may carry the "gaussianblur-" prefix.
func (c *Config) ApplyChain(s string) error {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '{'); i >= 0 {
		if !strings.HasSuffix(s, "}") {
			return fmt.Errorf("%w: unterminated option list in %q", ErrSyntax, s)
		}
		if name := strings.TrimSpace(s[:i]); name != "" && name != strings.TrimSuffix(Prefix, "-") {
			return fmt.Errorf("%w: filter %q", ErrUnknownOption, name)
		}
		s = s[i+1 : len(s)-1]
	}

	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ':' || r == ',' })
	for _, f := range fields {
		key, value, hasValue := strings.Cut(strings.TrimSpace(f), "=")
		key = strings.TrimPrefix(strings.TrimSpace(key), Prefix)
		if key == "" {
			return fmt.Errorf("%w: empty option name in %q", ErrSyntax, f)
		}
		if !hasValue {
			value = "1"
		}
		if err := c.set(key, strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return c.Validate()
}

func (c *Config) set(key, value string) error {
	var err error
	switch key {
	case "sigma":
		c.Sigma, err = strconv.ParseFloat(value, 64)
	case "height":
		c.Height, err = ParseHeight(value)
		return err
	case "black":
		c.Black, err = parseBool(value)
	case "float":
		c.Float, err = parseBool(value)
	case "exact", "exact_bounds":
		c.ExactBounds, err = parseBool(value)
	case "round":
		c.Round, err = parseBool(value)
	case "scale", "pass_through_scale":
		c.PassThroughScale, err = strconv.ParseFloat(value, 64)
	case "cache", "map_cache_size":
		c.MapCacheSize, err = strconv.Atoi(value)
	case "chroma":
		_, err = gblur.ParseChroma(value)
		c.Chroma = value
		return err
	case "on_error":
		c.OnError = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOption, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrSyntax, key, value)
	}
	return nil
}

// parseBool accepts strconv booleans and the integer form used by the
// reference "black" option, where only 1 means true.
func parseBool(s string) (bool, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n == 1, nil
	}
	return strconv.ParseBool(s)
}
