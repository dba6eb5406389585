package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/gblur"
)

// Height is a blur height limit that also accepts the full-frame sentinel
// spellings "full", -1 and -2.
type Height int

// ParseHeight parses a height limit.
func ParseHeight(s string) (Height, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "full") {
		return gblur.FullFrame, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: height %q", ErrSyntax, s)
	}
	switch {
	case n == -1 || n == -2:
		return gblur.FullFrame, nil
	case n < 0:
		return 0, fmt.Errorf("%w: height %d", gblur.ErrInvalidParameter, n)
	}
	return Height(n), nil
}

// String returns "full" for the sentinel and the line count otherwise.
func (h Height) String() string {
	if h == gblur.FullFrame {
		return "full"
	}
	return strconv.Itoa(int(h))
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (h *Height) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: height must be a scalar (line %d)", ErrSyntax, value.Line)
	}
	v, err := ParseHeight(value.Value)
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (h Height) MarshalYAML() (any, error) {
	if h == gblur.FullFrame {
		return "full", nil
	}
	return int(h), nil
}
