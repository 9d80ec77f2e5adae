package loader

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS color name ("steelblue") or a hex color
// ("#rgb", "#rrggbb", "#rrggbbaa") into RGBA channels in [0, 255].
func ParseColor(s string) ([]float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return nil, fmt.Errorf("empty color")
	}

	if !strings.HasPrefix(s, "#") {
		c, ok := colornames.Map[s]
		if !ok {
			return nil, fmt.Errorf("unknown color name %q", s)
		}
		return []float64{float64(c.R), float64(c.G), float64(c.B), float64(c.A)}, nil
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return nil, fmt.Errorf("invalid hex color %q", s)
	}

	out := make([]float64, 0, 4)
	for i := 0; i < len(hex); i += 2 {
		v, err := strconv.ParseUint(hex[i:i+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		out = append(out, float64(v))
	}
	return out, nil
}
