package cassowary

import (
	"fmt"
	"strings"
)

// Strength orders constraints for conflict resolution. Higher wins.
// A strength is a weighted sum of three tiers so that any number of weaker
// violations never outweighs one stronger violation (up to 1000 per tier).
type Strength float64

// Predefined strengths.
var (
	Required = NewStrength(1000, 1000, 1000, 1)
	Strong   = NewStrength(1, 0, 0, 1)
	Medium   = NewStrength(0, 1, 0, 1)
	Weak     = NewStrength(0, 0, 1, 1)
)

// NewStrength builds a strength from its strong, medium and weak components,
// each scaled by w and clamped to [0, 1000].
func NewStrength(a, b, c, w float64) Strength {
	var s float64
	s += clamp(a*w) * 1000000
	s += clamp(b*w) * 1000
	s += clamp(c * w)
	return Strength(s)
}

func clamp(v float64) float64 {
	return max(0, min(1000, v))
}

// Clip bounds s to the range [0, Required].
func (s Strength) Clip() Strength {
	return max(0, min(Required, s))
}

// IsRequired reports whether s is (at least) Required.
func (s Strength) IsRequired() bool {
	return s.Clip() >= Required
}

func (s Strength) String() string {
	switch s {
	case Required:
		return "required"
	case Strong:
		return "strong"
	case Medium:
		return "medium"
	case Weak:
		return "weak"
	}
	return fmt.Sprintf("%g", float64(s))
}

// ParseStrength parses one of "required", "strong", "medium" or "weak".
func ParseStrength(s string) (Strength, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "required":
		return Required, nil
	case "strong":
		return Strong, nil
	case "medium":
		return Medium, nil
	case "weak":
		return Weak, nil
	}
	return 0, fmt.Errorf("unknown strength %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strength) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strength) UnmarshalText(text []byte) error {
	v, err := ParseStrength(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
