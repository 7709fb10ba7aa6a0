package placement

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Length is an offset component: either an absolute value or a percentage
// of the size of the rect it is applied to.
type Length struct {
	Value   float64
	Percent bool
}

// Px returns an absolute length.
func Px(v float64) Length {
	return Length{Value: v}
}

// Pct returns a length relative to the owning rect's size.
func Pct(v float64) Length {
	return Length{Value: v, Percent: true}
}

// Resolve returns the absolute value given the owning dimension.
func (l Length) Resolve(size float64) float64 {
	if l.Percent {
		return size * l.Value / 100
	}
	return l.Value
}

func (l Length) String() string {
	s := strconv.FormatFloat(l.Value, 'f', -1, 64)
	if l.Percent {
		return s + "%"
	}
	return s
}

func parseLength(v any) (Length, error) {
	switch val := v.(type) {
	case float64:
		return Px(val), nil
	case int64:
		return Px(float64(val)), nil
	case int:
		return Px(float64(val)), nil
	case string:
		s := strings.TrimSpace(val)
		pct := strings.HasSuffix(s, "%")
		s = strings.TrimSuffix(s, "%")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Length{}, fmt.Errorf("invalid length %q: %w", val, err)
		}
		return Length{Value: f, Percent: pct}, nil
	default:
		return Length{}, fmt.Errorf("invalid length %v (%T)", v, v)
	}
}

// MarshalJSON writes plain numbers for absolute lengths and "N%" strings for
// relative ones.
func (l Length) MarshalJSON() ([]byte, error) {
	if l.Percent {
		return json.Marshal(l.String())
	}
	return json.Marshal(l.Value)
}

// UnmarshalJSON accepts a number or a "N%" string.
func (l *Length) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := parseLength(raw)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (l *Length) UnmarshalTOML(v any) error {
	parsed, err := parseLength(v)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Offset is an [x, y] displacement.
type Offset struct {
	X, Y Length
}

// XY returns an absolute offset.
func XY(x, y float64) Offset {
	return Offset{X: Px(x), Y: Px(y)}
}

// IsZero reports whether both components are zero.
func (o Offset) IsZero() bool {
	return o.X.Value == 0 && o.Y.Value == 0
}

func parseOffset(v any) (Offset, error) {
	items, ok := v.([]any)
	if !ok {
		return Offset{}, fmt.Errorf("offset must be a two element array, got %T", v)
	}
	if len(items) == 0 {
		return Offset{}, nil
	}
	if len(items) > 2 {
		return Offset{}, fmt.Errorf("offset must have at most two elements, got %d", len(items))
	}
	var o Offset
	var err error
	if o.X, err = parseLength(items[0]); err != nil {
		return Offset{}, err
	}
	if len(items) == 2 {
		if o.Y, err = parseLength(items[1]); err != nil {
			return Offset{}, err
		}
	}
	return o, nil
}

// MarshalJSON writes the offset as a two element array.
func (o Offset) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]Length{o.X, o.Y})
}

// UnmarshalJSON reads a one or two element array.
func (o *Offset) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := parseOffset(raw)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (o *Offset) UnmarshalTOML(v any) error {
	parsed, err := parseOffset(v)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Shift enables translating the popup into the region without flipping.
// Margin is how far the target may travel out of the region before the popup
// stops hugging the edge and follows it.
type Shift struct {
	Enabled bool
	Margin  float64
}

func parseShift(v any) (Shift, error) {
	switch val := v.(type) {
	case bool:
		return Shift{Enabled: val}, nil
	case float64:
		return Shift{Enabled: val >= 0, Margin: val}, nil
	case int64:
		return Shift{Enabled: val >= 0, Margin: float64(val)}, nil
	case nil:
		return Shift{}, nil
	default:
		return Shift{}, fmt.Errorf("shift must be a bool or a number, got %T", v)
	}
}

// MarshalJSON writes a bool, or the margin when one is set.
func (s Shift) MarshalJSON() ([]byte, error) {
	if s.Enabled && s.Margin != 0 {
		return json.Marshal(s.Margin)
	}
	return json.Marshal(s.Enabled)
}

// UnmarshalJSON accepts a bool or a margin.
func (s *Shift) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := parseShift(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (s *Shift) UnmarshalTOML(v any) error {
	parsed, err := parseShift(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
