package spec

import (
	"math"
	"strconv"
	"strings"
)

// Attr is one attribute of an element, as delivered by the XML event source.
type Attr struct {
	Name  string
	Value string
}

// Attributes maps attribute names to their raw values.
type Attributes map[string]string

// NewAttributes collects an ordered attribute list; later duplicates win.
func NewAttributes(attrs []Attr) Attributes {
	result := make(Attributes, len(attrs))
	for _, attr := range attrs {
		result[attr.Name] = attr.Value
	}
	return result
}

func (a Attributes) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns the raw value, or "" when the attribute is absent.
func (a Attributes) String(name string) string {
	return a[name]
}

func (a Attributes) Int(name string, def int) int {
	value, ok := a[name]
	if !ok {
		return def
	}
	return ParseInt(value, def)
}

func (a Attributes) Float(name string, def float64) float64 {
	value, ok := a[name]
	if !ok {
		return def
	}
	return ParseFloat(value, def)
}

func (a Attributes) Bool(name string, def bool) bool {
	value, ok := a[name]
	if !ok {
		return def
	}
	return ParseBool(value, def)
}

// ParseInt parses a base-10 integer. A decimal value is truncated toward zero
// ("3.9" is 3). Anything else yields def.
func ParseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if value, err := strconv.Atoi(s); err == nil {
		return value
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return def
	}
	return int(value)
}

func ParseFloat(s string, def float64) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return value
}

// ParseBool accepts the strconv.ParseBool spellings ("1", "true", "0", "false", ...).
func ParseBool(s string, def bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return value
}
