package tmx

import "github.com/eak1mov/go-libtmx/tmx/spec"

// Properties holds the custom properties of a map entity. Values are kept
// as written; the getters coerce them the same way attributes are coerced.
type Properties map[string]string

func (p Properties) GetString(name string) string {
	return p[name]
}

func (p Properties) GetInt(name string, def int) int {
	return spec.Attributes(p).Int(name, def)
}

func (p Properties) GetFloat(name string, def float64) float64 {
	return spec.Attributes(p).Float(name, def)
}

func (p Properties) GetBool(name string, def bool) bool {
	return spec.Attributes(p).Bool(name, def)
}
