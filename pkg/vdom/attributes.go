package vdom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Structural attribute keys.
const (
	AttrStyle     = "style"
	AttrClass     = "class"
	AttrClassName = "className"
	AttrOn        = "on"
)

// FormatNumber formats numeric values the way the browser's String() would:
// integers without a decimal point, floats in their shortest form.
func FormatNumber(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.FormatInt(int64(n), 10), true
	case int8:
		return strconv.FormatInt(int64(n), 10), true
	case int16:
		return strconv.FormatInt(int64(n), 10), true
	case int32:
		return strconv.FormatInt(int64(n), 10), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint:
		return strconv.FormatUint(uint64(n), 10), true
	case uint8:
		return strconv.FormatUint(uint64(n), 10), true
	case uint16:
		return strconv.FormatUint(uint64(n), 10), true
	case uint32:
		return strconv.FormatUint(uint64(n), 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float32:
		return formatFloat(float64(n), 32), true
	case float64:
		return formatFloat(n, 64), true
	}
	return "", false
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.Abs(f) >= 1e21:
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// Stringify coerces an attribute value to its string form.
func Stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case Text:
		return string(s)
	case bool:
		return strconv.FormatBool(s)
	case fmt.Stringer:
		return s.String()
	}
	if s, ok := FormatNumber(v); ok {
		return s
	}
	return fmt.Sprint(v)
}

// CSSName converts a camelCase style key to its kebab-case property name.
// Custom properties ("--accent") and names that are already kebab-case are
// returned unchanged.
func CSSName(key string) string {
	if strings.HasPrefix(key, "--") {
		return key
	}
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// StyleEntries normalizes a style attribute value into property/value
// pairs. Accepted forms are Style, map[string]string and map[string]any; nil
// entries in a map[string]any are skipped.
func StyleEntries(v any) (map[string]string, bool) {
	switch s := v.(type) {
	case Style:
		return normalizeStyle(s), true
	case map[string]string:
		return normalizeStyle(s), true
	case map[string]any:
		out := make(map[string]string, len(s))
		for k, val := range s {
			if val == nil {
				continue
			}
			out[CSSName(k)] = Stringify(val)
		}
		return out, true
	}
	return nil, false
}

func normalizeStyle(s map[string]string) map[string]string {
	out := make(map[string]string, len(s))
	for k, v := range s {
		out[CSSName(k)] = v
	}
	return out
}
