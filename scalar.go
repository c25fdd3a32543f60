package bellande

import (
	"math"
	"strconv"
	"strings"
)

// parseScalar converts one trimmed token into a scalar Value. It is
// total: anything unrecognized falls back to String. Recognition
// order is bool, null, quoted string, integer, float.
func parseScalar(token string) Value {
	if strings.EqualFold(token, "true") {
		return Bool(true)
	}
	if strings.EqualFold(token, "false") {
		return Bool(false)
	}
	if strings.EqualFold(token, "null") {
		return Null{}
	}
	if len(token) >= 2 && strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`) {
		// one outer pair stripped, interior verbatim, no escapes
		return String(token[1 : len(token)-1])
	}
	if i, err := strconv.ParseInt(token, 10, 64); err == nil {
		return Integer(i)
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		// "inf" and "nan" stay strings: NaN is never Equal to
		// itself and neither survives a round trip
		return Float(f)
	}
	return String(token)
}

// formatScalar renders a scalar in its canonical inline form, the
// inverse of parseScalar.
func formatScalar(v Value) string {
	switch s := v.(type) {
	case String:
		if needsQuote(string(s)) {
			return `"` + string(s) + `"`
		}
		return string(s)
	case Integer:
		return strconv.FormatInt(int64(s), 10)
	case Float:
		text := strconv.FormatFloat(float64(s), 'g', -1, 64)
		if _, err := strconv.ParseInt(text, 10, 64); err == nil {
			// bare "5" would re-parse as an Integer
			text += ".0"
		}
		return text
	case Bool:
		if s {
			return "true"
		}
		return "false"
	case Null:
		return "null"
	default:
		panic("formatScalar called with a container")
	}
}

// needsQuote reports whether s must be quoted for the parser to read
// it back as exactly this string. Quoting is loss-free because the
// parser strips one outer quote pair and keeps the interior verbatim.
func needsQuote(s string) bool {
	if s == "" || s != strings.TrimSpace(s) || strings.HasPrefix(s, `"`) {
		return true
	}
	if strings.ContainsAny(s, " :") {
		return true
	}
	_, isString := parseScalar(s).(String)
	return !isString
}
