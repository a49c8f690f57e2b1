package mood

import (
	"math"
	"strconv"
	"strings"
)

// ParseReading pulls a weather label and an optional temperature out of
// free text like "rainy 12", "hot, 34C" or "sunny".
// The first token is the label, kept verbatim. The first later token that
// ParseCelsius accepts is the temperature.
func ParseReading(text string) (weather string, tempC *float64) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ','
	})
	if len(fields) == 0 {
		return "", nil
	}

	weather = fields[0]
	for _, f := range fields[1:] {
		if v, ok := ParseCelsius(f); ok {
			return weather, &v
		}
	}
	return weather, nil
}

// ParseCelsius reads a temperature like "12", "-3.5", "34C" or "8°".
// NaN and infinities are rejected.
func ParseCelsius(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	for _, suffix := range []string{"°C", "°c", "C", "c", "°"} {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSuffix(s, suffix)
			break
		}
	}
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
