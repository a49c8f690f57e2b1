package mood

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReading(t *testing.T) {
	tests := []struct {
		in      string
		weather string
		temp    *float64
	}{
		{"rainy 12", "rainy", Temp(12)},
		{"hot, 34C", "hot", Temp(34)},
		{"hot 31.5°C", "hot", Temp(31.5)},
		{"cold -3c", "cold", Temp(-3)},
		{"sunny", "sunny", nil},
		{"foggy and 8°", "foggy", Temp(8)},
		{"windy gusty", "windy", nil},
		{"Rainy 10", "Rainy", Temp(10)},
		{"", "", nil},
		{"   ", "", nil},
	}

	for _, tt := range tests {
		weather, temp := ParseReading(tt.in)
		assert.Equal(t, tt.weather, weather, "input %q", tt.in)
		if tt.temp == nil {
			assert.Nil(t, temp, "input %q", tt.in)
			continue
		}
		require.NotNil(t, temp, "input %q", tt.in)
		assert.Equal(t, *tt.temp, *temp, "input %q", tt.in)
	}
}

func TestParseReadingFeedsTip(t *testing.T) {
	weather, temp := ParseReading("rainy 10")
	assert.Equal(t, "Try indoor breathing + a warm drink.", Tip(weather, temp))

	weather, temp = ParseReading("hot 30")
	assert.Equal(t, "Wear light clothes and stay hydrated.", Tip(weather, temp))
}

func TestParseCelsius(t *testing.T) {
	accept := map[string]float64{
		"12":    12,
		"-3.5":  -3.5,
		"34C":   34,
		"12°C":  12,
		"8°":    8,
		" 21c ": 21,
	}
	for in, want := range accept {
		v, ok := ParseCelsius(in)
		require.True(t, ok, "input %q", in)
		assert.Equal(t, want, v, "input %q", in)
	}

	for _, in := range []string{"", "C", "°", "warm", "NaN", "nan", "Inf", "-inf", "12F"} {
		_, ok := ParseCelsius(in)
		assert.False(t, ok, "input %q", in)
	}
}
