package mood

// Label is a weather-condition tag. Any string is a valid Label; only the
// constants below have a specific rule.
type Label string

const (
	Rainy        Label = "rainy"
	Sunny        Label = "sunny"
	Cloudy       Label = "cloudy"
	Cold         Label = "cold"
	Hot          Label = "hot"
	Stormy       Label = "stormy"
	Windy        Label = "windy"
	Foggy        Label = "foggy"
	Humid        Label = "humid"
	Snowy        Label = "snowy"
	Hail         Label = "hail"
	Thunderstorm Label = "thunderstorm"
	Drizzle      Label = "drizzle"
	Clear        Label = "clear"
	Overcast     Label = "overcast"
	Blizzard     Label = "blizzard"
	Sleet        Label = "sleet"
)

// Default is returned when no rule matches.
const Default = "Check in with yourself and do something comforting."

// rule is one entry of the ordered tip table. A nil guard always matches.
type rule struct {
	label Label
	guard func(tempC *float64) bool
	tip   string
}

// rules are evaluated top to bottom; the first match wins.
// Guarded variants must stay above the unguarded rule for the same label.
var rules = []rule{
	{Rainy, below(15), "Try indoor breathing + a warm drink."},
	{Rainy, nil, "Listen to calming music indoors."},
	{Sunny, nil, "10-min walk to lift your mood."},
	{Cloudy, nil, "Read a favorite book or call a friend."},
	{Cold, nil, "Stretch gently for 5 minutes."},
	{Hot, above(30), "Drink water and rest in shade."},
	{Hot, nil, "Wear light clothes and stay hydrated."},
	{Stormy, nil, "Practice deep breathing and stay safe indoors."},
	{Windy, nil, "Enjoy indoor hobbies or games."},
	{Foggy, nil, "Mindful meditation for clarity."},
	{Humid, nil, "Take cool showers and drink fluids."},
	{Snowy, nil, "Warm up with gentle yoga indoors."},
	{Hail, nil, "Stay inside and listen to relaxing sounds."},
	{Thunderstorm, nil, "Stay safe, read or journal."},
	{Drizzle, nil, "Light stretching at home."},
	{Clear, nil, "Step outside for a fresh air break."},
	{Overcast, nil, "Try a creative activity indoors."},
	{Blizzard, nil, "Bundle up and watch a comforting movie."},
	{Sleet, nil, "Enjoy a hot beverage and relax."},
}

// Tip returns the wellness suggestion for a weather label and an optional
// temperature in °C (nil means unknown).
// Matching is exact and case-sensitive: "Rainy" gets the default.
func Tip(weather string, tempC *float64) string {
	for _, r := range rules {
		if string(r.label) != weather {
			continue
		}
		if r.guard != nil && !r.guard(tempC) {
			continue
		}
		return r.tip
	}
	return Default
}

// Known reports whether weather has a specific rule.
func Known(weather string) bool {
	for _, r := range rules {
		if string(r.label) == weather {
			return true
		}
	}
	return false
}

// Labels returns the vocabulary in rule order, without duplicates.
func Labels() []Label {
	out := make([]Label, 0, len(rules))
	seen := make(map[Label]bool, len(rules))
	for _, r := range rules {
		if seen[r.label] {
			continue
		}
		seen[r.label] = true
		out = append(out, r.label)
	}
	return out
}

// Temp wraps a reading for Tip.
func Temp(c float64) *float64 {
	return &c
}

func below(limit float64) func(*float64) bool {
	return func(t *float64) bool { return t != nil && *t < limit }
}

func above(limit float64) func(*float64) bool {
	return func(t *float64) bool { return t != nil && *t > limit }
}
