package conditions

import "github.com/moorebrett0/moodcast/internal/mood"

// Condition is display metadata for a weather label.
type Condition struct {
	Label       mood.Label
	Name        string
	Emoji       string
	Description string
	Color       int // Discord embed color
}

// Unknown is shown for labels with no entry.
var Unknown = &Condition{
	Label:       "",
	Name:        "Unknown",
	Emoji:       "\U0001F914",
	Description: "Not a condition I recognize",
	Color:       0x5865F2,
}

// Registry holds all known conditions keyed by label.
var Registry = map[mood.Label]*Condition{
	mood.Rainy:        {mood.Rainy, "Rainy", "\U0001F327️", "Steady rain", 0x3B88C3},
	mood.Sunny:        {mood.Sunny, "Sunny", "☀️", "Bright and sunny", 0xFEE75C},
	mood.Cloudy:       {mood.Cloudy, "Cloudy", "☁️", "Mostly cloudy", 0x99AAB5},
	mood.Cold:         {mood.Cold, "Cold", "\U0001F976", "Chilly out", 0x5DADEC},
	mood.Hot:          {mood.Hot, "Hot", "\U0001F975", "Hot and bright", 0xED4245},
	mood.Stormy:       {mood.Stormy, "Stormy", "\U0001F32A️", "Stormy weather", 0x4E5058},
	mood.Windy:        {mood.Windy, "Windy", "\U0001F4A8", "Strong wind", 0xA5B4C4},
	mood.Foggy:        {mood.Foggy, "Foggy", "\U0001F32B️", "Low visibility", 0xB9BBBE},
	mood.Humid:        {mood.Humid, "Humid", "\U0001F4A7", "Sticky and humid", 0x57F287},
	mood.Snowy:        {mood.Snowy, "Snowy", "\U0001F328️", "Snowing", 0xFFFFFF},
	mood.Hail:         {mood.Hail, "Hail", "\U0001F9CA", "Hail showers", 0xD1E8F0},
	mood.Thunderstorm: {mood.Thunderstorm, "Thunderstorm", "⛈️", "Thunder and lightning", 0x23272A},
	mood.Drizzle:      {mood.Drizzle, "Drizzle", "\U0001F326️", "Light drizzle", 0x7FB3D5},
	mood.Clear:        {mood.Clear, "Clear", "\U0001F324️", "Clear skies", 0x5865F2},
	mood.Overcast:     {mood.Overcast, "Overcast", "\U0001F325️", "Grey overcast", 0x80848E},
	mood.Blizzard:     {mood.Blizzard, "Blizzard", "❄️", "Heavy snow and wind", 0xE3F2FD},
	mood.Sleet:        {mood.Sleet, "Sleet", "\U0001F328️", "Icy sleet", 0xAED6F1},
}

// OrderedLabels defines display order for pickers and listings.
var OrderedLabels = mood.Labels()

// Lookup returns the entry for a label, or Unknown.
func Lookup(label string) *Condition {
	if c, ok := Registry[mood.Label(label)]; ok {
		return c
	}
	return Unknown
}
