package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/moorebrett0/moodcast/internal/conditions"
	"github.com/moorebrett0/moodcast/internal/mood"
)

// formatTemp renders an optional reading like "12°C" or "" when unknown.
func formatTemp(tempC *float64) string {
	if tempC == nil {
		return ""
	}
	return strconv.FormatFloat(*tempC, 'f', -1, 64) + "°C"
}

// describeReading renders "rainy, 12°C" or just "rainy".
func describeReading(weather string, tempC *float64) string {
	if t := formatTemp(tempC); t != "" {
		return weather + ", " + t
	}
	return weather
}

// TipEmbed builds the embed for /tip.
func TipEmbed(weather string, tempC *float64) *discordgo.MessageEmbed {
	c := conditions.Lookup(weather)
	tip := mood.Tip(weather, tempC)

	title := fmt.Sprintf("%s %s", c.Emoji, c.Name)
	if t := formatTemp(tempC); t != "" {
		title += " | " + t
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: tip,
		Color:       c.Color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: c.Description,
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// TemplateTip is the plain-text reply for free-form messages.
func TemplateTip(weather string, tempC *float64) string {
	c := conditions.Lookup(weather)
	return fmt.Sprintf("%s %s", c.Emoji, mood.Tip(weather, tempC))
}

func TemplateConditions() string {
	var b strings.Builder
	b.WriteString("**Weather I know about**\n")
	for _, label := range conditions.OrderedLabels {
		c := conditions.Lookup(string(label))
		fmt.Fprintf(&b, "%s `%s` %s\n", c.Emoji, c.Label, c.Description)
	}
	b.WriteString("\nAnything else gets a general check-in tip.")
	return b.String()
}

func TemplateHelp() string {
	return "**moodcast commands**\n\n" +
		"`/tip` — Pick the weather (and temperature) for a mood tip\n" +
		"`/conditions` — Weather labels I understand\n" +
		"`/help` — This message\n\n" +
		"Or just type the weather in this channel, like `rainy 12`."
}

func TemplateGreeting() string {
	return "\U0001F44B hey! tell me what it's like outside, like `sunny` or `hot 33`."
}

// TemplateMorningCheckIn is the daily post. ok is false when nothing has been reported yet.
func TemplateMorningCheckIn(r Report, ok bool) string {
	if !ok {
		return "☀️ Good morning! How's the weather where you are? Try `/tip` or just type something like `cloudy 18`."
	}
	c := conditions.Lookup(r.Weather)
	return fmt.Sprintf("☀️ Good morning! Last I heard it was %s %s.\n%s",
		c.Emoji, describeReading(r.Weather, r.TempC), mood.Tip(r.Weather, r.TempC))
}

// presenceFor returns the Discord status and custom activity for a reported condition.
func presenceFor(r Report, ok bool) (status, activity string) {
	if !ok {
		return "online", "waiting for a weather report"
	}
	c := conditions.Lookup(r.Weather)
	status = "online"
	switch mood.Label(r.Weather) {
	case mood.Stormy, mood.Thunderstorm, mood.Blizzard, mood.Hail:
		status = "dnd"
	case mood.Foggy, mood.Overcast, mood.Drizzle:
		status = "idle"
	}
	return status, fmt.Sprintf("%s %s", c.Emoji, describeReading(r.Weather, r.TempC))
}
