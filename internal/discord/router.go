package discord

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/moorebrett0/moodcast/internal/brain"
	"github.com/moorebrett0/moodcast/internal/mood"
	"github.com/moorebrett0/moodcast/internal/observability"
)

// Report is the most recent weather reading someone gave in the channel.
type Report struct {
	Weather string
	TempC   *float64
	At      time.Time
}

// chat is the part of the bot the router needs for channel messages.
type chat interface {
	SendMessage(channelID, text string)
	IsMentioned(m *discordgo.MessageCreate) bool
	StripMention(text string) string
}

// asker answers a free-form message. *brain.Brain satisfies it.
type asker interface {
	Ask(ctx context.Context, userMessage string) (string, error)
}

// Router dispatches Discord messages and slash commands.
type Router struct {
	bot   *Bot
	chat  chat
	brain asker // nil if AI is disabled

	mu         sync.Mutex
	lastReport Report
	hasReport  bool
}

// NewRouter creates a router and wires it to the bot. b may be nil.
func NewRouter(bot *Bot, b *brain.Brain) *Router {
	r := &Router{
		bot:  bot,
		chat: bot,
	}
	// A nil *Brain must stay a nil interface
	if b != nil {
		r.brain = b
	}
	bot.SetRouter(r)
	return r
}

// LastReport returns the latest reading seen in the channel.
func (r *Router) LastReport() (Report, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastReport, r.hasReport
}

func (r *Router) record(weather string, tempC *float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastReport = Report{Weather: weather, TempC: tempC, At: time.Now()}
	r.hasReport = true
}

// HandleInteraction dispatches a slash command interaction.
func (r *Router) HandleInteraction(i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()

	switch data.Name {
	case "tip":
		weather, temp := tipOptions(data.Options)
		observability.RecordTip(weather, observability.SourceDiscord)
		if mood.Known(weather) {
			r.record(weather, temp)
		}
		r.respondEmbed(i, TipEmbed(weather, temp))

	case "conditions":
		r.respond(i, TemplateConditions())

	case "help":
		r.respond(i, TemplateHelp())

	default:
		r.respond(i, "Unknown command.")
	}
}

// HandleMessage dispatches a free-form channel message.
func (r *Router) HandleMessage(m *discordgo.MessageCreate) {
	text := strings.TrimSpace(m.Content)
	if text == "" || m.Author.Bot {
		return
	}

	if r.chat.IsMentioned(m) {
		text = r.chat.StripMention(text)
		if text == "" {
			r.chat.SendMessage(m.ChannelID, TemplateGreeting())
			return
		}
		r.handleDirectMessage(m, text)
		return
	}

	// Not mentioned: only answer messages that lead with a known label.
	weather, temp, ok := readingFromText(text)
	if !ok {
		return
	}
	r.replyTip(m.ChannelID, weather, temp)
}

// handleDirectMessage handles a message where the bot was @mentioned.
func (r *Router) handleDirectMessage(m *discordgo.MessageCreate, text string) {
	weather, temp, known := readingFromText(text)

	if r.brain == nil {
		r.replyTip(m.ChannelID, weather, temp)
		return
	}

	if known {
		r.record(weather, temp)
	}
	resp, err := r.brain.Ask(context.Background(), text)
	if err != nil || resp == "" {
		slog.Error("router: brain error", "err", err)
		r.replyTip(m.ChannelID, weather, temp)
		return
	}
	r.chat.SendMessage(m.ChannelID, resp)
}

func (r *Router) replyTip(channelID, weather string, temp *float64) {
	observability.RecordTip(weather, observability.SourceDiscord)
	if mood.Known(weather) {
		r.record(weather, temp)
	}
	r.chat.SendMessage(channelID, TemplateTip(weather, temp))
}

// readingFromText lowercases chat text and parses it. ok reports whether
// the leading word is a known label.
func readingFromText(text string) (weather string, tempC *float64, ok bool) {
	weather, tempC = mood.ParseReading(strings.ToLower(text))
	return weather, tempC, mood.Known(weather)
}

// tipOptions reads the /tip command options. A missing temp option means unknown.
func tipOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) (weather string, tempC *float64) {
	for _, opt := range opts {
		switch opt.Name {
		case "weather":
			weather = opt.StringValue()
		case "temp":
			v := opt.FloatValue()
			tempC = &v
		}
	}
	return weather, tempC
}

// --- Interaction response helpers ---

func (r *Router) respond(i *discordgo.InteractionCreate, content string) {
	err := r.bot.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	if err != nil {
		slog.Error("discord: respond failed", "err", err)
	}
}

func (r *Router) respondEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := r.bot.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		slog.Error("discord: respond embed failed", "err", err)
	}
}
