package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moorebrett0/moodcast/internal/mood"
)

func TestReadingFromText(t *testing.T) {
	weather, temp, ok := readingFromText("Rainy 10")
	assert.True(t, ok)
	assert.Equal(t, "rainy", weather)
	require.NotNil(t, temp)
	assert.Equal(t, 10.0, *temp)

	_, _, ok = readingFromText("good morning everyone")
	assert.False(t, ok)
}

func TestTipOptions(t *testing.T) {
	opts := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "weather", Type: discordgo.ApplicationCommandOptionString, Value: "hot"},
		{Name: "temp", Type: discordgo.ApplicationCommandOptionNumber, Value: 35.0},
	}
	weather, temp := tipOptions(opts)
	assert.Equal(t, "hot", weather)
	require.NotNil(t, temp)
	assert.Equal(t, "Drink water and rest in shade.", mood.Tip(weather, temp))

	weather, temp = tipOptions(opts[:1])
	assert.Equal(t, "hot", weather)
	assert.Nil(t, temp)
}

func TestStripMention(t *testing.T) {
	assert.Equal(t, "rainy 12", stripMention("<@42> rainy 12", "42"))
	assert.Equal(t, "hot", stripMention("<@!42>   hot", "42"))
	assert.Equal(t, "", stripMention("<@42>", "42"))
}

func TestRouterRecordsLastReport(t *testing.T) {
	r := &Router{}
	_, ok := r.LastReport()
	assert.False(t, ok)

	r.record("sunny", mood.Temp(21))
	rep, ok := r.LastReport()
	require.True(t, ok)
	assert.Equal(t, "sunny", rep.Weather)
	assert.Equal(t, 21.0, *rep.TempC)
	assert.False(t, rep.At.IsZero())
}

func TestCommandsOfferEveryLabel(t *testing.T) {
	cmds := commands()
	require.Len(t, cmds, 3)
	tip := cmds[0]
	assert.Equal(t, "tip", tip.Name)
	require.Len(t, tip.Options, 2)
	choices := tip.Options[0].Choices
	require.Len(t, choices, len(mood.Labels()))
	assert.Equal(t, "rainy", choices[0].Value)
	assert.False(t, tip.Options[1].Required)
}

type sentMessage struct {
	channelID, text string
}

// fakeChat stands in for the bot; a message counts as a mention when it starts with <@42>.
type fakeChat struct {
	sent []sentMessage
}

func (f *fakeChat) SendMessage(channelID, text string) {
	f.sent = append(f.sent, sentMessage{channelID, text})
}

func (f *fakeChat) IsMentioned(m *discordgo.MessageCreate) bool {
	return len(m.Content) >= 5 && m.Content[:5] == "<@42>"
}

func (f *fakeChat) StripMention(text string) string {
	return stripMention(text, "42")
}

type fakeAsker struct {
	reply string
	err   error
	asked []string
}

func (f *fakeAsker) Ask(ctx context.Context, userMessage string) (string, error) {
	f.asked = append(f.asked, userMessage)
	return f.reply, f.err
}

func message(content string, fromBot bool) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ChannelID: "chan",
		Content:   content,
		Author:    &discordgo.User{ID: "7", Bot: fromBot},
	}}
}

func TestHandleMessage(t *testing.T) {
	rainyTip := "Try indoor breathing + a warm drink."

	tests := []struct {
		name       string
		content    string
		fromBot    bool
		brain      *fakeAsker // nil means AI disabled
		wantSent   []string   // substrings, one per message sent
		wantAsked  []string
		wantReport string // "" means LastReport stays empty
	}{
		{
			name:       "known label without mention gets the tip",
			content:    "Rainy 10",
			wantSent:   []string{rainyTip},
			wantReport: "rainy",
		},
		{
			name:    "chatter without mention is ignored",
			content: "good morning everyone",
		},
		{
			name:    "unknown label without mention is ignored",
			content: "sunshine 20",
			brain:   &fakeAsker{reply: "hi"},
		},
		{
			name:    "bot authors are ignored",
			content: "rainy 10",
			fromBot: true,
		},
		{
			name:     "bare mention gets a greeting",
			content:  "<@42>",
			wantSent: []string{"hey!"},
		},
		{
			name:       "mention without AI gets the plain tip",
			content:    "<@42> rainy 10",
			wantSent:   []string{rainyTip},
			wantReport: "rainy",
		},
		{
			name:     "mention of unknown text without AI gets the default tip",
			content:  "<@42> how are you",
			wantSent: []string{mood.Default},
		},
		{
			name:       "mention with AI sends the reply",
			content:    "<@42> hot 35",
			brain:      &fakeAsker{reply: "stay cool!"},
			wantSent:   []string{"stay cool!"},
			wantAsked:  []string{"hot 35"},
			wantReport: "hot",
		},
		{
			name:      "mention with AI about something else leaves the report alone",
			content:   "<@42> tell me a joke",
			brain:     &fakeAsker{reply: "no"},
			wantSent:  []string{"no"},
			wantAsked: []string{"tell me a joke"},
		},
		{
			name:       "brain error falls back to the plain tip",
			content:    "<@42> rainy 10",
			brain:      &fakeAsker{err: errors.New("boom")},
			wantSent:   []string{rainyTip},
			wantAsked:  []string{"rainy 10"},
			wantReport: "rainy",
		},
		{
			name:      "empty brain reply falls back to the plain tip",
			content:   "<@42> what now",
			brain:     &fakeAsker{},
			wantSent:  []string{mood.Default},
			wantAsked: []string{"what now"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeChat{}
			r := &Router{chat: c}
			if tt.brain != nil {
				r.brain = tt.brain
			}

			r.HandleMessage(message(tt.content, tt.fromBot))

			require.Len(t, c.sent, len(tt.wantSent))
			for i, want := range tt.wantSent {
				assert.Equal(t, "chan", c.sent[i].channelID)
				assert.Contains(t, c.sent[i].text, want)
			}

			if tt.brain != nil {
				assert.Equal(t, tt.wantAsked, tt.brain.asked)
			}

			rep, ok := r.LastReport()
			if tt.wantReport == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantReport, rep.Weather)
		})
	}
}

func TestHandleMessageKeepsTemperatureInReport(t *testing.T) {
	r := &Router{chat: &fakeChat{}}
	r.HandleMessage(message("cold -2", false))

	rep, ok := r.LastReport()
	require.True(t, ok)
	require.NotNil(t, rep.TempC)
	assert.Equal(t, -2.0, *rep.TempC)
}
