package proactive

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/moorebrett0/moodcast/internal/discord"
	"github.com/moorebrett0/moodcast/internal/mood"
	"github.com/moorebrett0/moodcast/internal/observability"
)

// MessageSender can send messages and update presence.
type MessageSender interface {
	SendMessage(channelID, text string)
	UpdatePresence(r discord.Report, ok bool)
	ChannelID() string
}

// ReportSource provides the last weather reading seen in the channel.
type ReportSource interface {
	LastReport() (discord.Report, bool)
}

// Scheduler posts the morning check-in and keeps presence in sync with the last report.
type Scheduler struct {
	sender  MessageSender
	reports ReportSource

	checkInterval time.Duration
	morningHour   int

	mu           sync.Mutex
	lastMorning  time.Time
	lastPresence time.Time
	presenceSet  bool
}

// Config for the proactive scheduler.
type Config struct {
	CheckInterval time.Duration
	MorningHour   int
}

// New creates a proactive scheduler.
func New(sender MessageSender, reports ReportSource, cfg Config) *Scheduler {
	return &Scheduler{
		sender:        sender,
		reports:       reports,
		checkInterval: cfg.CheckInterval,
		morningHour:   cfg.MorningHour,
	}
}

// Run starts the tick loop. Blocks until context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			s.check(t)
		}
	}
}

func (s *Scheduler) check(now time.Time) {
	report, ok := s.reports.LastReport()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Presence follows the newest report
	if !s.presenceSet || (ok && report.At.After(s.lastPresence)) {
		s.presenceSet = true
		s.lastPresence = report.At
		s.sender.UpdatePresence(report, ok)
	}

	channelID := s.sender.ChannelID()
	if channelID == "" {
		return
	}

	if now.Hour() == s.morningHour && now.Sub(s.lastMorning) > 20*time.Hour {
		s.lastMorning = now
		if ok {
			observability.RecordTip(report.Weather, observability.SourceProactive)
		}
		slog.Info("proactive: morning check-in", "reported", ok, "known", ok && mood.Known(report.Weather))
		s.sender.SendMessage(channelID, discord.TemplateMorningCheckIn(report, ok))
	}
}
