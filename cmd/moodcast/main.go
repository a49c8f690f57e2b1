package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moorebrett0/moodcast/internal/api"
	"github.com/moorebrett0/moodcast/internal/ask"
	"github.com/moorebrett0/moodcast/internal/brain"
	"github.com/moorebrett0/moodcast/internal/config"
	"github.com/moorebrett0/moodcast/internal/discord"
	"github.com/moorebrett0/moodcast/internal/mood"
	"github.com/moorebrett0/moodcast/internal/observability"
	"github.com/moorebrett0/moodcast/internal/proactive"
	httptransport "github.com/moorebrett0/moodcast/internal/transport/http"
)

const usage = `usage:
  moodcast tip <weather> [temp_c]   print the mood tip and exit
  moodcast ask                      pick the weather interactively
  moodcast serve [-config path]     run the HTTP API (and Discord bot if configured)
`

func main() {
	args := os.Args[1:]
	cmd := "serve"
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "tip":
		err = runTip(args)
	case "ask":
		err = runAsk()
	case "serve":
		err = runServe(args)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "moodcast: %v\n", err)
		os.Exit(1)
	}
}

func runTip(args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return errors.New("tip takes <weather> [temp_c]")
	}

	var temp *float64
	if len(args) == 2 {
		v, ok := mood.ParseCelsius(args[1])
		if !ok {
			return fmt.Errorf("temp_c %q is not a number", args[1])
		}
		temp = &v
	}

	observability.RecordTip(args[0], observability.SourceCLI)
	fmt.Println(mood.Tip(args[0], temp))
	return nil
}

func runAsk() error {
	res, err := ask.New(os.Stdin, os.Stdout, 30*time.Millisecond).Run()
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}
	observability.RecordTip(res.Weather, observability.SourceCLI)
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	api.NewHandler().RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTP.Address,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}, mux)

	var wg sync.WaitGroup

	if cfg.DiscordEnabled() {
		bot, err := discord.NewBot(cfg.Discord.BotToken, cfg.Discord.ChannelID)
		if err != nil {
			return err
		}

		b := brain.New(ctx, brain.Config{
			ClaudeAPIKey:    cfg.Claude.APIKey,
			ClaudeModel:     cfg.Claude.Model,
			ClaudeMaxTokens: cfg.Claude.MaxTokens,
			GeminiAPIKey:    cfg.Gemini.APIKey,
			GeminiModel:     cfg.Gemini.Model,
			GeminiMaxTokens: cfg.Gemini.MaxTokens,
			Provider:        cfg.AI.Provider,
			MaxTools:        cfg.AI.MaxTools,
			RateLimit:       cfg.AI.RateLimit,
			RateWindow:      cfg.AI.RateWindow,
		})
		router := discord.NewRouter(bot, b)

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := bot.Start(ctx); err != nil {
				slog.Error("discord: stopped", "err", err)
				stop()
			}
		}()

		if cfg.Proactive.Enabled {
			sched := proactive.New(bot, router, proactive.Config{
				CheckInterval: cfg.Proactive.CheckInterval,
				MorningHour:   cfg.Proactive.MorningHour,
			})
			wg.Add(1)
			go func() {
				defer wg.Done()
				sched.Run(ctx)
			}()
		}
	} else {
		slog.Info("discord: no bot token configured, bot disabled")
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http: listening", "addr", cfg.HTTP.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		stop()
		wg.Wait()
		return fmt.Errorf("http server: %w", err)
	}

	slog.Info("moodcast: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http: graceful shutdown failed", "err", err)
	}

	wg.Wait()
	return nil
}
