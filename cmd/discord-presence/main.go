// Command discord-presence announces a Rich Presence activity from the
// command line until interrupted.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/presenced/discord-ipc-go/client"
)

var cli struct {
	AppID string `arg:"" help:"Discord application id."`

	State      string `help:"Activity state line." default:"Hello from Go"`
	Details    string `help:"Activity details line."`
	LargeImage string `help:"Large image asset key."`
	LargeText  string `help:"Large image hover text."`

	Refresh  time.Duration `help:"Interval between liveness checks." default:"30s"`
	LogLevel string        `help:"Log level." enum:"debug,info,warn,error" default:"info"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("discord-presence"),
		kong.Description("Announce a Discord Rich Presence activity."),
	)

	kctx.FatalIfErrorf(run())
}

func run() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cli.LogLevel)); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.NewWithOptions(cli.AppID, client.Options{Logger: logger})

	if err := c.ConnectWithRetry(ctx); err != nil {
		return err
	}

	defer func() {
		_ = c.Close() //nolint:errcheck
	}()

	activity := client.Activity{
		State:   cli.State,
		Details: cli.Details,
		Timestamps: &client.Timestamps{
			Start: time.Now().Unix(),
		},
	}

	if cli.LargeImage != "" {
		activity.Assets = &client.Assets{
			LargeImage: cli.LargeImage,
			LargeText:  cli.LargeText,
		}
	}

	if err := c.SetActivity(activity); err != nil {
		return err
	}

	logger.Info("presence set", "state", cli.State)

	ticker := time.NewTicker(cli.Refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return c.ClearActivity()
		case <-ticker.C:
			if c.Connected() {
				continue
			}

			logger.Warn("discord stopped answering, reconnecting")

			if err := c.Reconnect(); err != nil {
				return err
			}

			if err := c.SetActivity(activity); err != nil {
				return err
			}
		}
	}
}
