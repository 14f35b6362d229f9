package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"shed-server/internal/config"
	"shed-server/pkg/notify"

	"github.com/sirupsen/logrus"
)

var gameID = flag.String("game", "", "the game to watch")

// prints the events of a game as JSON lines, starting with the last one stored
func main() {
	flag.Parse()
	if *gameID == "" {
		logrus.Fatal("-game is required")
	}

	cfg := config.Instance().Redis
	if cfg.Addr == "" {
		logrus.Fatal("redis is not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := notify.NewRedis(ctx, cfg.Addr, cfg.DB, cfg.ChannelPrefix)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to redis")
	}
	defer r.Close()

	enc := json.NewEncoder(os.Stdout)
	err = r.Watch(ctx, *gameID, func(event notify.Event) {
		if err := enc.Encode(event); err != nil {
			logrus.WithError(err).Error("could not write event")
		}
	})

	if err != nil && !errors.Is(err, context.Canceled) {
		logrus.WithError(err).Error("watch stopped")
	}
}
