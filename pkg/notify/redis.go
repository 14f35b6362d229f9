package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// lastEventTTL is how long the most recent event of a game is kept
const lastEventTTL = 24 * time.Hour

// Redis publishes events on a channel per game
// The most recent event is also stored so late subscribers can catch up.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to redis
// addr is either host:port or a redis:// URL.
func NewRedis(ctx context.Context, addr string, db int, prefix string) (*Redis, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		var err error
		if opts, err = redis.ParseURL(addr); err != nil {
			return nil, fmt.Errorf("could not parse redis url: %w", err)
		}
	} else {
		opts = &redis.Options{
			Addr: addr,
			DB:   db,
		}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	return &Redis{client: client, prefix: prefix}, nil
}

// Channel returns the channel events for the game are published on
func (r *Redis) Channel(gameID string) string {
	return fmt.Sprintf("%sgame.%s", r.prefix, gameID)
}

// ErrNoEvent is returned when no event is stored for the game
var ErrNoEvent = errors.New("no event stored for the game")

// LastEvent returns the most recent event stored for the game
func (r *Redis) LastEvent(ctx context.Context, gameID string) (*Event, error) {
	b, err := r.client.Get(ctx, r.Channel(gameID)+".last").Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoEvent
		}

		return nil, err
	}

	var event Event
	if err := json.Unmarshal(b, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// Subscribe listens to the game's channel
// The caller must close the returned subscription.
func (r *Redis) Subscribe(ctx context.Context, gameID string) *redis.PubSub {
	return r.client.Subscribe(ctx, r.Channel(gameID))
}

// Watch calls fn with the game's last event, if any, and then with every event published until ctx is done
// The subscription is confirmed before the last event is read, so nothing in between is lost.
func (r *Redis) Watch(ctx context.Context, gameID string, fn func(event Event)) error {
	sub := r.Subscribe(ctx, gameID)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	last, err := r.LastEvent(ctx, gameID)
	switch {
	case err == nil:
		fn(*last)
	case !errors.Is(err, ErrNoEvent):
		return err
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logrus.WithError(err).WithField("channel", msg.Channel).Warn("could not decode event")
				continue
			}

			fn(event)
		}
	}
}

// Notify publishes the event; failures are logged
func (r *Redis) Notify(ctx context.Context, event Event) {
	logger := logrus.WithFields(logrus.Fields{
		"gameID": event.GameID,
		"type":   event.Type,
	})

	b, err := json.Marshal(event)
	if err != nil {
		logger.WithError(err).Error("could not encode event")
		return
	}

	channel := r.Channel(event.GameID)
	if err := r.client.Publish(ctx, channel, b).Err(); err != nil {
		logger.WithError(err).Warn("could not publish event")
		return
	}

	if err := r.client.Set(ctx, channel+".last", b, lastEventTTL).Err(); err != nil {
		logger.WithError(err).Warn("could not store event")
	}
}

// Close closes the connection
func (r *Redis) Close() error {
	return r.client.Close()
}
