package notify

import (
	"context"
	"time"

	"shed-server/pkg/deck"

	"github.com/sirupsen/logrus"
)

// EventType is the kind of change that happened to a game
type EventType string

// EventType constants
const (
	EventStateChanged EventType = "state-changed"
	EventCardPlayed   EventType = "card-played"
	EventGameOver     EventType = "game-over"
)

// Event tells subscribers a game changed and should be fetched again
type Event struct {
	GameID   string     `json:"gameId"`
	Type     EventType  `json:"type"`
	PlayerID string     `json:"playerId,omitempty"`
	Card     *deck.Card `json:"card,omitempty"`
	WinnerID string     `json:"winnerId,omitempty"`
	Time     time.Time  `json:"time"`
}

// Notifier delivers events on a best-effort basis
// Implementations must not block for long and never report failures to the caller.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// Log writes events to a logger
type Log struct {
	Logger logrus.FieldLogger
}

// Notify logs the event at debug level
func (l Log) Notify(_ context.Context, event Event) {
	logger := l.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	logger.WithFields(logrus.Fields{
		"gameID":   event.GameID,
		"type":     event.Type,
		"playerID": event.PlayerID,
	}).Debug("game event")
}

// Multi fans an event out to every notifier in order
type Multi []Notifier

// Notify calls each notifier
func (m Multi) Notify(ctx context.Context, event Event) {
	for _, n := range m {
		n.Notify(ctx, event)
	}
}

// Func adapts a function to a Notifier
type Func func(ctx context.Context, event Event)

// Notify calls f
func (f Func) Notify(ctx context.Context, event Event) {
	f(ctx, event)
}
