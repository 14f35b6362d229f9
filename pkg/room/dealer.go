package room

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Dealer runs every mutation of one game, one at a time
type Dealer struct {
	pitBoss *PitBoss
	gameID  string
	clients map[*Client]bool
	lock    sync.RWMutex

	execInRunLoop chan func()
	close         chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, gameID string) *Dealer {
	return &Dealer{
		pitBoss:       pitBoss,
		gameID:        gameID,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func()),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift(idleTimeout time.Duration) {
	go d.runLoop(idleTimeout)
}

func (d *Dealer) runLoop(idleTimeout time.Duration) {
	log := logrus.WithField("gameID", d.gameID)
	log.Debug("creating dealer run loop")

	var idle <-chan time.Time
	var timer *time.Timer
	if idleTimeout > 0 {
		timer = time.NewTimer(idleTimeout)
		defer timer.Stop()
		idle = timer.C
	}

	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()

			if timer != nil {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(idleTimeout)
			}
		case <-idle:
			if d.pitBoss.retire(d) {
				log.Debug("dealer retired")
				return
			}

			timer.Reset(idleTimeout)
		case <-d.close:
			log.Debug("terminating dealer run loop")
			return
		}
	}
}

// exec runs fn in the run loop and waits for it to finish
// Once fn has been accepted it always runs to completion.
func (d *Dealer) exec(ctx context.Context, fn func()) error {
	done := make(chan bool)
	wrapped := func() {
		defer close(done)
		fn()
	}

	select {
	case <-d.close:
		return errDealerClosed
	default:
	}

	select {
	case d.execInRunLoop <- wrapped:
	case <-d.close:
		return errDealerClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	<-done
	return nil
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.clients[client] = true
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	defer d.lock.Unlock()

	delete(d.clients, client)
	return len(d.clients) == 0
}

// hasClients returns true while a websocket is attached
func (d *Dealer) hasClients() bool {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return len(d.clients) > 0
}

// EndShift is called when the dealer is no longer needed
// The caller must have removed the dealer from the PitBoss
func (d *Dealer) EndShift() {
	close(d.close)
}
