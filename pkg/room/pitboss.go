package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"shed-server/internal/rng"
	"shed-server/pkg/notify"
	"shed-server/pkg/playable/shed"
	"shed-server/pkg/store"

	"github.com/sirupsen/logrus"
)

// eventBuffer is how many events may wait for delivery before new ones are dropped
const eventBuffer = 1024

// Options configure a PitBoss
type Options struct {
	Rules shed.Options
	// BotDelay is the pause before each bot turn
	BotDelay time.Duration
	// IdleTimeout is how long a dealer waits for work before it is retired; zero keeps dealers forever
	IdleTimeout time.Duration
	// Generator shuffles new games; defaults to rng.Crypto
	Generator rng.Generator
	Logger    logrus.FieldLogger
}

type clientEvent struct {
	client    *Client
	connected bool
}

// PitBoss is responsible for dispatching work to the dealer of each game
type PitBoss struct {
	store    store.Store
	notifier notify.Notifier
	options  Options
	logger   logrus.FieldLogger

	lock       sync.Mutex
	dealers    map[string]*Dealer
	botPending map[string]bool

	// clientEvents carries connects and disconnects in the order they happened
	clientEvents chan clientEvent

	events    chan notify.Event
	close     chan bool
	closeOnce sync.Once
}

// NewPitBoss returns a new dispatch object
// Events go to n and to the websocket clients watching the game.
func NewPitBoss(st store.Store, n notify.Notifier, opts Options) *PitBoss {
	if opts.Generator == nil {
		opts.Generator = rng.Crypto{}
	}

	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	p := &PitBoss{
		store:        st,
		options:      opts,
		logger:       opts.Logger,
		dealers:      make(map[string]*Dealer),
		botPending:   make(map[string]bool),
		clientEvents: make(chan clientEvent, 512),
		events:       make(chan notify.Event, eventBuffer),
		close:        make(chan bool),
	}

	if n == nil {
		p.notifier = p
	} else {
		p.notifier = notify.Multi{n, p}
	}

	return p
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

// shutdownReason is sent to websocket clients when the server stops
const shutdownReason = "server is shutting down"

// EndShift stops the run loop and every dealer
// Connected clients are asked to close.
// Scheduled bot turns that fire afterwards do nothing.
func (p *PitBoss) EndShift() {
	p.closeOnce.Do(func() {
		close(p.close)

		p.lock.Lock()
		defer p.lock.Unlock()

		for gameID, dealer := range p.dealers {
			for _, client := range dealer.Clients() {
				client.Kick(shutdownReason)
			}

			delete(p.dealers, gameID)
			dealer.EndShift()
		}
	})
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case ce := <-p.clientEvents:
			log := p.logger.WithField("client", ce.client.String())
			if ce.connected {
				log.Debug("client connected")
				p.attach(ce.client)
				p.sendState(context.Background(), ce.client, "")
			} else {
				p.detach(ce.client)
				log.WithError(ce.client.CloseError).Debug("client disconnected")
			}
		case event := <-p.events:
			p.notifier.Notify(context.Background(), event)
		case <-p.close:
			return
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.clientEvents <- clientEvent{client: client, connected: true}
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.clientEvents <- clientEvent{client: client}
}

// dealer returns the running dealer for the game, starting one if needed
func (p *PitBoss) dealer(gameID string) *Dealer {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.dealerLocked(gameID)
}

// attach adds the client to its game's dealer; the dealer cannot retire in between
func (p *PitBoss) attach(client *Client) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.dealerLocked(client.gameID).AddClient(client)
}

// detach removes the client from whichever dealer holds it
func (p *PitBoss) detach(client *Client) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if d, found := p.dealers[client.gameID]; found {
		d.RemoveClient(client)
	}
}

func (p *PitBoss) dealerLocked(gameID string) *Dealer {
	d, found := p.dealers[gameID]
	if !found {
		d = NewDealer(p, gameID)
		d.StartShift(p.options.IdleTimeout)
		p.dealers[gameID] = d
	}

	return d
}

// retire removes an idle dealer without clients
// It must only be called from the dealer's run loop.
func (p *PitBoss) retire(d *Dealer) bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.dealers[d.gameID] != d || d.hasClients() {
		return false
	}

	delete(p.dealers, d.gameID)
	d.EndShift()
	return true
}

// dealerCount returns the number of running dealers
func (p *PitBoss) dealerCount() int {
	p.lock.Lock()
	defer p.lock.Unlock()

	return len(p.dealers)
}

// do runs fn inside the game's dealer so no other mutation of the game runs at the same time
func (p *PitBoss) do(ctx context.Context, gameID string, fn func() error) error {
	for {
		d := p.dealer(gameID)

		var err error
		execErr := d.exec(ctx, func() {
			err = fn()
		})

		if errors.Is(execErr, errDealerClosed) {
			select {
			case <-p.close:
				return execErr
			default:
				continue
			}
		}

		if execErr != nil {
			return execErr
		}

		return err
	}
}

// publish queues an event for delivery outside of the game's dealer
func (p *PitBoss) publish(event notify.Event) {
	if event.Time.IsZero() {
		event.Time = time.Now()
	}

	select {
	case p.events <- event:
	default:
		p.logger.WithFields(logrus.Fields{
			"gameID": event.GameID,
			"type":   event.Type,
		}).Warn("event buffer is full, dropping event")
	}
}

// Notify sends the event and each client's view of the game to the clients watching it
func (p *PitBoss) Notify(ctx context.Context, event notify.Event) {
	p.lock.Lock()
	d, found := p.dealers[event.GameID]
	p.lock.Unlock()

	if !found {
		return
	}

	clients := d.Clients()
	if len(clients) == 0 {
		return
	}

	state, err := p.store.View(ctx, event.GameID)
	if err != nil {
		p.logger.WithError(err).WithField("gameID", event.GameID).Error("could not load game for clients")
		return
	}

	for _, client := range clients {
		client.Send(eventResponse(event))
		if event.Type != notify.EventStateChanged {
			continue
		}

		if player := state.PlayerByUserID(client.userID); player != nil {
			if view, err := shed.NewPlayerView(state, player.ID); err == nil {
				client.Send(stateResponse(view, ""))
			}
		}
	}
}
