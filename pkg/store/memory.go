package store

import (
	"context"
	"sync"
	"time"

	"shed-server/pkg/model"
)

type memoryGame struct {
	lock  sync.Mutex
	state *model.State
}

// Memory is an in-process Store
// Each game has its own lock; games never contend with each other.
type Memory struct {
	lock    sync.RWMutex
	games   map[string]*memoryGame
	invites map[string]string
}

// NewMemory returns an empty memory store
func NewMemory() *Memory {
	return &Memory{
		games:   make(map[string]*memoryGame),
		invites: make(map[string]string),
	}
}

// Create saves the state
func (m *Memory) Create(ctx context.Context, state *model.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.invites[state.Game.InviteCode]; ok {
		return ErrDuplicateInviteCode
	}

	m.invites[state.Game.InviteCode] = state.Game.ID
	m.games[state.Game.ID] = &memoryGame{state: state.Clone()}
	return nil
}

func (m *Memory) game(gameID string) (*memoryGame, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	g, ok := m.games[gameID]
	if !ok {
		return nil, model.ErrGameNotFound
	}

	return g, nil
}

// View returns a copy of the game
func (m *Memory) View(ctx context.Context, gameID string) (*model.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g, err := m.game(gameID)
	if err != nil {
		return nil, err
	}

	g.lock.Lock()
	defer g.lock.Unlock()

	return g.state.Clone(), nil
}

// Update runs fn against a copy of the game and keeps the copy only if fn succeeds
func (m *Memory) Update(ctx context.Context, gameID string, fn func(state *model.State) error) error {
	g, err := m.game(gameID)
	if err != nil {
		return err
	}

	g.lock.Lock()
	defer g.lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	working := g.state.Clone()
	if err := fn(working); err != nil {
		return err
	}

	working.Game.Updated = time.Now()
	g.state = working
	return nil
}

// GameIDByInviteCode returns the game ID for an invite code
func (m *Memory) GameIDByInviteCode(ctx context.Context, inviteCode string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.lock.RLock()
	defer m.lock.RUnlock()

	id, ok := m.invites[inviteCode]
	if !ok {
		return "", model.ErrGameNotFound
	}

	return id, nil
}
