package room

import (
	"context"
	"errors"
	"testing"
	"time"

	"shed-server/internal/rng"
	"shed-server/pkg/model"
	"shed-server/pkg/playable/shed"
	"shed-server/pkg/store"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (p *PitBoss) hasClients(gameID string) bool {
	p.lock.Lock()
	d, found := p.dealers[gameID]
	p.lock.Unlock()

	return found && d.hasClients()
}

func (p *PitBoss) isBotPending(gameID string) bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.botPending[gameID]
}

func TestPitBoss_DisconnectBeforeConnectIsHandled(t *testing.T) {
	for i := 0; i < 50; i++ {
		p := NewPitBoss(store.NewMemory(), nil, Options{})

		// both events are queued before the run loop starts
		c := NewClient(nil, "u1", "g")
		p.ClientConnected(c)
		p.ClientDisconnected(c)

		marker := NewClient(nil, "u1", "h")
		p.ClientConnected(marker)
		p.StartShift()

		require.Eventually(t, func() bool {
			return p.hasClients("h")
		}, time.Second, time.Millisecond)

		assert.False(t, p.hasClients("g"), "client leaked on run %d", i)
		p.EndShift()
	}
}

func TestPitBoss_EndShiftKicksClients(t *testing.T) {
	a := assert.New(t)
	p, _, _ := newTestPitBoss(t, Options{BotDelay: time.Hour})

	c := NewClient(nil, "u1", "g")
	p.ClientConnected(c)
	require.Eventually(t, func() bool {
		return p.hasClients("g")
	}, time.Second, time.Millisecond*10)

	p.EndShift()

	select {
	case reason := <-c.Close:
		a.Equal(shutdownReason, reason)
	default:
		a.Fail("client was not kicked")
	}

	c.Kick("first")
	c.Kick("second")
	a.Equal("first", <-c.Close)
}

func TestPitBoss_DisconnectLogsCloseError(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	p, _, _ := newTestPitBoss(t, Options{BotDelay: time.Hour, Logger: logger})

	c := NewClient(nil, "u1", "g")
	p.ClientConnected(c)
	c.CloseError = errors.New("connection reset")
	p.ClientDisconnected(c)

	require.Eventually(t, func() bool {
		for _, entry := range hook.AllEntries() {
			if entry.Message == "client disconnected" {
				return entry.Data[logrus.ErrorKey] == c.CloseError
			}
		}

		return false
	}, time.Second, time.Millisecond*10)
	assert.False(t, p.hasClients("g"))
}

// takenInviteStore reports the invite code as taken for the first taken creates
type takenInviteStore struct {
	*store.Memory
	taken int
	tried []string
}

func (s *takenInviteStore) Create(ctx context.Context, state *model.State) error {
	s.tried = append(s.tried, state.Game.InviteCode)
	if s.taken > 0 {
		s.taken--
		return store.ErrDuplicateInviteCode
	}

	return s.Memory.Create(ctx, state)
}

func TestPitBoss_CreateSessionGeneratedCodeTaken(t *testing.T) {
	a := assert.New(t)

	st := &takenInviteStore{Memory: store.NewMemory()}
	p := NewPitBoss(st, nil, Options{Rules: shed.DefaultOptions(), BotDelay: time.Hour, Generator: rng.NewSeeded(1)})
	p.StartShift()
	defer p.EndShift()

	other, err := p.CreateSession(cbg, shed.Roster{UserIDs: []string{"u9"}})
	require.NoError(t, err)

	// a taken generated code is replaced, never reported as an existing session
	st.taken = 2
	st.tried = nil
	id, err := p.CreateSession(cbg, shed.Roster{UserIDs: []string{"u1"}})
	a.NoError(err)
	a.NotEqual(other, id)
	if a.Len(st.tried, 3) {
		state, err := st.View(cbg, id)
		require.NoError(t, err)
		a.Equal(st.tried[2], state.Game.InviteCode)
	}

	st.taken = inviteCodeAttempts
	_, err = p.CreateSession(cbg, shed.Roster{UserIDs: []string{"u1"}})
	a.True(errors.Is(err, store.ErrDuplicateInviteCode))
	var exists SessionExistsError
	a.False(errors.As(err, &exists))

	// a supplied code is never replaced
	st.taken = 1
	st.tried = nil
	_, err = p.CreateSession(cbg, shed.Roster{InviteCode: "MINE01", UserIDs: []string{"u1"}})
	a.Equal(store.ErrDuplicateInviteCode, err)
	a.Equal([]string{"MINE01"}, st.tried)
}

func TestPitBoss_BotPendingUntilTurnSaved(t *testing.T) {
	a := assert.New(t)
	p, st, _ := newTestPitBoss(t, Options{BotDelay: time.Hour})

	id, err := p.CreateSession(cbg, shed.Roster{UserIDs: []string{"u1"}, Size: 2})
	require.NoError(t, err)

	var botID string
	require.NoError(t, st.Update(cbg, id, func(state *model.State) error {
		for _, player := range state.Players {
			if player.IsBot {
				botID = player.ID
			}
		}

		state.Game.CurrentTurn = botID
		return nil
	}))

	// hold the dealer so the bot turn has to wait
	held := make(chan bool)
	release := make(chan bool)
	go func() {
		_ = p.do(cbg, id, func() error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	p.scheduleBot(id)
	ran := make(chan bool)
	go func() {
		p.runBot(id)
		close(ran)
	}()

	a.Never(func() bool {
		return !p.isBotPending(id)
	}, time.Millisecond*100, time.Millisecond*10)

	// the bot is due, but a turn is already pending
	_, err = p.GetState(cbg, id, "u1")
	a.NoError(err)
	a.True(p.isBotPending(id))

	close(release)
	<-ran

	a.False(p.isBotPending(id))
	view, err := p.GetState(cbg, id, "u1")
	a.NoError(err)
	a.True(view.IsYourTurn)
}
