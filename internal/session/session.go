package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/bracket-backend/internal/engine"
	"github.com/DoyleJ11/bracket-backend/internal/metrics"
	"github.com/DoyleJ11/bracket-backend/internal/store"
)

var ErrClosed = errors.New("session closed")

type Msg interface{ isSessionMsg() }

// FromClient applies Cmd. Reply, when set, receives the outcome; it must
// have room for one value.
type FromClient struct {
	Cmd   engine.Command
	Reply chan Result
}

func (FromClient) isSessionMsg() {}

// Join subscribes Outbox to snapshots. Outbox must have room for one value:
// the current snapshot is sent right away, and a client that cannot take it
// is closed and not registered. The session closes Outbox on Leave.
type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isSessionMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isSessionMsg() {}

// timerFired is the deferred auto-advance. Gen must match the session's
// current generation or the fire is stale and dropped.
type timerFired struct{ Gen uint64 }

func (timerFired) isSessionMsg() {}

type Snapshot struct {
	Version int          `json:"version"`
	State   engine.State `json:"state"`
}

type Result struct {
	Snapshot Snapshot
	Events   []engine.Event
	Err      error
}

type View struct {
	Version        int
	NumClients     int
	State          engine.State
	PendingAdvance bool
}

type Options struct {
	Code    string
	Deps    engine.Deps
	Store   store.Store      // optional
	Metrics *metrics.Metrics // optional
	Logger  *zap.Logger

	// AutoAdvance moves to the next round AutoAdvanceDelay after a winner
	// pick completes the active round.
	AutoAdvance      bool
	AutoAdvanceDelay time.Duration
}

// Session is the only writer of one bracket's state. Every change goes
// through its inbox and is applied in order on its goroutine.
type Session struct {
	inbox    chan Msg
	state    engine.State
	version  int
	clients  map[string]chan Snapshot
	opts     Options
	log      *zap.Logger
	timer    *time.Timer
	timerGen uint64
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

func New(parent context.Context, initial engine.State, version int, opts Options) *Session {
	ctx, cancel := context.WithCancel(parent)
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &Session{
		inbox:   make(chan Msg, 64), // Small buffer
		state:   initial,
		version: version,
		clients: make(map[string]chan Snapshot),
		opts:    opts,
		log:     opts.Logger.With(zap.String("code", opts.Code)),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	go s.loop()
	return s
}

func (s *Session) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				select {
				case msg.Outbox <- s.snapshot():
					s.clients[msg.ClientID] = msg.Outbox
					s.gauge(1)
				default:
					close(msg.Outbox)
					s.log.Info("refused subscriber with full outbox", zap.String("client", msg.ClientID))
				}

			case Leave:
				if ch, ok := s.clients[msg.ClientID]; ok {
					close(ch) // Only the session sends on it
					delete(s.clients, msg.ClientID)
					s.gauge(-1)
				}

			case FromClient:
				events, err := s.apply(msg.Cmd)
				if msg.Reply != nil {
					msg.Reply <- Result{Snapshot: s.snapshot(), Events: events, Err: err}
				}

			case timerFired:
				if msg.Gen != s.timerGen {
					s.log.Debug("dropping stale auto-advance", zap.Uint64("gen", msg.Gen), zap.Uint64("current", s.timerGen))
					break
				}
				s.timer = nil
				if _, err := s.apply(engine.Command{Type: engine.CmdAdvanceRound}); err != nil {
					s.log.Warn("auto-advance rejected", zap.Error(err))
				}

			case GetState:
				// reflect internal state without data races
				msg.Reply <- View{
					Version:        s.version,
					NumClients:     len(s.clients),
					State:          s.state,
					PendingAdvance: s.timer != nil,
				}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

// apply runs cmd through the engine and commits the result.
func (s *Session) apply(cmd engine.Command) ([]engine.Event, error) {
	events, newState, err := engine.Apply(s.state, cmd, s.opts.Deps)
	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveCommand(string(cmd.Type), err)
	}
	if err != nil {
		s.log.Debug("command rejected", zap.String("type", string(cmd.Type)), zap.Error(err))
		return nil, err
	}

	s.disarm()
	s.state = newState
	s.version++
	s.log.Debug("command applied",
		zap.String("type", string(cmd.Type)),
		zap.Int("version", s.version),
		zap.Int("round", s.state.CurrentRound))

	if engine.ContainsEvent(events, engine.EvtTournamentCompleted) {
		if c := s.state.Champion(); c != nil {
			s.log.Info("tournament completed", zap.String("champion", c.Name))
		}
		if s.opts.Metrics != nil {
			s.opts.Metrics.Tournaments.Inc()
		}
	}
	if s.opts.AutoAdvance && cmd.Type == engine.CmdSelectWinner &&
		engine.CanAdvance(s.state.Rounds, s.state.CurrentRound) {
		s.arm()
	}

	snap := s.snapshot()
	s.persist(snap)
	s.broadcast(snap)
	return events, nil
}

// arm schedules an auto-advance tagged with the current generation.
func (s *Session) arm() {
	gen := s.timerGen
	s.timer = time.AfterFunc(s.opts.AutoAdvanceDelay, func() {
		select {
		case s.inbox <- timerFired{Gen: gen}:
		case <-s.ctx.Done():
		}
	})
}

// disarm stops any pending auto-advance and invalidates fires already queued.
func (s *Session) disarm() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerGen++
}

func (s *Session) persist(snap Snapshot) {
	if s.opts.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(s.ctx, 2*time.Second)
	defer cancel()
	if err := s.opts.Store.Save(ctx, s.opts.Code, store.Snapshot{Version: snap.Version, State: snap.State}); err != nil {
		s.log.Error("save snapshot", zap.Int("version", snap.Version), zap.Error(err))
		if s.opts.Metrics != nil {
			s.opts.Metrics.StoreErrors.Inc()
		}
	}
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{Version: s.version, State: s.state}
}

func (s *Session) gauge(delta float64) {
	if s.opts.Metrics != nil {
		s.opts.Metrics.Subscribers.Add(delta)
	}
}

func (s *Session) shutdown() {
	s.disarm()
	for id, ch := range s.clients {
		close(ch) // Tell client no more snapshots
		delete(s.clients, id)
		s.gauge(-1)
	}
	s.cancel()
}

func (s *Session) broadcast(snap Snapshot) {
	for id, ch := range s.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(s.clients, id)
			s.gauge(-1)
			s.log.Info("dropped slow subscriber", zap.String("client", id))
		}
	}
}

// Inbox exposes the inbox so tests or the ws layer can send messages.
func (s *Session) Inbox() chan<- Msg { return s.inbox }

// Done closes once the session goroutine has exited.
func (s *Session) Done() <-chan struct{} { return s.done }

// Send delivers m unless the session has stopped or ctx ends first.
func (s *Session) Send(ctx context.Context, m Msg) error {
	select {
	case s.inbox <- m:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do applies cmd and waits for the outcome. A rejected command returns the
// unchanged snapshot together with the engine error.
func (s *Session) Do(ctx context.Context, cmd engine.Command) (Result, error) {
	reply := make(chan Result, 1)
	if err := s.Send(ctx, FromClient{Cmd: cmd, Reply: reply}); err != nil {
		return Result{}, err
	}
	select {
	case res := <-reply:
		return res, nil
	case <-s.done:
		return Result{}, ErrClosed
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// State returns the current view.
func (s *Session) State(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	if err := s.Send(ctx, GetState{Reply: reply}); err != nil {
		return View{}, err
	}
	select {
	case v := <-reply:
		return v, nil
	case <-s.done:
		return View{}, ErrClosed
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}
