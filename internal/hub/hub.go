package hub

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/DoyleJ11/bracket-backend/internal/engine"
	"github.com/DoyleJ11/bracket-backend/internal/metrics"
	"github.com/DoyleJ11/bracket-backend/internal/session"
	"github.com/DoyleJ11/bracket-backend/internal/store"
)

type HubMsg interface{ isHubMsg() }

type CreateSession struct {
	Code  string
	State engine.State
	Reply chan *session.Session
}

// GetSession replies nil when the code is neither live nor stored.
type GetSession struct {
	Code  string
	Reply chan *session.Session
}

type EnsureSession struct {
	Code  string
	State engine.State // only used if creation happens
	Reply chan *session.Session
}

// RemoveSession stops the session. Reply, when set, receives the removed
// session (nil if none was live) so callers can wait on its Done.
type RemoveSession struct {
	Code  string
	Reply chan *session.Session
}

type ShutdownHub struct{}

func (CreateSession) isHubMsg() {}
func (GetSession) isHubMsg()    {}
func (EnsureSession) isHubMsg() {}
func (RemoveSession) isHubMsg() {}
func (ShutdownHub) isHubMsg()   {}

// Config is shared by every session the hub starts.
type Config struct {
	Deps             engine.Deps
	NewRand          func() engine.Rand // per-session source; Deps.Rand if nil
	Store            store.Store        // optional
	Metrics          *metrics.Metrics   // optional
	Logger           *zap.Logger
	AutoAdvance      bool
	AutoAdvanceDelay time.Duration
}

type Hub struct {
	inbox    chan HubMsg
	sessions map[string]*session.Session
	cfg      Config
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, cfg Config) *Hub {
	ctx, cancel := context.WithCancel(parent)
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*session.Session),
		cfg:      cfg,
		log:      cfg.Logger,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateSession:
				if s := h.sessions[msg.Code]; s != nil {
					msg.Reply <- s
					break
				}
				msg.Reply <- h.start(msg.Code, msg.State, 0)

			case GetSession:
				if s := h.sessions[msg.Code]; s != nil {
					msg.Reply <- s
					break
				}
				msg.Reply <- h.restore(msg.Code) // May be nil

			case EnsureSession:
				if s := h.sessions[msg.Code]; s != nil {
					msg.Reply <- s
					break
				}
				if s := h.restore(msg.Code); s != nil {
					msg.Reply <- s
					break
				}
				msg.Reply <- h.start(msg.Code, msg.State, 0)

			case RemoveSession:
				s := h.sessions[msg.Code]
				if s != nil {
					stop(s)
					delete(h.sessions, msg.Code)
					h.gauge()
				}
				if msg.Reply != nil {
					msg.Reply <- s
				}

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) start(code string, state engine.State, version int) *session.Session {
	deps := h.cfg.Deps
	if h.cfg.NewRand != nil {
		deps.Rand = h.cfg.NewRand()
	}
	s := session.New(h.ctx, state, version, session.Options{
		Code:             code,
		Deps:             deps,
		Store:            h.cfg.Store,
		Metrics:          h.cfg.Metrics,
		Logger:           h.log,
		AutoAdvance:      h.cfg.AutoAdvance,
		AutoAdvanceDelay: h.cfg.AutoAdvanceDelay,
	})
	h.sessions[code] = s
	h.gauge()
	h.log.Info("session started", zap.String("code", code), zap.Int("version", version))
	return s
}

// restore revives a stored session, or returns nil.
func (h *Hub) restore(code string) *session.Session {
	if h.cfg.Store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(h.ctx, 2*time.Second)
	defer cancel()
	snap, err := h.cfg.Store.Load(ctx, code)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.log.Error("load snapshot", zap.String("code", code), zap.Error(err))
		}
		return nil
	}
	return h.start(code, snap.State, snap.Version)
}

func stop(s *session.Session) {
	select {
	case s.Inbox() <- session.Shutdown{}:
	case <-s.Done():
	}
}

func (h *Hub) gauge() {
	if h.cfg.Metrics != nil {
		h.cfg.Metrics.Sessions.Set(float64(len(h.sessions)))
	}
}

func (h *Hub) shutdown() {
	for _, s := range h.sessions {
		stop(s)
	}
	clear(h.sessions)
	h.gauge()
	h.cancel()
}

func (h *Hub) Get(ctx context.Context, code string) (*session.Session, error) {
	return h.ask(ctx, func(reply chan *session.Session) HubMsg { return GetSession{Code: code, Reply: reply} })
}

func (h *Hub) Create(ctx context.Context, code string, state engine.State) (*session.Session, error) {
	return h.ask(ctx, func(reply chan *session.Session) HubMsg { return CreateSession{Code: code, State: state, Reply: reply} })
}

// Remove stops the session for code and waits until it has exited, so
// nothing it had queued can still be saved afterwards.
func (h *Hub) Remove(ctx context.Context, code string) error {
	s, err := h.ask(ctx, func(reply chan *session.Session) HubMsg { return RemoveSession{Code: code, Reply: reply} })
	if err != nil || s == nil {
		return err
	}
	select {
	case <-s.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) ask(ctx context.Context, build func(chan *session.Session) HubMsg) (*session.Session, error) {
	reply := make(chan *session.Session, 1)
	select {
	case h.inbox <- build(reply):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case s := <-reply:
		return s, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
