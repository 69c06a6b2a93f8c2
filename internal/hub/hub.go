package hub

import (
	"context"

	"go.uber.org/zap"

	"github.com/mkawano/seat-draw-backend/internal/session"
)

type HubMsg interface{ isHubMsg() }

type CreateSession struct {
	Code  string
	Reply chan *session.Session
}

type GetSession struct {
	Code  string
	Reply chan *session.Session
}

type EnsureSession struct {
	Code  string
	Reply chan *session.Session
}

type RemoveSession struct {
	Code string
}

type ShutdownHub struct{}

func (CreateSession) isHubMsg() {}
func (GetSession) isHubMsg()    {}
func (EnsureSession) isHubMsg() {}
func (RemoveSession) isHubMsg() {}
func (ShutdownHub) isHubMsg()   {}

// Hub is the registry of live seating events keyed by join code. Every
// session it spawns boots from the same base config: the catalog is loaded
// once at startup and shared.
type Hub struct {
	inbox    chan HubMsg
	base     session.Config
	sessions map[string]*session.Session
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, base session.Config) *Hub {
	ctx, cancel := context.WithCancel(parent)
	if base.Logger == nil {
		base.Logger = zap.NewNop()
	}
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		base:     base,
		sessions: make(map[string]*session.Session),
		log:      base.Logger,
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
				msg.Reply <- h.spawn(msg.Code)

			case GetSession:
				msg.Reply <- h.sessions[msg.Code] // May be nil

			case EnsureSession:
				if s := h.sessions[msg.Code]; s != nil {
					msg.Reply <- s
					break
				}
				msg.Reply <- h.spawn(msg.Code)

			case RemoveSession:
				if s := h.sessions[msg.Code]; s != nil {
					s.Inbox() <- session.Shutdown{}
					delete(h.sessions, msg.Code)
				}

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func (h *Hub) spawn(code string) *session.Session {
	cfg := h.base
	cfg.Logger = h.log.With(zap.String("session", code))
	s := session.New(h.ctx, cfg)
	h.sessions[code] = s
	h.log.Info("session created", zap.String("code", code))
	return s
}

func (h *Hub) shutdown() {
	for _, s := range h.sessions {
		s.Inbox() <- session.Shutdown{}
	}
	clear(h.sessions)
	h.cancel()
}
