package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mkawano/seat-draw-backend/internal/engine"
	"github.com/mkawano/seat-draw-backend/internal/layout"
	"github.com/mkawano/seat-draw-backend/internal/ledger"
	"github.com/mkawano/seat-draw-backend/internal/mode"
)

var ErrDrawActive = errors.New("a draw is in progress; manager edits are disabled")

// Config is everything one seating event boots from.
type Config struct {
	Layout              *layout.Layout
	Names               []string
	Fixed               map[string]string
	Preset              map[string]string
	Modes               mode.Config
	Rules               engine.Rules
	HideFixedFromSelect bool
	Logger              *zap.Logger
}

// Session is the actor owning one seating event: the ledger, the draw state
// machine and the active mode. All mutation goes through the inbox so the
// ledger is only ever touched from the loop goroutine.
type Session struct {
	inbox    chan Msg
	cfg      Config
	led      *ledger.Ledger
	eng      engine.State
	curMode  string
	version  int
	clients  map[string]chan Snapshot
	results  []DrawResult
	tickGen  int
	tickStop context.CancelFunc
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func New(parent context.Context, cfg Config) *Session {
	ctx, cancel := context.WithCancel(parent)
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	led := ledger.New(cfg.Layout.Seats, cfg.Names)
	added := led.Initialize(cfg.Fixed, cfg.Preset)
	if len(added) > 0 {
		cfg.Logger.Info("catalog extended by fixed/preset tables", zap.Strings("names", added))
	}

	s := &Session{
		inbox:   make(chan Msg, 64),
		cfg:     cfg,
		led:     led,
		eng:     engine.NewState(cfg.Rules, len(led.UnresolvedSeats())),
		curMode: cfg.Modes.Default,
		clients: map[string]chan Snapshot{},
		log:     cfg.Logger,
		ctx:     ctx,
		cancel:  cancel,
	}
	go s.loop()
	return s
}

// Inbox exposes the message channel for the transports and tests.
func (s *Session) Inbox() chan<- Msg { return s.inbox }

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				s.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- Snapshot{Version: s.version, State: s.snapshot()}

			case Leave:
				delete(s.clients, msg.ClientID)

			case FromClient:
				err := s.applyCommand(msg.Cmd)
				reply(msg.Reply, err)

			case spinTick:
				if msg.gen != s.tickGen {
					break // stale fire from a cancelled ticker
				}
				_ = s.applyCommand(engine.Command{Type: engine.CmdSpinTick})

			case SetMode:
				if !s.cfg.Modes.Valid(msg.Mode) {
					reply(msg.Reply, mode.ErrUnknownMode)
					break
				}
				s.curMode = msg.Mode
				reply(msg.Reply, nil)
				s.bump()

			case EditPreset:
				reply(msg.Reply, s.editPreset(msg.Seat, msg.Name))

			case ClearPreset:
				reply(msg.Reply, s.clearPreset(msg.Seat))

			case ImportPreset:
				reply(msg.Reply, s.importPreset(msg.Table))

			case ExportPreset:
				msg.Reply <- s.led.ExportPreset()

			case Reset:
				s.reset()

			case GetState:
				msg.Reply <- View{
					Version:    s.version,
					NumClients: len(s.clients),
					Engine:     s.eng,
					State:      s.snapshot(),
				}

			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) applyCommand(cmd engine.Command) error {
	events, newState, err := engine.Apply(s.eng, cmd, s.pool())
	if err != nil {
		if cmd.Type != engine.CmdSpinTick {
			s.log.Debug("command rejected", zap.String("cmd", string(cmd.Type)), zap.Error(err))
		}
		return err
	}
	s.eng = newState

	for _, ev := range events {
		switch ev.Type {
		case engine.EvtSpinStarted:
			s.startTicker()
			s.log.Info("spin started", zap.String("name", ev.Name), zap.String("mode", s.curMode))
		case engine.EvtSeatRevealed, engine.EvtLuckyTriggered:
			s.stopTicker()
			if ev.Type == engine.EvtLuckyTriggered {
				s.log.Info("lucky draw triggered", zap.String("name", ev.Name))
			}
		case engine.EvtSeatCommitted:
			if s.led.CommitDraw(ev.Seat, ev.Name) {
				s.results = append(s.results, DrawResult{Seat: ev.Seat, Name: ev.Name})
				s.log.Info("seat committed", zap.Int("seat", ev.Seat), zap.String("name", ev.Name))
			} else {
				// Apply validated pool membership, so this only fires if the
				// ledger changed between validation and commit. It cannot in
				// a single-goroutine loop; log loudly if it ever does.
				s.log.Error("commit contested", zap.Int("seat", ev.Seat), zap.String("name", ev.Name))
			}
		case engine.EvtDrawFinished:
			s.log.Info("all seats resolved, draw finished")
		case engine.EvtDrawReset:
			s.stopTicker()
		}
	}

	s.bump()
	return nil
}

func (s *Session) editPreset(seat int, name string) error {
	if err := s.managerAllowed(); err != nil {
		return err
	}
	if err := s.led.ApplyPreset(seat, name); err != nil {
		return err
	}
	s.log.Info("preset applied", zap.Int("seat", seat), zap.String("name", name))
	s.bump()
	return nil
}

func (s *Session) clearPreset(seat int) error {
	if err := s.managerAllowed(); err != nil {
		return err
	}
	if err := s.led.ClearPreset(seat); err != nil {
		return err
	}
	s.log.Info("preset cleared", zap.Int("seat", seat))
	s.bump()
	return nil
}

func (s *Session) importPreset(table map[string]string) error {
	if err := s.managerAllowed(); err != nil {
		return err
	}
	added, err := s.led.ImportPreset(table)
	if err != nil {
		return err
	}
	if len(added) > 0 {
		s.log.Info("catalog extended by imported presets", zap.Strings("names", added))
	}
	s.log.Info("preset table imported", zap.Int("entries", len(table)))
	s.bump()
	return nil
}

// managerAllowed rejects manager edits while a draw is active. The front
// end disables the edit controls too; this is the backstop.
func (s *Session) managerAllowed() error {
	switch s.eng.Phase {
	case engine.PhaseIdle, engine.PhaseFinished:
		return nil
	}
	return ErrDrawActive
}

func (s *Session) reset() {
	s.stopTicker()
	s.led.Reset()
	s.eng = engine.NewState(s.cfg.Rules, len(s.led.UnresolvedSeats()))
	s.results = nil
	s.log.Info("session reset")
	s.bump()
}

// startTicker launches the spin ticker. Each ticker carries a generation;
// stopTicker bumps it so a fire already queued in the inbox is dropped
// instead of advancing a stale spin.
func (s *Session) startTicker() {
	s.stopTicker()
	s.tickGen++
	gen := s.tickGen

	ctx, cancel := context.WithCancel(s.ctx)
	s.tickStop = cancel
	interval := time.Duration(s.eng.Rules.TickMillis) * time.Millisecond

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				select {
				case s.inbox <- spinTick{gen: gen}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
}

func (s *Session) stopTicker() {
	if s.tickStop != nil {
		s.tickStop()
		s.tickStop = nil
	}
	s.tickGen++
}

func (s *Session) pool() engine.Pool {
	unresolved := s.led.UnresolvedSeats()
	assigned := s.led.AssignedNames()
	return engine.Pool{
		Seats:           s.cfg.Modes.EligibleSeats(s.curMode, unresolved),
		Names:           s.cfg.Modes.EligibleNames(s.curMode, s.led.Names(), assigned),
		ResolvedNames:   assigned,
		GlobalRemaining: len(unresolved),
	}
}

func (s *Session) bump() {
	s.version++
	s.broadcast(Snapshot{Version: s.version, State: s.snapshot()})
}

func (s *Session) broadcast(snap Snapshot) {
	for id, ch := range s.clients {
		select {
		case ch <- snap:
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(s.clients, id)
		}
	}
}

func (s *Session) shutdown() {
	s.stopTicker()
	for id, ch := range s.clients {
		close(ch)
		delete(s.clients, id)
	}
	s.cancel()
}

func reply(ch chan error, err error) {
	if ch != nil {
		ch <- err
	}
}
