package engine

import (
	"errors"
	"slices"
)

var ErrNoNameSelected = errors.New("no name selected")
var ErrNameResolved = errors.New("name already resolved")
var ErrNameNotEligible = errors.New("name not eligible in the active mode")
var ErrEmptyPool = errors.New("no eligible seats remain in the active mode")
var ErrNotSpinning = errors.New("draw is not spinning")
var ErrNotRevealing = errors.New("no reveal in progress")
var ErrSeatNotInPool = errors.New("seat is not in the eligible pool")
var ErrDrawInProgress = errors.New("a draw is already in progress")
var ErrDrawFinished = errors.New("every seat is resolved")
var ErrUnsupportedCommand = errors.New("unsupported command")

type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseSpinning     Phase = "spinning"
	PhaseRevealNormal Phase = "revealNormal"
	PhaseRevealLucky  Phase = "revealLucky"
	PhaseFinished     Phase = "finished"
)

// Rules configure one session's draw behaviour. A zero LuckyProbability
// means the default 1/initialPoolSize.
type Rules struct {
	LuckyEnabled     bool
	LuckyProbability float64
	TickMillis       int
}

type State struct {
	Phase       Phase  `json:"phase"`
	Name        string `json:"name,omitempty"`
	Candidate   int    `json:"candidate,omitempty"`
	Provisional int    `json:"provisional,omitempty"`
	InitialPool int    `json:"-"`
	Rules       Rules  `json:"-"`
}

type CommandType string

const (
	CmdStartDraw   CommandType = "StartDraw"
	CmdSpinTick    CommandType = "SpinTick"
	CmdStopDraw    CommandType = "StopDraw"
	CmdAcknowledge CommandType = "Acknowledge"
	CmdChooseSeat  CommandType = "ChooseSeat"
	CmdResetDraw   CommandType = "ResetDraw"
)

type Command struct {
	Type CommandType
	Name string
	Seat int
}

type EventType string

const (
	EvtSpinStarted    EventType = "SpinStarted"
	EvtCandidateMoved EventType = "CandidateMoved"
	EvtSeatRevealed   EventType = "SeatRevealed"
	EvtLuckyTriggered EventType = "LuckyTriggered"
	EvtSeatCommitted  EventType = "SeatCommitted"
	EvtDrawFinished   EventType = "DrawFinished"
	EvtDrawReset      EventType = "DrawReset"
)

type Event struct {
	Type EventType
	Seat int
	Name string
}

// Pool is the ledger view the engine decides against: the seats and names
// eligible under the active mode, the union of names resolved in any tier,
// and the global unresolved seat count that decides session completion.
type Pool struct {
	Seats           []int
	Names           []string
	ResolvedNames   map[string]bool
	GlobalRemaining int
}

// Apply runs one command against the draw state machine. It never mutates
// s or the pool; the caller owns committing EvtSeatCommitted to the ledger.
func Apply(s State, cmd Command, pool Pool) ([]Event, State, error) {
	newState := s

	switch cmd.Type {
	case CmdStartDraw:
		switch s.Phase {
		case PhaseFinished:
			return nil, s, ErrDrawFinished
		case PhaseIdle:
		default:
			return nil, s, ErrDrawInProgress
		}
		if cmd.Name == "" {
			return nil, s, ErrNoNameSelected
		}
		if pool.ResolvedNames[cmd.Name] {
			return nil, s, ErrNameResolved
		}
		if !slices.Contains(pool.Names, cmd.Name) {
			return nil, s, ErrNameNotEligible
		}
		if len(pool.Seats) == 0 {
			return nil, s, ErrEmptyPool
		}
		newState.Phase = PhaseSpinning
		newState.Name = cmd.Name
		newState.Candidate = sampleSeat(pool.Seats)
		newState.Provisional = 0
		return []Event{{Type: EvtSpinStarted, Name: cmd.Name}}, newState, nil

	case CmdSpinTick:
		if s.Phase != PhaseSpinning {
			return nil, s, ErrNotSpinning
		}
		// Re-sample the live pool each tick so a pool that shrank under us
		// never leaves a stale seat on display.
		if len(pool.Seats) > 0 {
			newState.Candidate = sampleSeat(pool.Seats)
		}
		return []Event{{Type: EvtCandidateMoved, Seat: newState.Candidate}}, newState, nil

	case CmdStopDraw:
		if s.Phase != PhaseSpinning {
			return nil, s, ErrNotSpinning
		}
		newState.Provisional = s.Candidate
		if s.Rules.LuckyEnabled && len(pool.Seats) > 1 && luckyRoll() < luckyProbability(s) {
			newState.Phase = PhaseRevealLucky
			return []Event{{Type: EvtLuckyTriggered, Name: s.Name}}, newState, nil
		}
		newState.Phase = PhaseRevealNormal
		return []Event{{Type: EvtSeatRevealed, Seat: newState.Provisional, Name: s.Name}}, newState, nil

	case CmdAcknowledge:
		if s.Phase != PhaseRevealNormal {
			return nil, s, ErrNotRevealing
		}
		return commit(s, s.Provisional, pool)

	case CmdChooseSeat:
		if s.Phase != PhaseRevealLucky {
			return nil, s, ErrNotRevealing
		}
		return commit(s, cmd.Seat, pool)

	case CmdResetDraw:
		newState = State{Phase: PhaseIdle, InitialPool: s.InitialPool, Rules: s.Rules}
		return []Event{{Type: EvtDrawReset}}, newState, nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}

func commit(s State, seat int, pool Pool) ([]Event, State, error) {
	if !slices.Contains(pool.Seats, seat) {
		return nil, s, ErrSeatNotInPool
	}
	events := []Event{{Type: EvtSeatCommitted, Seat: seat, Name: s.Name}}

	newState := s
	newState.Name = ""
	newState.Candidate = 0
	newState.Provisional = 0
	newState.Phase = PhaseIdle

	// This commit consumes the last unresolved seat globally.
	if pool.GlobalRemaining <= 1 {
		newState.Phase = PhaseFinished
		events = append(events, Event{Type: EvtDrawFinished})
	}
	return events, newState, nil
}

func luckyProbability(s State) float64 {
	p := s.Rules.LuckyProbability
	if p == 0 && s.InitialPool > 0 {
		p = 1 / float64(s.InitialPool)
	}
	return min(max(p, 0), 1)
}
