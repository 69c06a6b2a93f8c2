package session

import (
	"github.com/mkawano/seat-draw-backend/internal/engine"
	"github.com/mkawano/seat-draw-backend/internal/ledger"
)

// Snapshot is what display clients receive after every accepted mutation.
type Snapshot struct {
	Version int          `json:"version"`
	State   SessionState `json:"state"`
}

// View is the test-only reflection of internal state behind the GetState
// message.
type View struct {
	Version    int
	NumClients int
	Engine     engine.State
	State      SessionState
}

type SeatView struct {
	No   int    `json:"no"`
	Tier string `json:"tier,omitempty"`
	Name string `json:"name,omitempty"`
}

type DrawResult struct {
	Seat int    `json:"seat"`
	Name string `json:"name"`
}

// Status carries the status-line counters: global remaining seats,
// remaining seats in the active mode, and names in the active mode still
// undecided.
type Status struct {
	SeatsRemaining     int `json:"seats_remaining"`
	ModeSeatsRemaining int `json:"mode_seats_remaining"`
	ModeNamesUndecided int `json:"mode_names_undecided"`
}

type SessionState struct {
	Phase           engine.Phase `json:"phase"`
	Mode            string       `json:"mode,omitempty"`
	Name            string       `json:"name,omitempty"`
	Candidate       int          `json:"candidate,omitempty"`
	Provisional     int          `json:"provisional,omitempty"`
	MaxCols         int          `json:"max_cols"`
	Rows            [][]int      `json:"rows"`
	Seats           []SeatView   `json:"seats"`
	PoolSeats       []int        `json:"pool_seats"`
	SelectableNames []string     `json:"selectable_names"`
	Status          Status       `json:"status"`
	Results         []DrawResult `json:"results"`
	Finished        bool         `json:"finished"`
}

func (s *Session) snapshot() SessionState {
	pool := s.pool()

	seats := s.led.Seats()
	views := make([]SeatView, 0, len(seats))
	fixedNames := map[string]bool{}
	for _, no := range seats {
		a := s.led.Assignment(no)
		views = append(views, SeatView{No: no, Tier: string(a.Tier), Name: a.Name})
		if a.Tier == ledger.TierFixed {
			fixedNames[a.Name] = true
		}
	}

	selectable := pool.Names
	if s.cfg.HideFixedFromSelect {
		kept := make([]string, 0, len(selectable))
		for _, n := range selectable {
			if !fixedNames[n] {
				kept = append(kept, n)
			}
		}
		selectable = kept
	}

	return SessionState{
		Phase:           s.eng.Phase,
		Mode:            s.curMode,
		Name:            s.eng.Name,
		Candidate:       s.eng.Candidate,
		Provisional:     s.eng.Provisional,
		MaxCols:         s.cfg.Layout.MaxCols,
		Rows:            s.cfg.Layout.Rows,
		Seats:           views,
		PoolSeats:       pool.Seats,
		SelectableNames: selectable,
		Status: Status{
			SeatsRemaining:     pool.GlobalRemaining,
			ModeSeatsRemaining: len(pool.Seats),
			ModeNamesUndecided: len(pool.Names),
		},
		Results:  append([]DrawResult(nil), s.results...),
		Finished: s.eng.Phase == engine.PhaseFinished,
	}
}
