package types

import "github.com/mkawano/seat-draw-backend/internal/session"

// Client -> Server
// StartDraw:   { name }
// StopDraw:    {}
// Acknowledge: {}
// ChooseSeat:  { seat }      (lucky reveal only)
// SetMode:     { mode }
// ApplyPreset: { seat, name } (manager)
// ClearPreset: { seat }       (manager)
// Reset:       {}
type ClientMessage struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	Seat int    `json:"seat,omitempty"`
	Mode string `json:"mode,omitempty"`
}

// Server -> Client
type ServerMessage struct {
	Type    string                `json:"type"` // "StateSnapshot" | "Error"
	Version int                   `json:"version,omitempty"`
	State   *session.SessionState `json:"state,omitempty"`
	Error   string                `json:"error,omitempty"`
}
