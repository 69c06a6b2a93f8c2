package session

import "github.com/mkawano/seat-draw-backend/internal/engine"

type Msg interface{ isSessionMsg() }

// FromClient carries one draw command. Reply is optional; when set, the
// session reports whether the command was accepted so the transport can
// surface rejections to the operator.
type FromClient struct {
	Cmd   engine.Command
	Reply chan error
}

func (FromClient) isSessionMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isSessionMsg() {}

type Leave struct{ ClientID string }

func (Leave) isSessionMsg() {}

// SetMode switches the active draw mode. A pure view change.
type SetMode struct {
	Mode  string
	Reply chan error
}

func (SetMode) isSessionMsg() {}

// EditPreset and ClearPreset are the manager console's seat-level edits.
type EditPreset struct {
	Seat  int
	Name  string
	Reply chan error
}

func (EditPreset) isSessionMsg() {}

type ClearPreset struct {
	Seat  int
	Reply chan error
}

func (ClearPreset) isSessionMsg() {}

// ImportPreset replaces the whole preset tier, all-or-nothing.
type ImportPreset struct {
	Table map[string]string
	Reply chan error
}

func (ImportPreset) isSessionMsg() {}

type ExportPreset struct {
	Reply chan map[string]string
}

func (ExportPreset) isSessionMsg() {}

// Reset clears draw history and replays fixed/preset from their sources.
// It cancels an in-flight spin as a side effect.
type Reset struct{}

func (Reset) isSessionMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isSessionMsg() {}

type Shutdown struct{}

func (Shutdown) isSessionMsg() {}

// spinTick arrives from the ticker goroutine. The generation lets the loop
// drop fires from a ticker that was cancelled after the message was queued.
type spinTick struct{ gen int }

func (spinTick) isSessionMsg() {}
