package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/mkawano/seat-draw-backend/internal/engine"
	"github.com/mkawano/seat-draw-backend/internal/hub"
	"github.com/mkawano/seat-draw-backend/internal/session"
	"github.com/mkawano/seat-draw-backend/pkg/types"
)

func Handler(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.GetSession{Code: code, Reply: reply}
		s := <-reply
		if s == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan session.Snapshot, 8)
		clientID := randID(6)

		s.Inbox() <- session.Join{ClientID: clientID, Outbox: out}
		defer func() { s.Inbox() <- session.Leave{ClientID: clientID} }()

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				state := snap.State
				msg := types.ServerMessage{Type: "StateSnapshot", Version: snap.Version, State: &state}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				// Otherwise, just exit (session.Leave in defer):
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			msg, errReply, ok := toSessionMsg(cm)
			if !ok {
				writeError(r.Context(), conn, "unknown type")
				continue
			}

			s.Inbox() <- msg
			if errReply != nil {
				select {
				case err := <-errReply:
					if err != nil {
						writeError(r.Context(), conn, err.Error())
					}
				case <-time.After(3 * time.Second):
				case <-r.Context().Done():
					return
				}
			}
		}
	}
}

// toSessionMsg maps a wire message onto a session message. Messages that can
// be rejected carry a reply channel so the rejection reason reaches the
// operator instead of vanishing.
func toSessionMsg(m types.ClientMessage) (session.Msg, chan error, bool) {
	errReply := make(chan error, 1)
	switch m.Type {
	case "StartDraw":
		return session.FromClient{Cmd: engine.Command{Type: engine.CmdStartDraw, Name: m.Name}, Reply: errReply}, errReply, true
	case "StopDraw":
		return session.FromClient{Cmd: engine.Command{Type: engine.CmdStopDraw}, Reply: errReply}, errReply, true
	case "Acknowledge":
		return session.FromClient{Cmd: engine.Command{Type: engine.CmdAcknowledge}, Reply: errReply}, errReply, true
	case "ChooseSeat":
		return session.FromClient{Cmd: engine.Command{Type: engine.CmdChooseSeat, Seat: m.Seat}, Reply: errReply}, errReply, true
	case "SetMode":
		return session.SetMode{Mode: m.Mode, Reply: errReply}, errReply, true
	case "ApplyPreset":
		return session.EditPreset{Seat: m.Seat, Name: m.Name, Reply: errReply}, errReply, true
	case "ClearPreset":
		return session.ClearPreset{Seat: m.Seat, Reply: errReply}, errReply, true
	case "Reset":
		return session.Reset{}, nil, true
	default:
		return nil, nil, false
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, reason string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: "Error", Error: reason})
	_ = conn.Write(ctx, websocket.MessageText, payload)
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
