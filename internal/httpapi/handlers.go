package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkawano/seat-draw-backend/internal/hub"
	"github.com/mkawano/seat-draw-backend/internal/layout"
	"github.com/mkawano/seat-draw-backend/internal/ledger"
	"github.com/mkawano/seat-draw-backend/internal/session"
)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

func CreateSession(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			reply := make(chan *session.Session, 1)
			h.Inbox() <- hub.GetSession{Code: c, Reply: reply}
			if <-reply == nil {
				code = c
				break
			}
		}

		reply := make(chan *session.Session, 1)
		h.Inbox() <- hub.EnsureSession{Code: code, Reply: reply}
		if <-reply == nil {
			http.Error(w, "failed to create session", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(struct {
			Code string `json:"code"`
		}{Code: code})
	}
}

// ExportPreset serves the live preset tier in the seat_preset.json shape,
// fixed and drawn seats excluded.
func ExportPreset(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := lookup(h, w, r)
		if !ok {
			return
		}

		reply := make(chan map[string]string, 1)
		s.Inbox() <- session.ExportPreset{Reply: reply}
		select {
		case table := <-reply:
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Content-Disposition", `attachment; filename="seat_preset.json"`)
			_ = json.NewEncoder(w).Encode(table)
		case <-time.After(3 * time.Second):
			http.Error(w, "session not responding", http.StatusServiceUnavailable)
		}
	}
}

// ImportPreset replaces the preset tier from an uploaded table. The import
// is atomic: a single collision with a fixed or drawn seat rejects the whole
// file and leaves the session untouched.
func ImportPreset(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := lookup(h, w, r)
		if !ok {
			return
		}

		raw, err := readBody(r)
		if err != nil {
			http.Error(w, "failed to read body", http.StatusBadRequest)
			return
		}
		table, err := layout.ParsePreset(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		reply := make(chan error, 1)
		s.Inbox() <- session.ImportPreset{Table: table, Reply: reply}
		select {
		case err := <-reply:
			switch {
			case err == nil:
				w.WriteHeader(http.StatusNoContent)
			case errors.Is(err, ledger.ErrImportCollision):
				http.Error(w, err.Error(), http.StatusConflict)
			case errors.Is(err, session.ErrDrawActive):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, err.Error(), http.StatusBadRequest)
			}
		case <-time.After(3 * time.Second):
			http.Error(w, "session not responding", http.StatusServiceUnavailable)
		}
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, 1<<20))
}

func lookup(h *hub.Hub, w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	code := chi.URLParam(r, "code")
	reply := make(chan *session.Session, 1)
	h.Inbox() <- hub.GetSession{Code: code, Reply: reply}
	s := <-reply
	if s == nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return s, true
}
