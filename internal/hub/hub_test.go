package hub

import (
	"context"
	"testing"

	"github.com/mkawano/seat-draw-backend/internal/engine"
	"github.com/mkawano/seat-draw-backend/internal/layout"
	"github.com/mkawano/seat-draw-backend/internal/session"
)

func baseConfig() session.Config {
	return session.Config{
		Layout: &layout.Layout{Rows: [][]int{{1, 2, 3}}, Seats: []int{1, 2, 3}, MaxCols: 3},
		Names:  []string{"A", "B", "C"},
		Rules:  engine.Rules{TickMillis: 3600000},
	}
}

func TestHub_Create_Get_SamePointer(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, baseConfig())
	reply := make(chan *session.Session, 1)

	h.Inbox() <- CreateSession{Code: "ZED123", Reply: reply}
	s1 := <-reply

	h.Inbox() <- GetSession{Code: "ZED123", Reply: reply}
	s2 := <-reply

	if s1 == nil || s2 == nil || s1 != s2 {
		t.Fatalf("expected same session pointer")
	}
}

func TestHub_GetUnknownIsNil(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, baseConfig())
	reply := make(chan *session.Session, 1)

	h.Inbox() <- GetSession{Code: "NOPE42", Reply: reply}
	if s := <-reply; s != nil {
		t.Fatalf("expected nil for unknown code")
	}
}

func TestHub_RemoveForgetsSession(t *testing.T) {
	ctx := context.Background()
	h := NewHub(ctx, baseConfig())
	reply := make(chan *session.Session, 1)

	h.Inbox() <- EnsureSession{Code: "ABC123", Reply: reply}
	if <-reply == nil {
		t.Fatalf("ensure returned nil")
	}

	h.Inbox() <- RemoveSession{Code: "ABC123"}
	h.Inbox() <- GetSession{Code: "ABC123", Reply: reply}
	if s := <-reply; s != nil {
		t.Fatalf("expected session to be gone after remove")
	}
}
