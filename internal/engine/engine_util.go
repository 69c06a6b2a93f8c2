package engine

import "math/rand"

// NewState builds the idle state for a fresh session. initialPool is the
// unresolved pool size right after the ledger initializes; it anchors the
// default lucky-draw probability.
func NewState(rules Rules, initialPool int) State {
	if rules.TickMillis <= 0 {
		rules.TickMillis = 50
	}
	return State{
		Phase:       PhaseIdle,
		InitialPool: initialPool,
		Rules:       rules,
	}
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

// Randomness hooks, package vars so tests can stub them.
var sampleSeat = func(pool []int) int {
	return pool[rand.Intn(len(pool))]
}

var luckyRoll = func() float64 {
	return rand.Float64()
}
