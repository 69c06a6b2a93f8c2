package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

var ErrUnknownSeat = errors.New("unknown seat")
var ErrSeatFixed = errors.New("seat is locked by a fixed assignment")
var ErrSeatDrawn = errors.New("seat was resolved by the draw")
var ErrNameResolved = errors.New("name is already resolved")
var ErrNameRequired = errors.New("a name is required")
var ErrImportCollision = errors.New("preset import collides with a locked seat")

// Tier is the assignment source for a seat. A seat carries at most one
// tier at a time; the zero Assignment means unresolved.
type Tier string

const (
	TierFixed  Tier = "fixed"
	TierPreset Tier = "preset"
	TierDrawn  Tier = "drawn"
)

type Assignment struct {
	Tier Tier   `json:"tier"`
	Name string `json:"name"`
}

// Ledger owns the three assignment tiers for one session and derives the
// unresolved seat/name pools from them. It is not safe for concurrent use;
// the session goroutine is its sole owner.
type Ledger struct {
	seats   []int
	seatSet map[int]bool

	names   []string
	nameSet map[string]bool

	bySeat map[int]Assignment
	byName map[string]int

	fixedTable  map[string]string
	presetTable map[string]string
}

func New(seats []int, names []string) *Ledger {
	l := &Ledger{
		seatSet:     make(map[int]bool, len(seats)),
		nameSet:     make(map[string]bool, len(names)),
		bySeat:      map[int]Assignment{},
		byName:      map[string]int{},
		fixedTable:  map[string]string{},
		presetTable: map[string]string{},
	}
	for _, no := range seats {
		if !l.seatSet[no] {
			l.seatSet[no] = true
			l.seats = append(l.seats, no)
		}
	}
	for _, n := range names {
		if !l.nameSet[n] {
			l.nameSet[n] = true
			l.names = append(l.names, n)
		}
	}
	return l
}

// Initialize rebuilds all tiers from the given source tables. Fixed entries
// win, seats already resolved by the draw are preserved next, preset entries
// apply last and are skipped when their seat or name is already claimed.
// Non-numeric or unknown seat keys are ignored, not errors. Any name a table
// references that is missing from the catalog is appended to it; the
// appended names are returned so the caller can surface the side effect.
func (l *Ledger) Initialize(fixed, preset map[string]string) []string {
	drawn := map[int]string{}
	for no, a := range l.bySeat {
		if a.Tier == TierDrawn {
			drawn[no] = a.Name
		}
	}
	l.bySeat = map[int]Assignment{}
	l.byName = map[string]int{}
	l.fixedTable = copyTable(fixed)
	l.presetTable = copyTable(preset)

	var added []string

	for _, key := range sortedSeatKeys(l.fixedTable) {
		name := l.fixedTable[key]
		no, err := strconv.Atoi(key)
		if err != nil || !l.seatSet[no] {
			continue
		}
		if _, taken := l.byName[name]; taken {
			continue
		}
		l.assign(no, TierFixed, name)
		added = l.appendName(name, added)
	}

	for _, no := range sortedSeats(drawn) {
		name := drawn[no]
		if _, claimed := l.bySeat[no]; claimed {
			continue
		}
		if _, taken := l.byName[name]; taken {
			continue
		}
		l.assign(no, TierDrawn, name)
	}

	// Preset names join the catalog before any seat is checked, so a name
	// riding on an unusable seat key still joins it.
	for _, key := range sortedSeatKeys(l.presetTable) {
		added = l.appendName(l.presetTable[key], added)
	}
	for _, key := range sortedSeatKeys(l.presetTable) {
		name := l.presetTable[key]
		no, err := strconv.Atoi(key)
		if err != nil || !l.seatSet[no] {
			continue
		}
		if _, claimed := l.bySeat[no]; claimed {
			continue
		}
		if _, taken := l.byName[name]; taken {
			continue
		}
		l.assign(no, TierPreset, name)
	}

	return added
}

// CommitDraw is the terminal write of a draw cycle. It reports false and
// leaves the ledger untouched if the seat is not in the unresolved pool or
// the name is already resolved; callers validate membership beforehand.
func (l *Ledger) CommitDraw(seatNo int, name string) bool {
	if !l.seatSet[seatNo] || name == "" {
		return false
	}
	if _, claimed := l.bySeat[seatNo]; claimed {
		return false
	}
	if _, taken := l.byName[name]; taken {
		return false
	}
	l.assign(seatNo, TierDrawn, name)
	return true
}

// ApplyPreset assigns name to seatNo on the preset tier. A previous preset
// on the same seat is cleared first (a seat holds one name at a time).
func (l *Ledger) ApplyPreset(seatNo int, name string) error {
	if err := l.editable(seatNo); err != nil {
		return err
	}
	if name == "" {
		return ErrNameRequired
	}
	if other, taken := l.byName[name]; taken && other != seatNo {
		return fmt.Errorf("%w: %s", ErrNameResolved, name)
	}
	if prev, ok := l.bySeat[seatNo]; ok {
		delete(l.byName, prev.Name)
	}
	l.assign(seatNo, TierPreset, name)
	l.presetTable[strconv.Itoa(seatNo)] = name
	l.appendName(name, nil)
	return nil
}

// ClearPreset removes a preset assignment, returning the seat and its name
// to the unresolved pools. Clearing a seat with no preset is a no-op.
func (l *Ledger) ClearPreset(seatNo int) error {
	if err := l.editable(seatNo); err != nil {
		return err
	}
	if prev, ok := l.bySeat[seatNo]; ok {
		delete(l.byName, prev.Name)
		delete(l.bySeat, seatNo)
	}
	delete(l.presetTable, strconv.Itoa(seatNo))
	return nil
}

// Reset wipes the drawn tier only and replays fixed and preset from their
// stored source tables.
func (l *Ledger) Reset() []string {
	for no, a := range l.bySeat {
		if a.Tier == TierDrawn {
			delete(l.byName, a.Name)
			delete(l.bySeat, no)
		}
	}
	return l.Initialize(l.fixedTable, l.presetTable)
}

// ImportPreset replaces the whole preset tier with table. Before any write
// it validates that no imported seat collides with a fixed or drawn seat;
// one collision rejects the entire import. Keys that are not numeric or not
// in the catalog are skipped, not errors (their names still join the
// catalog, as on any initialize).
func (l *Ledger) ImportPreset(table map[string]string) ([]string, error) {
	for _, key := range sortedSeatKeys(table) {
		no, err := strconv.Atoi(key)
		if err != nil || !l.seatSet[no] {
			continue
		}
		switch l.bySeat[no].Tier {
		case TierFixed:
			return nil, fmt.Errorf("%w: seat %d is fixed", ErrImportCollision, no)
		case TierDrawn:
			return nil, fmt.Errorf("%w: seat %d is drawn", ErrImportCollision, no)
		}
	}
	return l.Initialize(l.fixedTable, table), nil
}

// ExportPreset returns the live preset table, excluding any seat that is
// also fixed as a safety net.
func (l *Ledger) ExportPreset() map[string]string {
	out := make(map[string]string, len(l.presetTable))
	for key, name := range l.presetTable {
		if no, err := strconv.Atoi(key); err == nil && l.bySeat[no].Tier == TierFixed {
			continue
		}
		out[key] = name
	}
	return out
}

// UnresolvedSeats returns the seats not claimed by any tier, in layout order.
func (l *Ledger) UnresolvedSeats() []int {
	var pool []int
	for _, no := range l.seats {
		if _, claimed := l.bySeat[no]; !claimed {
			pool = append(pool, no)
		}
	}
	return pool
}

// UnresolvedNames returns the catalog names not claimed by any tier, in
// catalog order.
func (l *Ledger) UnresolvedNames() []string {
	var free []string
	for _, n := range l.names {
		if _, taken := l.byName[n]; !taken {
			free = append(free, n)
		}
	}
	return free
}

// AssignedNames returns the union of names across all tiers.
func (l *Ledger) AssignedNames() map[string]bool {
	out := make(map[string]bool, len(l.byName))
	for n := range l.byName {
		out[n] = true
	}
	return out
}

// Assignment returns the seat's current assignment; the zero value means
// the seat is unresolved or unknown.
func (l *Ledger) Assignment(seatNo int) Assignment {
	return l.bySeat[seatNo]
}

func (l *Ledger) Seats() []int {
	return append([]int(nil), l.seats...)
}

func (l *Ledger) Names() []string {
	return append([]string(nil), l.names...)
}

// Counts returns the per-tier assignment counts.
func (l *Ledger) Counts() (fixed, preset, drawn int) {
	for _, a := range l.bySeat {
		switch a.Tier {
		case TierFixed:
			fixed++
		case TierPreset:
			preset++
		case TierDrawn:
			drawn++
		}
	}
	return
}

func (l *Ledger) editable(seatNo int) error {
	if !l.seatSet[seatNo] {
		return fmt.Errorf("%w: %d", ErrUnknownSeat, seatNo)
	}
	switch l.bySeat[seatNo].Tier {
	case TierFixed:
		return fmt.Errorf("%w: seat %d", ErrSeatFixed, seatNo)
	case TierDrawn:
		return fmt.Errorf("%w: seat %d", ErrSeatDrawn, seatNo)
	}
	return nil
}

func (l *Ledger) assign(seatNo int, tier Tier, name string) {
	l.bySeat[seatNo] = Assignment{Tier: tier, Name: name}
	l.byName[name] = seatNo
}

func (l *Ledger) appendName(name string, added []string) []string {
	if name == "" || l.nameSet[name] {
		return added
	}
	l.nameSet[name] = true
	l.names = append(l.names, name)
	return append(added, name)
}

func copyTable(t map[string]string) map[string]string {
	out := make(map[string]string, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// sortedSeatKeys orders table keys numerically where possible so table
// application is deterministic; non-numeric keys sort after, lexically.
func sortedSeatKeys(table map[string]string) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aerr := strconv.Atoi(keys[i])
		b, berr := strconv.Atoi(keys[j])
		switch {
		case aerr == nil && berr == nil:
			return a < b
		case aerr == nil:
			return true
		case berr == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

func sortedSeats(m map[int]string) []int {
	nos := make([]int, 0, len(m))
	for no := range m {
		nos = append(nos, no)
	}
	sort.Ints(nos)
	return nos
}
