package layout

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrBadLayout = errors.New("seat layout must be an array of rows")
var ErrBadNames = errors.New("name catalog must be an array of strings")
var ErrBadNamesByMode = errors.New("per-mode name catalog must map mode labels to name arrays")
var ErrBadPreset = errors.New("preset table must map seat numbers to names")
var ErrNoSeats = errors.New("seat layout contains no seats")

// Layout is the parsed seating grid. Rows keep the original cell order for
// grid rendering; a zero cell is an aisle gap, never a seat.
type Layout struct {
	Rows    [][]int `json:"rows"`
	Seats   []int   `json:"seats"`
	MaxCols int     `json:"max_cols"`
}

// ParseLayout parses the seat_layout.json feed: an array of rows where each
// cell is a seat number or null. Non-numeric cells carry no identity and are
// treated as gaps, same as null. Duplicate seat numbers keep their first
// occurrence only.
func ParseLayout(data []byte) (*Layout, error) {
	var raw [][]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadLayout, err)
	}

	l := &Layout{}
	seen := map[int]bool{}
	for _, row := range raw {
		cells := make([]int, 0, len(row))
		for _, v := range row {
			n, ok := v.(float64)
			if !ok || n != float64(int(n)) || int(n) <= 0 {
				cells = append(cells, 0)
				continue
			}
			no := int(n)
			cells = append(cells, no)
			if !seen[no] {
				seen[no] = true
				l.Seats = append(l.Seats, no)
			}
		}
		if len(cells) > l.MaxCols {
			l.MaxCols = len(cells)
		}
		l.Rows = append(l.Rows, cells)
	}
	if len(l.Seats) == 0 {
		return nil, ErrNoSeats
	}
	return l, nil
}

// ParseNames parses a flat names.json catalog.
func ParseNames(data []byte) ([]string, error) {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadNames, err)
	}
	return names, nil
}

// ParseNamesByMode parses names_by_mode.json, e.g. {"male": [...], "female": [...]}.
func ParseNamesByMode(data []byte) (map[string][]string, error) {
	var byMode map[string][]string
	if err := json.Unmarshal(data, &byMode); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadNamesByMode, err)
	}
	return byMode, nil
}

// ParsePreset parses a seat_preset.json table. Keys are seat numbers as
// strings; validity of the seats themselves is the ledger's concern.
func ParsePreset(data []byte) (map[string]string, error) {
	var preset map[string]string
	if err := json.Unmarshal(data, &preset); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPreset, err)
	}
	return preset, nil
}

// UnionNames flattens a per-mode catalog into one de-duplicated list,
// preserving first-seen order across modes in the given label order.
func UnionNames(byMode map[string][]string, order []string) []string {
	seen := map[string]bool{}
	var all []string
	for _, mode := range order {
		for _, n := range byMode[mode] {
			if !seen[n] {
				seen[n] = true
				all = append(all, n)
			}
		}
	}
	return all
}
