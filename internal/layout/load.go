package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Data is everything the session boots from: the seat universe, the name
// catalog (optionally partitioned by mode) and the initial preset table.
type Data struct {
	Layout      *Layout
	Names       []string
	NamesByMode map[string][]string
	Preset      map[string]string
}

// LoadDir reads the data files from dir. seat_layout.json is required.
// names_by_mode.json takes precedence over names.json when present; the
// global catalog is then the union of the mode lists. seat_preset.json and
// names_by_mode.json are optional and may simply be absent.
func LoadDir(dir string) (*Data, error) {
	layoutRaw, err := os.ReadFile(filepath.Join(dir, "seat_layout.json"))
	if err != nil {
		return nil, fmt.Errorf("read seat_layout.json: %w", err)
	}
	l, err := ParseLayout(layoutRaw)
	if err != nil {
		return nil, err
	}

	d := &Data{Layout: l, Preset: map[string]string{}}

	if raw, err := os.ReadFile(filepath.Join(dir, "names_by_mode.json")); err == nil {
		byMode, err := ParseNamesByMode(raw)
		if err != nil {
			return nil, err
		}
		d.NamesByMode = byMode
		labels := make([]string, 0, len(byMode))
		for label := range byMode {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		d.Names = UnionNames(byMode, labels)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read names_by_mode.json: %w", err)
	}

	if d.NamesByMode == nil {
		raw, err := os.ReadFile(filepath.Join(dir, "names.json"))
		if err != nil {
			return nil, fmt.Errorf("read names.json: %w", err)
		}
		if d.Names, err = ParseNames(raw); err != nil {
			return nil, err
		}
	}

	if raw, err := os.ReadFile(filepath.Join(dir, "seat_preset.json")); err == nil {
		if d.Preset, err = ParsePreset(raw); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read seat_preset.json: %w", err)
	}

	return d, nil
}
