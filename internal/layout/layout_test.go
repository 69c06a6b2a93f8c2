package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLayout(t *testing.T) {
	raw := []byte(`[[1,2,null,3],[4,null,"aisle",5,6],[7]]`)
	l, err := ParseLayout(raw)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, l.Seats)
	assert.Equal(t, 5, l.MaxCols)
	assert.Equal(t, [][]int{{1, 2, 0, 3}, {4, 0, 0, 5, 6}, {7}}, l.Rows,
		"null and non-numeric cells are gaps")
}

func TestParseLayout_Errors(t *testing.T) {
	_, err := ParseLayout([]byte(`{"not":"rows"}`))
	assert.ErrorIs(t, err, ErrBadLayout)

	_, err = ParseLayout([]byte(`[[null,null]]`))
	assert.ErrorIs(t, err, ErrNoSeats)
}

func TestParseLayout_DuplicatesKeepFirst(t *testing.T) {
	l, err := ParseLayout([]byte(`[[1,2],[2,3]]`))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, l.Seats)
}

func TestLoadDir_PrefersNamesByMode(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "seat_layout.json", `[[1,2,3]]`)
	write(t, dir, "names.json", `["Old"]`)
	write(t, dir, "names_by_mode.json", `{"male":["A","Both"],"female":["B","Both"]}`)

	d, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "Both", "A"}, d.Names,
		"union of mode lists in label order, de-duplicated")
	assert.NotNil(t, d.NamesByMode)
}

func TestLoadDir_FallsBackToFlatNames(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "seat_layout.json", `[[1,2,3]]`)
	write(t, dir, "names.json", `["A","B"]`)

	d, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, d.Names)
	assert.Nil(t, d.NamesByMode)
	assert.Empty(t, d.Preset, "missing preset file is not an error")
}

func TestLoadDir_RequiresLayout(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "names.json", `["A"]`)

	_, err := LoadDir(dir)
	require.Error(t, err)
}

func TestLoadDir_ReadsPreset(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "seat_layout.json", `[[1,2,3]]`)
	write(t, dir, "names.json", `["A"]`)
	write(t, dir, "seat_preset.json", `{"2":"A"}`)

	d, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"2": "A"}, d.Preset)
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
