package mode

import (
	"reflect"
	"testing"
)

func twoModes() Config {
	return Config{
		Ranges: map[string]Range{
			"male":   {Min: 1, Max: 11},
			"female": {Min: 12, Max: 21},
		},
		Names: map[string][]string{
			"male":   {"A", "B", "Both"},
			"female": {"C", "D", "Both"},
		},
		Default: "male",
	}
}

func TestEligibleSeats_RangeFilter(t *testing.T) {
	c := twoModes()
	unresolved := []int{1, 5, 11, 12, 20, 25}

	cases := []struct {
		mode string
		want []int
	}{
		{mode: "male", want: []int{1, 5, 11}},
		{mode: "female", want: []int{12, 20}},
		{mode: "banquet", want: nil},
	}
	for _, tc := range cases {
		t.Run(tc.mode, func(t *testing.T) {
			got := c.EligibleSeats(tc.mode, unresolved)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEligibleNames_NetsGlobally(t *testing.T) {
	c := twoModes()
	catalog := []string{"A", "B", "Both", "C", "D"}

	// "Both" was resolved while the male mode was active. It must be gone
	// from the female list too, even though the assignment happened under
	// another mode.
	assigned := map[string]bool{"Both": true, "A": true}

	male := c.EligibleNames("male", catalog, assigned)
	if !reflect.DeepEqual(male, []string{"B"}) {
		t.Fatalf("male: got %v", male)
	}
	female := c.EligibleNames("female", catalog, assigned)
	if !reflect.DeepEqual(female, []string{"C", "D"}) {
		t.Fatalf("female: got %v", female)
	}
}

func TestCandidates_FallBackToCatalog(t *testing.T) {
	c := Config{Ranges: map[string]Range{"all": {Min: 1, Max: 99}}}
	catalog := []string{"A", "B"}
	if got := c.Candidates("all", catalog); !reflect.DeepEqual(got, catalog) {
		t.Fatalf("got %v, want full catalog", got)
	}
}

func TestEmptyConfig_ExposesEverything(t *testing.T) {
	var c Config
	if !c.Valid("") {
		t.Fatalf("empty label must be valid without configured modes")
	}
	if c.Valid("male") {
		t.Fatalf("named modes are invalid without configured ranges")
	}
	unresolved := []int{3, 1, 2}
	if got := c.EligibleSeats("", unresolved); !reflect.DeepEqual(got, unresolved) {
		t.Fatalf("got %v, want the whole pool", got)
	}
}
