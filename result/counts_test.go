package result_test

import (
	"encoding/json"
	"testing"

	"github.com/hiq-lab/qhal/result"
)

func TestCounts_AddAccumulates(t *testing.T) {
	c := result.NewCounts()
	c.Add("101", 3)
	c.Add("101", 2)

	if got := c.Get("101"); got != 5 {
		t.Errorf(`Get("101") = %d, want 5`, got)
	}
	if got := c.TotalShots(); got != 5 {
		t.Errorf("TotalShots() = %d, want 5", got)
	}
}

func TestCounts_GetAbsent(t *testing.T) {
	c := result.NewCounts()
	c.Add("00", 500)
	if got := c.Get("01"); got != 0 {
		t.Errorf(`Get("01") = %d, want 0`, got)
	}
}

func TestCounts_Probabilities(t *testing.T) {
	c := result.FromMap(map[string]uint64{
		"00": 300,
		"01": 200,
		"10": 300,
		"11": 200,
	})

	probs := c.Probabilities()
	if diff := probs["00"] - 0.3; diff > 1e-10 || diff < -1e-10 {
		t.Errorf(`probs["00"] = %v, want 0.3`, probs["00"])
	}
	if diff := probs["01"] - 0.2; diff > 1e-10 || diff < -1e-10 {
		t.Errorf(`probs["01"] = %v, want 0.2`, probs["01"])
	}
}

func TestCounts_ProbabilitiesEmpty(t *testing.T) {
	c := result.NewCounts()
	probs := c.Probabilities()
	if len(probs) != 0 {
		t.Errorf("Probabilities() on empty counts = %v, want empty map", probs)
	}
}

func TestCounts_MostFrequent(t *testing.T) {
	c := result.FromMap(map[string]uint64{"00": 100, "11": 900})
	bitstring, count, ok := c.MostFrequent()
	if !ok {
		t.Fatal("MostFrequent() reported empty counts")
	}
	if bitstring != "11" || count != 900 {
		t.Errorf("MostFrequent() = (%q, %d), want (\"11\", 900)", bitstring, count)
	}
}

func TestCounts_MostFrequent_TieBreak(t *testing.T) {
	// Equal counts resolve to the lexicographically smallest bitstring.
	c := result.FromMap(map[string]uint64{"10": 500, "01": 500, "11": 499})
	bitstring, _, ok := c.MostFrequent()
	if !ok {
		t.Fatal("MostFrequent() reported empty counts")
	}
	if bitstring != "01" {
		t.Errorf("tie-break chose %q, want \"01\"", bitstring)
	}
}

func TestCounts_MostFrequent_Empty(t *testing.T) {
	c := result.NewCounts()
	if _, _, ok := c.MostFrequent(); ok {
		t.Error("MostFrequent() on empty counts should report not found")
	}
}

func TestCounts_Sorted(t *testing.T) {
	c := result.FromMap(map[string]uint64{"00": 10, "11": 30, "01": 20, "10": 20})
	entries := c.Sorted()
	want := []result.Entry{
		{Bitstring: "11", Count: 30},
		{Bitstring: "01", Count: 20},
		{Bitstring: "10", Count: 20},
		{Bitstring: "00", Count: 10},
	}
	if len(entries) != len(want) {
		t.Fatalf("Sorted() returned %d entries, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("Sorted()[%d] = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestCounts_JSONRoundTrip(t *testing.T) {
	c := result.FromMap(map[string]uint64{"011": 2, "100": 7})
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	decoded := result.NewCounts()
	if err := json.Unmarshal(data, decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Get("011") != 2 || decoded.Get("100") != 7 {
		t.Errorf("round-trip lost entries: %v", decoded.Map())
	}
}

func TestCounts_MapIsCopy(t *testing.T) {
	c := result.FromMap(map[string]uint64{"0": 1})
	m := c.Map()
	m["0"] = 99
	if c.Get("0") != 1 {
		t.Error("Map() must return a copy, not the internal map")
	}
}
