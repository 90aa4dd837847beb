package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	got := c.Cost(1_000_000, 500_000)
	if math.Abs(got-0.45) > 1e-9 {
		t.Errorf("Cost = %v, want 0.45", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Error("expected nil for unknown model")
	}
}

func TestFriendlyNamesArePriced(t *testing.T) {
	for _, m := range []map[string]string{anthropicAliases, openaiAliases, geminiAliases} {
		for name, id := range m {
			if LookupCost(id) == nil {
				t.Errorf("%s -> %s has no pricing", name, id)
			}
		}
	}
}
