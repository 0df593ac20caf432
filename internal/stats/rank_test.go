package stats_test

import (
	"fmt"
	"testing"

	"github.com/knowbaseai/knowbase/internal/stats"
)

func TestTopTags_SizeBound(t *testing.T) {
	t.Parallel()

	freq := make(map[string]int)
	for i := 0; i < 50; i++ {
		freq[fmt.Sprintf("tag%02d", i)] = i + 1
	}

	top := stats.TopTags(freq, 20)

	if len(top) != 20 {
		t.Fatalf("expected 20 tags, got %d", len(top))
	}

	// The 20 highest counts are 31..50; nothing below may appear.
	for tag, count := range top {
		if count < 31 {
			t.Errorf("tag %q with count %d included while higher-count tags excluded", tag, count)
		}
	}
}

func TestTopTags_FewerThanLimit(t *testing.T) {
	t.Parallel()

	freq := map[string]int{"a": 3, "b": 1}
	top := stats.TopTags(freq, 20)

	if len(top) != 2 || top["a"] != 3 || top["b"] != 1 {
		t.Errorf("unexpected result: %v", top)
	}
}

func TestTopTags_DeterministicTieBreak(t *testing.T) {
	t.Parallel()

	// Five tags tied at the cutoff; lexical order decides who survives.
	freq := map[string]int{"e": 1, "d": 1, "c": 1, "b": 1, "a": 1, "top": 5}

	for i := 0; i < 10; i++ {
		top := stats.TopTags(freq, 3)

		if len(top) != 3 {
			t.Fatalf("expected 3 tags, got %d", len(top))
		}

		if top["top"] != 5 || top["a"] != 1 || top["b"] != 1 {
			t.Fatalf("tie-break not deterministic, got %v", top)
		}
	}
}

func TestTopTags_Empty(t *testing.T) {
	t.Parallel()

	top := stats.TopTags(nil, 20)

	if len(top) != 0 {
		t.Errorf("expected empty map, got %v", top)
	}
}
