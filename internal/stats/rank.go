package stats

import "sort"

// TopTags returns a new mapping holding only the limit entries of freq with
// the highest counts. Ties are broken by lexical tag order so the result is
// deterministic regardless of map iteration order. Fewer than limit distinct
// tags are returned as-is.
func TopTags(freq map[string]int, limit int) map[string]int {
	type tagCount struct {
		tag   string
		count int
	}

	ranked := make([]tagCount, 0, len(freq))
	for tag, count := range freq {
		ranked = append(ranked, tagCount{tag: tag, count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}

		return ranked[i].tag < ranked[j].tag
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	top := make(map[string]int, len(ranked))
	for _, tc := range ranked {
		top[tc.tag] = tc.count
	}

	return top
}
