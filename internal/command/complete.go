package command

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

// Complete returns the names matching pattern, best match first. Ties
// keep alphabetical order. An empty pattern matches every name.
func Complete(pattern string, names []string) []string {
	if pattern == "" {
		out := append([]string(nil), names...)
		sort.Strings(out)
		return out
	}
	matches := fuzzy.Find(pattern, names)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Str < matches[j].Str
	})
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}
