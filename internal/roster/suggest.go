package roster

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the participant name closest to name, or "" when nothing is
// within typo distance. Ties go to the earlier name.
func Suggest(name string, names []string) string {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return ""
	}
	best := ""
	bestDist := -1
	for _, cand := range names {
		c := strings.ToLower(cand)
		dist := levenshtein.ComputeDistance(needle, c)
		if dist > levenshteinLimit(len(c)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
