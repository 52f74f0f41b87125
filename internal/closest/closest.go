// Package closest finds the closest match to a misspelled name among a set
// of known candidates, for "did you mean" diagnostics in the fishexpand
// CLI. It has no role in the expansion core itself: a missing variable
// there is not an error (§4.3), so there is nothing to suggest a fix for.
package closest

// Levenshtein returns the edit distance between two strings.
func Levenshtein(str, tgt string) int {
	if len(str) == 0 {
		return len(tgt)
	}
	if len(tgt) == 0 {
		return len(str)
	}

	dists := make([][]int, len(str)+1)
	for i := range dists {
		dists[i] = make([]int, len(tgt)+1)
		dists[i][0] = i
	}
	for j := 0; j <= len(tgt); j++ {
		dists[0][j] = j
	}

	for sidx, sc := range str {
		for tidx, tc := range tgt {
			if sc == tc {
				dists[sidx+1][tidx+1] = dists[sidx][tidx]
				continue
			}
			dists[sidx+1][tidx+1] = dists[sidx][tidx] + 1
			if dists[sidx+1][tidx]+1 < dists[sidx+1][tidx+1] {
				dists[sidx+1][tidx+1] = dists[sidx+1][tidx] + 1
			}
			if dists[sidx][tidx+1]+1 < dists[sidx+1][tidx+1] {
				dists[sidx+1][tidx+1] = dists[sidx][tidx+1] + 1
			}
		}
	}

	return dists[len(str)][len(tgt)]
}

// Choice returns the candidate in choices with the smallest edit distance
// to name, and that distance. It returns ("", 0) for an empty choices.
func Choice(name string, choices []string) (string, int) {
	if len(choices) == 0 {
		return "", 0
	}

	best := -1
	bestDist := -1

	for i, c := range choices {
		d := Levenshtein(name, c)
		if best < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}

	return choices[best], bestDist
}
