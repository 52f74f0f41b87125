package wildcard

import "sort"

// NaturalLess compares two strings the way §4.6 requires: runs of digits
// sort by numeric value, everything else sorts by code point. This is the
// ordering that makes "file1", "file2", "file10" come out in that order
// instead of lexicographic "file1", "file10", "file2".
func NaturalLess(a, b string) bool {
	ar, br := []rune(a), []rune(b)
	i, j := 0, 0

	for i < len(ar) && j < len(br) {
		ca, cb := ar[i], br[j]

		if isDigit(ca) && isDigit(cb) {
			na, ni := scanNumber(ar, i)
			nb, nj := scanNumber(br, j)
			if na != nb {
				return na < nb
			}
			i, j = ni, nj
			continue
		}

		if ca != cb {
			return ca < cb
		}
		i++
		j++
	}

	return len(ar)-i < len(br)-j
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// scanNumber reads a run of digits starting at i and returns its value
// (as a big-enough int for filenames) and the index just past it.
func scanNumber(runes []rune, i int) (int, int) {
	n := 0
	for i < len(runes) && isDigit(runes[i]) {
		n = n*10 + int(runes[i]-'0')
		i++
	}
	return n, i
}

// SortNatural sorts s in place using NaturalLess.
func SortNatural(s []string) {
	sort.Slice(s, func(i, j int) bool { return NaturalLess(s[i], s[j]) })
}
