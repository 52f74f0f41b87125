// Package slicing implements the `[...]` index/range syntax shared by the
// variable stage and the command-substitution stage (§4.4/§4.7 of the
// specification). It knows nothing about sentinels or variables; it only
// turns a slice expression and a collection length into a 1-based index
// sequence.
package slicing

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/constraints"
)

// Error reports a malformed slice expression, with the byte offset of the
// offending token relative to the start of the original input.
type Error struct {
	Offset int
	Msg    string
}

func (e *Error) Error() string { return e.Msg }

// clamp restricts v to [lo, hi], generic over any ordered type; the range
// endpoint arithmetic below is its only caller.
func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Result is a parsed slice: the 1-based indices it selects, in the order
// they should be emitted (a reversed range yields indices high-to-low),
// and the byte offset in the source string just past the closing `]`.
type Result struct {
	Indices []int
	End     int
}

// Parse parses a slice expression beginning at src[start] (which must be
// '[') against a collection of the given length, honoring the rules of
// §4.4: whitespace and INTERNAL_SEP are permitted as token separators;
// tokens are signed integers or `A..B` ranges; negative indices count from
// the end; 0 is always a literal-position error; out-of-range single
// indices are silently dropped, range endpoints are clamped.
//
// isSep lets the caller accept its own sentinels as whitespace: the
// variable stage passes one that accepts INTERNAL_SEP (left beside the
// value of a nested `$v[$i]` reference) and BRACE_SPACE (what the unescape
// stage makes of a user space in `$v[1 2]`).
func Parse(src string, start int, length int, isSep func(r rune) bool) (Result, error) {
	if start >= len(src) || src[start] != '[' {
		return Result{}, &Error{Offset: start, Msg: "expected '['"}
	}

	i := start + 1
	var indices []int

	for {
		i = skipSep(src, i, isSep)
		if i >= len(src) {
			return Result{}, &Error{Offset: i, Msg: "unterminated slice"}
		}
		if src[i] == ']' {
			i++
			break
		}

		tokStart := i
		n1, consumed, err := parseSignedInt(src, i)
		if err != nil {
			return Result{}, err
		}
		i = consumed

		if strings.HasPrefix(src[i:], "..") {
			i += 2
			n2Start := i
			n2, consumed2, err := parseSignedInt(src, i)
			if err != nil {
				return Result{}, err
			}
			i = consumed2

			rangeIdx, err := rangeIndices(n1, n2, tokStart, n2Start, length)
			if err != nil {
				return Result{}, err
			}
			indices = append(indices, rangeIdx...)
		} else {
			idx, ok, err := singleIndex(n1, tokStart, length)
			if err != nil {
				return Result{}, err
			}
			if ok {
				indices = append(indices, idx)
			}
		}

		i = skipSep(src, i, isSep)
		if i < len(src) && src[i] == ']' {
			i++
			break
		}
	}

	return Result{Indices: indices, End: i}, nil
}

func skipSep(src string, i int, isSep func(r rune) bool) int {
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		if r == ' ' || r == '\t' || (isSep != nil && isSep(r)) {
			i += size
			continue
		}
		break
	}
	return i
}

// parseSignedInt reads an optional sign followed by a run of digits,
// returning the value and the offset just past it.
func parseSignedInt(src string, i int) (int, int, error) {
	start := i
	if i < len(src) && (src[i] == '-' || src[i] == '+') {
		i++
	}
	digitsStart := i
	for i < len(src) && src[i] >= '0' && src[i] <= '9' {
		i++
	}
	if i == digitsStart {
		return 0, i, &Error{Offset: start, Msg: "expected a number in slice expression"}
	}
	n, err := strconv.Atoi(src[start:i])
	if err != nil {
		return 0, i, &Error{Offset: start, Msg: fmt.Sprintf("invalid number %q in slice expression", src[start:i])}
	}
	return n, i, nil
}

// resolve converts a possibly-negative 1-based literal index into its
// resolved 1-based form, where -1 is the last element.
func resolve(n, length int) int {
	if n < 0 {
		return length + n + 1
	}
	return n
}

func singleIndex(n, offset, length int) (idx int, ok bool, err error) {
	if n == 0 {
		return 0, false, &Error{Offset: offset, Msg: "index value '0' is invalid"}
	}
	r := resolve(n, length)
	if r < 1 || r > length {
		return 0, false, nil
	}
	return r, true, nil
}

// rangeIndices implements the `A..B` half of §4.4: resolve negative
// endpoints, drop the range entirely if both ends fall outside the
// collection, force direction by whichever endpoint was written negative
// (so a short array doesn't collapse `[2..-1]` into a single element), and
// otherwise clamp each end to the collection bounds before walking with a
// ±1 step.
func rangeIndices(n1, n2, off1, off2, length int) ([]int, error) {
	if n1 == 0 {
		return nil, &Error{Offset: off1, Msg: "index value '0' is invalid"}
	}
	if n2 == 0 {
		return nil, &Error{Offset: off2, Msg: "index value '0' is invalid"}
	}

	r1 := resolve(n1, length)
	r2 := resolve(n2, length)

	if (r1 < 1 || r1 > length) && (r2 < 1 || r2 > length) {
		return nil, nil
	}

	n1Neg := n1 < 0
	n2Neg := n2 < 0

	var ascending bool
	if n1Neg != n2Neg {
		// Exactly one endpoint was written negative: direction is forced
		// by which one, instead of by the resolved values (which a short
		// array could clamp into the wrong relative order and collapse
		// `[2..-1]`-style ranges).
		ascending = !n1Neg
	} else {
		ascending = r2 >= r1
	}

	r1 = clamp(r1, 1, length)
	r2 = clamp(r2, 1, length)

	lo, hi := r1, r2
	if lo > hi {
		lo, hi = hi, lo
	}

	if ascending {
		return walk(lo, hi), nil
	}
	return walk(hi, lo), nil
}

func walk(from, to int) []int {
	if from <= to {
		out := make([]int, 0, to-from+1)
		for i := from; i <= to; i++ {
			out = append(out, i)
		}
		return out
	}
	out := make([]int, 0, from-to+1)
	for i := from; i >= to; i-- {
		out = append(out, i)
	}
	return out
}
