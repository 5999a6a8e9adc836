package rng

import (
	"errors"
	"strconv"
	"strings"
)

// ErrBadDiceExpr reports a malformed dice notation expression.
var ErrBadDiceExpr = errors.New("bad dice expression")

// Roll evaluates a dice notation expression of the form "NdS", "NdS+K" or
// "NdS-K" (e.g. "2d6+3"). N defaults to 1 when omitted ("d8" rolls one
// eight-sided die). Each die is an inclusive RandomInt(1, S) draw, so the
// result is deterministic for a given seed and call order.
func (r *RNG) Roll(expr string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	di := strings.IndexByte(s, 'd')
	if di < 0 {
		return 0, ErrBadDiceExpr
	}

	count := 1
	if di > 0 {
		n, err := strconv.Atoi(s[:di])
		if err != nil || n < 1 {
			return 0, ErrBadDiceExpr
		}
		count = n
	}

	rest := s[di+1:]
	mod := 0
	if i := strings.IndexAny(rest, "+-"); i >= 0 {
		m, err := strconv.Atoi(rest[i:])
		if err != nil {
			return 0, ErrBadDiceExpr
		}
		mod = m
		rest = rest[:i]
	}

	sides, err := strconv.Atoi(rest)
	if err != nil || sides < 2 {
		return 0, ErrBadDiceExpr
	}

	total := mod
	for i := 0; i < count; i++ {
		total += r.RandomInt(1, sides)
	}
	return total, nil
}
