package dice

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Expression is a parsed dice expression such as "3d6+70" or "4d6kh3".
//
// Invariant: Count >= 1, Sides >= 2, 0 <= KeepHighest < Count.
type Expression struct {
	Raw      string
	Count    int
	Sides    int
	Modifier int
	// KeepHighest, when > 0, sums only the N highest dice.
	KeepHighest int
}

// Parse parses "[N]dS[khK][+M|-M]". The count defaults to 1.
//
// Postcondition: Returns a valid Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}
	countStr, rest, ok := strings.Cut(s, "d")
	if !ok {
		return Expression{}, fmt.Errorf("dice: missing 'd' in expression %q", expr)
	}

	e := Expression{Raw: expr, Count: 1}
	if countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil || n < 1 {
			return Expression{}, fmt.Errorf("dice: die count in %q must be a number >= 1", expr)
		}
		e.Count = n
	}

	// The modifier starts at the first sign after the sides digits.
	if i := strings.IndexAny(rest, "+-"); i > 0 {
		m, err := strconv.Atoi(rest[i:])
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", expr, err)
		}
		e.Modifier = m
		rest = rest[:i]
	}

	sidesStr, khStr, hasKH := strings.Cut(rest, "kh")
	sides, err := strconv.Atoi(sidesStr)
	if err != nil || sides < 2 || sidesStr[0] == '+' {
		return Expression{}, fmt.Errorf("dice: die sides in %q must be a number >= 2", expr)
	}
	e.Sides = sides

	if hasKH {
		kh, err := strconv.Atoi(khStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid kh value in %q: %w", expr, err)
		}
		if kh <= 0 || kh >= e.Count {
			return Expression{}, fmt.Errorf("dice: kh value %d must be > 0 and < count %d in %q", kh, e.Count, expr)
		}
		e.KeepHighest = kh
	}
	return e, nil
}

// MustParse parses expr and panics on error.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}

func (e Expression) kept() int {
	if e.KeepHighest > 0 {
		return e.KeepHighest
	}
	return e.Count
}

// Min returns the lowest total the expression can produce.
func (e Expression) Min() int { return e.kept() + e.Modifier }

// Max returns the highest total the expression can produce.
func (e Expression) Max() int { return e.kept()*e.Sides + e.Modifier }

// Roll rolls every die and returns the kept sum plus the modifier.
//
// Precondition: e came from Parse; src must be non-nil.
// Postcondition: Min() <= result <= Max().
func (e Expression) Roll(src Source) int {
	rolled := make([]int, e.Count)
	for i := range rolled {
		rolled[i] = src.Intn(e.Sides) + 1
	}
	if e.KeepHighest > 0 {
		slices.Sort(rolled)
		rolled = rolled[len(rolled)-e.KeepHighest:]
	}
	total := e.Modifier
	for _, v := range rolled {
		total += v
	}
	return total
}

// String returns the expression as written.
func (e Expression) String() string { return e.Raw }
