// Package dice holds the five-die roll and the random source that
// produces it.
package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	NumDice  = 5
	NumFaces = 6
)

var (
	ErrInvalidRoll = errors.New("invalid roll")
	ErrTooManyKept = errors.New("too many dice kept")
)

// Roll is an ordered set of five dice. It is a value type; rerolling
// produces a new Roll.
type Roll [NumDice]int

// FromSlice builds a Roll from exactly five face values.
func FromSlice(vals []int) (Roll, error) {
	var r Roll
	if len(vals) != NumDice {
		return r, fmt.Errorf("%w: need %d dice, got %d", ErrInvalidRoll, NumDice, len(vals))
	}
	for i, v := range vals {
		if !ValidFace(v) {
			return r, fmt.Errorf("%w: face %d out of range", ErrInvalidRoll, v)
		}
		r[i] = v
	}
	return r, nil
}

// Parse reads a roll such as "3 3 4 5 6", "3,3,4,5,6" or "33456".
func Parse(s string) (Roll, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ','
	})
	if len(fields) == 1 && len(fields[0]) == NumDice {
		fields = strings.Split(fields[0], "")
	}
	vals := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Roll{}, fmt.Errorf("%w: %q", ErrInvalidRoll, f)
		}
		vals = append(vals, v)
	}
	return FromSlice(vals)
}

func ValidFace(v int) bool {
	return v >= 1 && v <= NumFaces
}

func (r Roll) Sum() int {
	s := 0
	for _, v := range r {
		s += v
	}
	return s
}

// Counts returns how many dice show each face, indexed by face value.
// Index 0 is unused; values outside [1, 6] are not counted.
func (r Roll) Counts() [NumFaces + 1]int {
	var c [NumFaces + 1]int
	for _, v := range r {
		if ValidFace(v) {
			c[v]++
		}
	}
	return c
}

func (r Roll) Values() []int {
	out := make([]int, NumDice)
	copy(out, r[:])
	return out
}

func (r Roll) String() string {
	var sb strings.Builder
	for i, v := range r {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}
