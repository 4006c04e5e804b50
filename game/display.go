package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/domino14/yahtzee/scoring"
)

// ToDisplayText renders the sheet as a two-column table.
func (s *Sheet) ToDisplayText() string {
	var sb strings.Builder
	for _, c := range scoring.AllCategories() {
		score, ok := s.Score(c)
		str := "-"
		if ok {
			str = strconv.Itoa(score)
		}
		fmt.Fprintf(&sb, "%-20s %s\n", c, str)
		if c == scoring.Sixes {
			fmt.Fprintf(&sb, "%-20s %d\n", "Upper Section Total", s.UpperSectionTotal())
			bonus := 0
			if s.HasBonus() {
				bonus = scoring.UpperBonus
			}
			fmt.Fprintf(&sb, "%-20s %d\n", "Upper Section Bonus", bonus)
		}
	}
	sb.WriteString(strings.Repeat("-", 24) + "\n")
	fmt.Fprintf(&sb, "%-20s %d\n", "Total Score", s.TotalScore())
	return sb.String()
}

// ToDisplayText renders a turn on one line, e.g.
// "3: 2 5 6 6 1 | keep 6 6 -> 6 6 3 6 4 | Three of a Kind 18".
func (t *TurnRecord) ToDisplayText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%2d: %v", t.Turn, t.Rolls[0])
	for i, kept := range t.Kept {
		fmt.Fprintf(&sb, " | keep %v -> %v", strings.Trim(fmt.Sprint(kept), "[]"), t.Rolls[i+1])
	}
	fmt.Fprintf(&sb, " | %v %d", t.Category, t.Score)
	return sb.String()
}
