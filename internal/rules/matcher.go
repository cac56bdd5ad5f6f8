package rules

import (
	"sort"
	"unicode/utf8"
)

// MatchInput evaluates input rules in precedence order against the
// lookback subject and returns the first rule whose match ends exactly at
// the cursor, or nil. Empty matches never fire.
func MatchInput(subject string, rules []*Rule) *Match {
	for _, r := range rules {
		idx := r.Find.FindStringSubmatchIndex(subject)
		if idx == nil {
			continue
		}
		if idx[0] == idx[1] || idx[1] != len(subject) {
			continue
		}
		return &Match{Rule: r, Submatch: idx}
	}
	return nil
}

// MatchPaste evaluates paste rules in precedence order against the pasted
// text. Each rule is scanned globally left to right; a match is kept when
// it does not overlap a range already claimed by an earlier rule (or an
// earlier match of the same rule). Results are ordered by subject offset.
func MatchPaste(subject string, rules []*Rule) []*Match {
	var claimed [][2]int
	var out []*Match
	for _, r := range rules {
		for _, idx := range r.Find.FindAllStringSubmatchIndex(subject, -1) {
			if idx[0] == idx[1] {
				continue
			}
			if r.GuardRune != 0 && followedByRune(subject, idx[1], r.GuardRune) {
				continue
			}
			if overlapsClaimed(claimed, idx[0], idx[1]) {
				continue
			}
			claimed = append(claimed, [2]int{idx[0], idx[1]})
			out = append(out, &Match{Rule: r, Submatch: idx})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start() < out[j].Start() })
	return out
}

func followedByRune(s string, off int, r rune) bool {
	if off >= len(s) {
		return false
	}
	next, _ := utf8.DecodeRuneInString(s[off:])
	return next == r
}

func overlapsClaimed(claimed [][2]int, start, end int) bool {
	for _, c := range claimed {
		if start < c[1] && end > c[0] {
			return true
		}
	}
	return false
}
