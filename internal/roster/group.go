package roster

import (
	"slices"
	"strconv"
	"strings"
)

// Reserved sort keys that pin non-age divisions to the end of the listing.
const (
	keyUnknownOther  = 9997
	keyUnknownFemale = 9998
	keyPro           = 9999
)

// Entry is one athlete's appearance on a roster.
type Entry struct {
	Name        string
	RawDivision string
	Division    string
	Special     bool
}

// DivisionGroup holds the entries of one canonical division in feed order.
type DivisionGroup struct {
	Division string
	Entries  []Entry
}

// Count returns the number of entries in the group.
func (g DivisionGroup) Count() int {
	return len(g.Entries)
}

// Group buckets entries by canonical division, keeping first-seen order of
// both groups and entries.
func Group(entries []Entry) []DivisionGroup {
	index := make(map[string]int)
	var groups []DivisionGroup
	for _, e := range entries {
		i, ok := index[e.Division]
		if !ok {
			i = len(groups)
			index[e.Division] = i
			groups = append(groups, DivisionGroup{Division: e.Division})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// SortKey orders divisions for display: ascending age, female just ahead of
// the male group of the same age, then unnumbered divisions, then pro.
func SortKey(division string) float64 {
	if strings.Contains(strings.ToLower(division), "pro") {
		return keyPro
	}
	female := containsWordFold(splitWords(division), "female")

	runs := digitRuns(division)
	if len(runs) == 0 {
		if female {
			return keyUnknownFemale
		}
		return keyUnknownOther
	}
	last := runs[len(runs)-1]
	base, err := strconv.Atoi(division[last.start:last.end])
	if err != nil {
		// digit run too long for an int
		base = keyUnknownOther
	}
	if female {
		return float64(base) - 0.1
	}
	return float64(base)
}

// SortGroups sorts groups in place by SortKey; ties keep their order.
func SortGroups(groups []DivisionGroup) {
	slices.SortStableFunc(groups, func(a, b DivisionGroup) int {
		ka, kb := SortKey(a.Division), SortKey(b.Division)
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		}
		return 0
	})
}

// FilterByTag keeps entries whose raw division label contains pattern as a
// whole word or phrase, ignoring case. An empty pattern keeps everything.
func FilterByTag(entries []Entry, pattern string) []Entry {
	pattern = strings.TrimSpace(pattern)
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if pattern == "" || matchWordFold(e.RawDivision, pattern) {
			out = append(out, e)
		}
	}
	return out
}

func matchWordFold(text, pattern string) bool {
	for i := indexFold(text, pattern, 0); i >= 0; i = indexFold(text, pattern, i+1) {
		end := i + len(pattern)
		leftOK := !isWordByte(pattern[0]) || !isWordAt(text, i-1)
		rightOK := !isWordByte(pattern[len(pattern)-1]) || !isWordAt(text, end)
		if leftOK && rightOK {
			return true
		}
	}
	return false
}
