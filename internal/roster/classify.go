package roster

import "strings"

const (
	// Unknown is the division assigned to rows whose label cannot be classified.
	Unknown = "Unknown"

	// DefaultSideTag marks staff entries in the production feeds.
	DefaultSideTag = "employee"
)

// Classification is the outcome of classifying one division label.
type Classification struct {
	Division string
	Special  bool
}

// Classifier collapses free-text division labels into canonical divisions.
type Classifier struct {
	sideTag string
}

// NewClassifier returns a classifier that flags labels containing sideTag.
// An empty sideTag disables side-tag detection.
func NewClassifier(sideTag string) *Classifier {
	return &Classifier{sideTag: strings.TrimSpace(sideTag)}
}

// Classify maps a label such as "605 NINJA 12+ pro male Employee" to its
// canonical division ("Male Pro") and side-tag flag.
func (c *Classifier) Classify(label string) Classification {
	text := strings.TrimSpace(label)
	if text == "" {
		return Classification{Division: Unknown}
	}

	var special bool
	if c.sideTag != "" && indexFold(text, c.sideTag, 0) >= 0 {
		special = true
		text = strings.Join(strings.Fields(removeFold(text, c.sideTag)), " ")
	}

	words := splitWords(text)
	gender := detectGender(words)
	if containsWordFold(words, "pro") {
		return Classification{Division: gender + " Pro", Special: special}
	}

	age := detectAgeGroup(text)
	if gender == Unknown && age == Unknown {
		return Classification{Division: Unknown, Special: special}
	}
	return Classification{Division: gender + " " + age, Special: special}
}

func detectGender(words []string) string {
	for _, w := range words {
		switch {
		case strings.EqualFold(w, "female"):
			return "Female"
		case strings.EqualFold(w, "male"):
			return "Male"
		}
	}
	return Unknown
}

// detectAgeGroup tries, in order: "NN-NN", "N+", "NU", bare "N". Within a
// pattern the last occurrence in the label wins, since feeds prefix labels
// with event codes and put the age near the end.
func detectAgeGroup(text string) string {
	runs := digitRuns(text)

	for i := len(runs) - 1; i > 0; i-- {
		prev, cur := runs[i-1], runs[i]
		if prev.end < len(text) && text[prev.end] == '-' && cur.start == prev.end+1 {
			return text[prev.start:cur.end]
		}
	}
	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		if r.end < len(text) && text[r.end] == '+' {
			return text[r.start:r.end] + "+"
		}
	}
	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		if r.end < len(text) && (text[r.end] == 'u' || text[r.end] == 'U') && !isWordAt(text, r.end+1) {
			return text[r.start:r.end] + "U"
		}
	}
	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		if !isWordAt(text, r.start-1) && !isWordAt(text, r.end) {
			return text[r.start:r.end]
		}
	}
	return Unknown
}

type span struct {
	start, end int
}

func digitRuns(s string) []span {
	var runs []span
	for i := 0; i < len(s); {
		if !isDigit(s[i]) {
			i++
			continue
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		runs = append(runs, span{start: start, end: i})
	}
	return runs
}

// splitWords returns the maximal runs of word characters ([A-Za-z0-9_]).
func splitWords(s string) []string {
	var words []string
	for i := 0; i < len(s); {
		if !isWordByte(s[i]) {
			i++
			continue
		}
		start := i
		for i < len(s) && isWordByte(s[i]) {
			i++
		}
		words = append(words, s[start:i])
	}
	return words
}

func containsWordFold(words []string, target string) bool {
	for _, w := range words {
		if strings.EqualFold(w, target) {
			return true
		}
	}
	return false
}

func isWordAt(s string, i int) bool {
	return i >= 0 && i < len(s) && isWordByte(s[i])
}

func isWordByte(b byte) bool {
	return b == '_' || isDigit(b) || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func indexFold(s, substr string, from int) int {
	if substr == "" {
		return -1
	}
	for i := from; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}

func removeFold(s, substr string) string {
	var b strings.Builder
	last := 0
	for i := indexFold(s, substr, 0); i >= 0; i = indexFold(s, substr, last) {
		b.WriteString(s[last:i])
		b.WriteByte(' ')
		last = i + len(substr)
	}
	b.WriteString(s[last:])
	return b.String()
}
