// Package roster turns a raw athlete roster export into division groups
// ready for display.
//
// The pipeline is parse, classify, group, sort, then an optional tag filter.
// Every step is a pure function of its input; a Normalizer holds only its
// configuration and may be shared between goroutines.
package roster

const (
	DefaultNameColumn     = "Name"
	DefaultDivisionColumn = "Division"
)

// Options configures a Normalizer. Zero values fall back to the defaults.
type Options struct {
	NameColumn     string
	DivisionColumn string
	SideTag        string
}

// Result is the display-ready roster.
type Result struct {
	UpdatedAt    string
	HasUpdatedAt bool
	Groups       []DivisionGroup
}

// Total returns the number of entries across all groups.
func (r Result) Total() int {
	n := 0
	for _, g := range r.Groups {
		n += g.Count()
	}
	return n
}

// Filter returns a copy of the result holding only entries whose raw label
// matches pattern. Groups left empty are dropped; order is preserved.
func (r Result) Filter(pattern string) Result {
	out := Result{UpdatedAt: r.UpdatedAt, HasUpdatedAt: r.HasUpdatedAt}
	for _, g := range r.Groups {
		kept := FilterByTag(g.Entries, pattern)
		if len(kept) == 0 {
			continue
		}
		out.Groups = append(out.Groups, DivisionGroup{Division: g.Division, Entries: kept})
	}
	return out
}

// Normalizer runs the full roster pipeline.
type Normalizer struct {
	nameColumn     string
	divisionColumn string
	classifier     *Classifier
}

// NewNormalizer builds a Normalizer from opts.
func NewNormalizer(opts Options) *Normalizer {
	if opts.NameColumn == "" {
		opts.NameColumn = DefaultNameColumn
	}
	if opts.DivisionColumn == "" {
		opts.DivisionColumn = DefaultDivisionColumn
	}
	if opts.SideTag == "" {
		opts.SideTag = DefaultSideTag
	}
	return &Normalizer{
		nameColumn:     opts.NameColumn,
		divisionColumn: opts.DivisionColumn,
		classifier:     NewClassifier(opts.SideTag),
	}
}

// Normalize parses raw and returns its entries grouped by canonical
// division in display order. Malformed input degrades to empty or Unknown
// values; it never fails.
func (n *Normalizer) Normalize(raw string) Result {
	feed := ParseFeed(raw)
	result := Result{UpdatedAt: feed.UpdatedAt, HasUpdatedAt: feed.HasUpdatedAt}

	entries := make([]Entry, 0, len(feed.Rows))
	for _, row := range feed.Rows {
		label := row.Get(n.divisionColumn)
		class := n.classifier.Classify(label)
		entries = append(entries, Entry{
			Name:        row.Get(n.nameColumn),
			RawDivision: label,
			Division:    class.Division,
			Special:     class.Special,
		})
	}

	result.Groups = Group(entries)
	SortGroups(result.Groups)
	return result
}
