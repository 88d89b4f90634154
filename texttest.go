// Package texttest compares an expected text with an actual text inside tests.
//
// The comparison is line based. A TextTester diffs the two texts, lets a
// filter and any number of listeners reclassify known-acceptable differences
// (timestamps, generated IDs) as unchanged, and then decides equality:
//
//	tt := texttest.New(texttest.NewAsserter(t), texttest.WithLogger(t))
//	tt.ArrangeExpectedText(want)
//	tt.ArrangeActualText(got)
//	tt.SetFilter(texttest.IgnoreMatching(regexp.MustCompile(`^generated at `)))
//	tt.AssertActualTextEqualsExpectedText()
//
// When the texts differ the tester logs a report with one marker-prefixed
// line per diff line before handing the result to the Asserter.
package texttest

// ChangeType classifies a single line of a diff.
type ChangeType int

const (
	// Unchanged indicates the line is the same in both texts.
	Unchanged ChangeType = iota
	// Inserted indicates the line only exists in the actual text.
	Inserted
	// Deleted indicates the line only exists in the expected text.
	Deleted
	// Modified indicates the line differs at an aligned position.
	Modified
	// Imaginary is alignment padding for a line with no counterpart.
	Imaginary
)

// String returns a human-readable representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case Unchanged:
		return "Unchanged"
	case Inserted:
		return "Inserted"
	case Deleted:
		return "Deleted"
	case Modified:
		return "Modified"
	case Imaginary:
		return "Imaginary"
	default:
		return "Unknown"
	}
}

// DiffLine is one line of a computed diff.
//
// The text is fixed at construction. Type may be changed afterwards, which is
// how filters and listeners mark a difference as acceptable.
type DiffLine struct {
	Type     ChangeType
	Position int // 1-based line number in the source text, 0 for imaginary lines

	text string
}

// NewDiffLine returns a DiffLine with the given text and classification.
func NewDiffLine(text string, typ ChangeType, position int) DiffLine {
	return DiffLine{Type: typ, Position: position, text: text}
}

// Text returns the content of the line without its line terminator.
func (l DiffLine) Text() string {
	return l.text
}

// DiffResult is the ordered, line-aligned comparison of two texts.
//
// A DiffResult is always passed around as a pointer. The filter and every
// difference listener of a TextTester see the same value, so a
// reclassification made by one stage is visible to the next.
type DiffResult struct {
	Lines []DiffLine
}

// Len returns the number of lines in the diff.
func (r *DiffResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Lines)
}

// HasDifferences returns true if any line is classified as something other
// than Unchanged. Imaginary lines count as differences.
func (r *DiffResult) HasDifferences() bool {
	if r == nil {
		return false
	}
	for _, l := range r.Lines {
		if l.Type != Unchanged {
			return true
		}
	}
	return false
}

// Count returns the number of lines with the given classification.
func (r *DiffResult) Count(typ ChangeType) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, l := range r.Lines {
		if l.Type == typ {
			n++
		}
	}
	return n
}
