package texttest

import "regexp"

// Filter reclassifies acceptable differences in place, typically by setting
// a line's Type to Unchanged. A TextTester calls its filter only when the
// diff has differences, before any difference listener runs.
type Filter func(diff *DiffResult)

// IgnoreMatching returns a Filter that marks every changed line whose text
// matches re as Unchanged.
func IgnoreMatching(re *regexp.Regexp) Filter {
	return func(diff *DiffResult) {
		for i := range diff.Lines {
			l := &diff.Lines[i]
			if l.Type != Unchanged && re.MatchString(l.Text()) {
				l.Type = Unchanged
			}
		}
	}
}

// IgnoreLines returns a Filter that marks the lines at the given zero-based
// indices of the diff as Unchanged. Indices outside the diff are ignored.
func IgnoreLines(indices ...int) Filter {
	return func(diff *DiffResult) {
		for _, i := range indices {
			if i >= 0 && i < len(diff.Lines) {
				diff.Lines[i].Type = Unchanged
			}
		}
	}
}

// ChainFilters returns a Filter that runs filters in order. Nil filters are
// skipped.
func ChainFilters(filters ...Filter) Filter {
	return func(diff *DiffResult) {
		for _, f := range filters {
			if f != nil {
				f(diff)
			}
		}
	}
}
