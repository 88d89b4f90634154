package texttest

import (
	"strings"
	"unicode/utf8"

	"github.com/dacharyc/diffx"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Differ computes a line-level diff between an expected and an actual text.
type Differ interface {
	Diff(expected, actual string) *DiffResult
}

// Layout controls how a run of changed lines is laid out in a DiffResult.
type Layout int

const (
	// InlineLayout emits every deleted line of a run, then every inserted line.
	InlineLayout Layout = iota
	// AlignedLayout pairs deleted and inserted lines by position. Pairs become
	// Modified lines, surplus inserted lines stay Inserted and surplus deleted
	// lines become Imaginary padding.
	AlignedLayout
)

// String returns the name used for the layout in config files and flags.
func (l Layout) String() string {
	switch l {
	case InlineLayout:
		return "inline"
	case AlignedLayout:
		return "aligned"
	default:
		return "unknown"
	}
}

// Options configures line comparison.
type Options struct {
	// IgnoreCase, when true, compares lines case-insensitively.
	// The original case is preserved in the output.
	IgnoreCase bool

	// IgnoreWhitespace, when true, ignores leading and trailing whitespace
	// when comparing lines. The original text is preserved in the output.
	IgnoreWhitespace bool

	// Layout selects how runs of changes are laid out.
	Layout Layout
}

// DefaultOptions returns Options with default settings.
func DefaultOptions() Options {
	return Options{Layout: InlineLayout}
}

// SplitLines splits text on "\r\n", "\r" and "\n". A single trailing line
// terminator does not produce an empty final line, and the empty string has
// no lines at all.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// comparisonKeys returns the strings lines are matched on.
func comparisonKeys(lines []string, opts Options) []string {
	if !opts.IgnoreCase && !opts.IgnoreWhitespace {
		return lines
	}
	keys := make([]string, len(lines))
	for i, l := range lines {
		if opts.IgnoreWhitespace {
			l = strings.TrimSpace(l)
		}
		if opts.IgnoreCase {
			l = strings.ToLower(l)
		}
		keys[i] = l
	}
	return keys
}

// lineOp is one step of a line alignment. Equal steps consume a line from
// both sides, Delete steps one expected line, Insert steps one actual line.
type lineOp struct {
	typ    ChangeType // Unchanged, Deleted or Inserted
	oldIdx int
	newIdx int
}

// HistogramDiffer diffs lines with the histogram algorithm, which avoids
// spurious matches on common lines such as blank lines and braces.
type HistogramDiffer struct {
	Options Options
}

// NewHistogramDiffer returns a HistogramDiffer using opts.
func NewHistogramDiffer(opts Options) *HistogramDiffer {
	return &HistogramDiffer{Options: opts}
}

// Diff implements Differ.
func (d *HistogramDiffer) Diff(expected, actual string) *DiffResult {
	lines1 := SplitLines(expected)
	lines2 := SplitLines(actual)

	ops := diffx.DiffHistogram(comparisonKeys(lines1, d.Options), comparisonKeys(lines2, d.Options))
	return buildResult(diffxOpsToLineOps(ops), lines1, lines2, d.Options.Layout)
}

// diffxOpsToLineOps converts diffx DiffOps to line steps.
func diffxOpsToLineOps(ops []diffx.DiffOp) []lineOp {
	var result []lineOp

	for _, op := range ops {
		switch op.Type {
		case diffx.Equal:
			for i := op.AStart; i < op.AEnd; i++ {
				result = append(result, lineOp{typ: Unchanged, oldIdx: i, newIdx: op.BStart + (i - op.AStart)})
			}
		case diffx.Delete:
			for i := op.AStart; i < op.AEnd; i++ {
				result = append(result, lineOp{typ: Deleted, oldIdx: i})
			}
		case diffx.Insert:
			for i := op.BStart; i < op.BEnd; i++ {
				result = append(result, lineOp{typ: Inserted, newIdx: i})
			}
		}
	}

	return result
}

// MyersDiffer diffs lines with the Myers algorithm from diff-match-patch.
type MyersDiffer struct {
	Options Options
}

// NewMyersDiffer returns a MyersDiffer using opts.
func NewMyersDiffer(opts Options) *MyersDiffer {
	return &MyersDiffer{Options: opts}
}

// Diff implements Differ.
func (d *MyersDiffer) Diff(expected, actual string) *DiffResult {
	lines1 := SplitLines(expected)
	lines2 := SplitLines(actual)

	dmp := diffmatchpatch.New()
	// Every line, the last one included, is terminated so that each maps to
	// exactly one rune.
	r1, r2, _ := dmp.DiffLinesToRunes(
		terminateLines(comparisonKeys(lines1, d.Options)),
		terminateLines(comparisonKeys(lines2, d.Options)),
	)
	diffs := dmp.DiffMainRunes(r1, r2, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	return buildResult(dmpDiffsToLineOps(diffs), lines1, lines2, d.Options.Layout)
}

func terminateLines(lines []string) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// dmpDiffsToLineOps converts rune-encoded line diffs to line steps. Each rune
// of a diff's text stands for one line.
func dmpDiffsToLineOps(diffs []diffmatchpatch.Diff) []lineOp {
	var result []lineOp
	oldIdx, newIdx := 0, 0

	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			for k := 0; k < n; k++ {
				result = append(result, lineOp{typ: Unchanged, oldIdx: oldIdx, newIdx: newIdx})
				oldIdx++
				newIdx++
			}
		case diffmatchpatch.DiffDelete:
			for k := 0; k < n; k++ {
				result = append(result, lineOp{typ: Deleted, oldIdx: oldIdx})
				oldIdx++
			}
		case diffmatchpatch.DiffInsert:
			for k := 0; k < n; k++ {
				result = append(result, lineOp{typ: Inserted, newIdx: newIdx})
				newIdx++
			}
		}
	}

	return result
}

// buildResult lays out line steps as a DiffResult. Within each run of
// changes the deleted lines are collected before the inserted lines, so the
// output does not depend on how the algorithm interleaves them.
func buildResult(ops []lineOp, lines1, lines2 []string, layout Layout) *DiffResult {
	result := &DiffResult{Lines: make([]DiffLine, 0, len(ops))}

	i := 0
	for i < len(ops) {
		op := ops[i]
		if op.typ == Unchanged {
			result.Lines = append(result.Lines, NewDiffLine(lines1[op.oldIdx], Unchanged, op.oldIdx+1))
			i++
			continue
		}

		// Collect the whole run of changes
		var deletes, inserts []int
		for i < len(ops) && ops[i].typ != Unchanged {
			if ops[i].typ == Deleted {
				deletes = append(deletes, ops[i].oldIdx)
			} else {
				inserts = append(inserts, ops[i].newIdx)
			}
			i++
		}

		if layout == AlignedLayout {
			result.Lines = appendAligned(result.Lines, deletes, inserts, lines1, lines2)
			continue
		}
		for _, d := range deletes {
			result.Lines = append(result.Lines, NewDiffLine(lines1[d], Deleted, d+1))
		}
		for _, n := range inserts {
			result.Lines = append(result.Lines, NewDiffLine(lines2[n], Inserted, n+1))
		}
	}

	return result
}

// appendAligned lays out one run of changes with positional pairing:
// deletes[k] pairs with inserts[k] for k < min(len(deletes), len(inserts)).
func appendAligned(out []DiffLine, deletes, inserts []int, lines1, lines2 []string) []DiffLine {
	paired := min(len(deletes), len(inserts))

	for k := 0; k < paired; k++ {
		out = append(out, NewDiffLine(lines2[inserts[k]], Modified, inserts[k]+1))
	}
	for _, n := range inserts[paired:] {
		out = append(out, NewDiffLine(lines2[n], Inserted, n+1))
	}
	for _, d := range deletes[paired:] {
		out = append(out, NewDiffLine(lines1[d], Imaginary, 0))
	}
	return out
}
