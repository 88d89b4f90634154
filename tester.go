package texttest

import (
	"io"
	"io/fs"
)

// Log messages written by a TextTester.
const (
	assertingMessage   = "Asserting actual and expected text are equal"
	differencesMessage = "The differences are: \n"
	expectedTextLabel  = "The expected text is: \n"
	actualTextLabel    = "The actual text is: \n"

	// AssertionLabel is the label passed to the Asserter, and also logged
	// once an assertion has passed.
	AssertionLabel = "The text is as expected"
)

// TextTester compares an expected text with an actual text.
//
// A TextTester is meant for one test scenario: arrange the texts, compare or
// assert, and inspect Differences if needed. It is not safe for concurrent
// use.
type TextTester struct {
	logger    Logger
	asserter  Asserter
	formatter Formatter
	differ    Differ
	filter    Filter

	expectedText string
	actualText   string
	differences  *DiffResult

	expectedChanged    listeners[string]
	actualChanged      listeners[string]
	differenceDetected listeners[*DiffResult]
}

// Option configures a TextTester.
type Option func(*TextTester)

// WithLogger sets the logger. The default logs to the console.
func WithLogger(l Logger) Option {
	return func(tt *TextTester) {
		tt.logger = l
	}
}

// WithFormatter sets the formatter used for difference reports. The default
// is DefaultFormatter.
func WithFormatter(f Formatter) Option {
	return func(tt *TextTester) {
		tt.formatter = f
	}
}

// WithDiffer sets the line differ. The default is a HistogramDiffer with
// DefaultOptions.
func WithDiffer(d Differ) Option {
	return func(tt *TextTester) {
		tt.differ = d
	}
}

// WithFilter sets the difference filter.
func WithFilter(f Filter) Option {
	return func(tt *TextTester) {
		tt.filter = f
	}
}

// New returns a TextTester that reports assertions to asserter, which must
// not be nil.
func New(asserter Asserter, opts ...Option) *TextTester {
	tt := &TextTester{
		logger:    NewConsoleLogger(nil),
		asserter:  asserter,
		formatter: DefaultFormatter{},
		differ:    NewHistogramDiffer(DefaultOptions()),
	}
	for _, opt := range opts {
		opt(tt)
	}
	return tt
}

// ExpectedText returns the arranged expected text.
func (tt *TextTester) ExpectedText() string {
	return tt.expectedText
}

// ActualText returns the arranged actual text.
func (tt *TextTester) ActualText() string {
	return tt.actualText
}

// Differences returns the diff of the most recent comparison, including any
// reclassification made by the filter and listeners. It is nil before the
// first comparison.
func (tt *TextTester) Differences() *DiffResult {
	return tt.differences
}

// SetFilter sets the difference filter. A nil filter removes it.
func (tt *TextTester) SetFilter(f Filter) {
	tt.filter = f
}

// OnExpectedTextChanged registers fn to be called with the new text whenever
// the expected text is arranged. While any such listener is registered the
// tester does not log the expected text itself. The returned func
// unregisters fn.
func (tt *TextTester) OnExpectedTextChanged(fn func(text string)) (remove func()) {
	return tt.expectedChanged.add(fn)
}

// OnActualTextChanged is the actual-text counterpart of OnExpectedTextChanged.
func (tt *TextTester) OnActualTextChanged(fn func(text string)) (remove func()) {
	return tt.actualChanged.add(fn)
}

// OnDifferenceDetected registers fn to be called when a comparison finds
// differences. It runs after the filter and receives the same DiffResult, so
// it sees the filter's reclassifications and may make its own. The returned
// func unregisters fn.
func (tt *TextTester) OnDifferenceDetected(fn func(diff *DiffResult)) (remove func()) {
	return tt.differenceDetected.add(fn)
}

// ArrangeExpectedText sets the expected text.
func (tt *TextTester) ArrangeExpectedText(text string) {
	tt.expectedText = text
	tt.textChanged(&tt.expectedChanged, expectedTextLabel, text)
}

// ArrangeExpectedTextFrom sets the expected text to the contents of r. On
// error the expected text is left unchanged.
func (tt *TextTester) ArrangeExpectedTextFrom(r io.Reader) error {
	text, err := readText(r)
	if err != nil {
		return err
	}
	tt.ArrangeExpectedText(text)
	return nil
}

// ArrangeExpectedTextResource sets the expected text to the contents of the
// named file in fsys, typically an embed.FS.
func (tt *TextTester) ArrangeExpectedTextResource(fsys fs.FS, name string) error {
	text, err := LoadResource(fsys, name)
	if err != nil {
		return err
	}
	tt.ArrangeExpectedText(text)
	return nil
}

// ArrangeActualText sets the actual text.
func (tt *TextTester) ArrangeActualText(text string) {
	tt.actualText = text
	tt.textChanged(&tt.actualChanged, actualTextLabel, text)
}

// ArrangeActualTextFrom sets the actual text to the contents of r. On error
// the actual text is left unchanged.
func (tt *TextTester) ArrangeActualTextFrom(r io.Reader) error {
	text, err := readText(r)
	if err != nil {
		return err
	}
	tt.ArrangeActualText(text)
	return nil
}

// ArrangeActualTextResource sets the actual text to the contents of the
// named file in fsys.
func (tt *TextTester) ArrangeActualTextResource(fsys fs.FS, name string) error {
	text, err := LoadResource(fsys, name)
	if err != nil {
		return err
	}
	tt.ArrangeActualText(text)
	return nil
}

// textChanged notifies the listeners of a change, or logs the new text when
// there are none. Never both.
func (tt *TextTester) textChanged(l *listeners[string], label, text string) {
	if !l.empty() {
		l.emit(text)
		return
	}
	tt.logger.Log()
	tt.logger.Log(label + text)
}

// IsEqual compares the arranged expected and actual texts.
func (tt *TextTester) IsEqual() bool {
	return tt.IsEqualTexts(tt.expectedText, tt.actualText)
}

// IsEqualTexts compares expected with actual and stores the diff as the
// current Differences. If there are differences the filter runs first, then
// each difference listener in order. The texts are equal when every line is
// Unchanged afterwards.
func (tt *TextTester) IsEqualTexts(expected, actual string) bool {
	tt.differences = tt.differ.Diff(expected, actual)

	if tt.differences.HasDifferences() {
		if tt.filter != nil {
			tt.filter(tt.differences)
		}
		tt.differenceDetected.emit(tt.differences)
	}

	return !tt.differences.HasDifferences()
}

// AssertActualTextEqualsExpectedText asserts that the arranged texts are
// equal. When they are not, the formatted differences are logged before the
// Asserter is called with AssertionLabel.
func (tt *TextTester) AssertActualTextEqualsExpectedText() {
	tt.logger.Log(assertingMessage)

	isEqual := tt.IsEqual()
	if !isEqual {
		report, err := tt.formatter.FormatDifferences(tt.differences)
		if err != nil {
			tt.logger.Log("Unable to format the differences:", err)
		} else {
			tt.logger.Log(differencesMessage + report)
		}
	}

	tt.asserter.IsTrue(AssertionLabel, isEqual)
	if isEqual {
		tt.logger.Log(AssertionLabel)
	}
}
