package texttest

import "github.com/stretchr/testify/require"

// Asserter is the assertion sink of a TextTester. IsTrue must fail the
// current test when condition is false and do nothing otherwise.
type Asserter interface {
	IsTrue(label string, condition bool)
}

// AsserterFunc adapts a function to the Asserter interface.
type AsserterFunc func(label string, condition bool)

// IsTrue implements Asserter.
func (f AsserterFunc) IsTrue(label string, condition bool) {
	f(label, condition)
}

// RequireAsserter fails tests through testify's require package, so a false
// condition stops the test with FailNow.
type RequireAsserter struct {
	t require.TestingT
}

// NewAsserter returns a RequireAsserter reporting to t, usually a *testing.T.
func NewAsserter(t require.TestingT) *RequireAsserter {
	return &RequireAsserter{t: t}
}

// IsTrue implements Asserter.
func (a *RequireAsserter) IsTrue(label string, condition bool) {
	if h, ok := a.t.(interface{ Helper() }); ok {
		h.Helper()
	}
	require.True(a.t, condition, label)
}
