// label.go provides the monotonic counter used to name string-literal data
// objects during one compilation.
//
// The teacher's own util.label runs a channel-request/response label
// server so that -t-many parallel worker goroutines can share one counter
// safely. This compiler never parallelizes lowering (spec.md section 5),
// so a plain counter suffices; it must be constructed fresh per
// compilation (spec.md section 5: "never shared across compilations").

package util

import "fmt"

// StringCounter hands out unique, increasing suffixes for string-literal
// data object names within one compilation.
type StringCounter struct {
	next uint64
}

// NewStringCounter returns a counter starting at zero.
func NewStringCounter() *StringCounter {
	return &StringCounter{}
}

// Next returns the next label in the form "string<N>" and advances the
// counter. The index is never reused.
func (c *StringCounter) Next() string {
	label := fmt.Sprintf("string%d", c.next)
	c.next++
	return label
}
