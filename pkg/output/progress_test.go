package output

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestProgress tests the behavior of Progress.
//
// It verifies:
//   - Each increment redraws the counter with a percentage
//   - The counter never passes the total
//   - Clear erases the line
func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 2, "Collecting")

	p.Increment()
	assert.Equal(t, "\rCollecting: 1/2 (50%)", buf.String())

	p.Increment()
	p.Increment()
	assert.Equal(t, "\rCollecting: 1/2 (50%)\rCollecting: 2/2 (100%)\rCollecting: 2/2 (100%)", buf.String())

	buf.Reset()
	p.Clear()
	assert.Equal(t, "\r"+strings.Repeat(" ", 22)+"\r", buf.String())
}

// TestProgress_Empty tests that a counter with no steps writes nothing.
func TestProgress_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 0, "Collecting")
	p.Increment()
	p.Clear()
	assert.Empty(t, buf.String())
}

// TestProgress_Concurrent tests concurrent increments.
func TestProgress_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 50, "Collecting")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Increment()
		}()
	}
	wg.Wait()
	assert.True(t, strings.HasSuffix(buf.String(), "\rCollecting: 50/50 (100%)"))
}
