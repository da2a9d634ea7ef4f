package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Progress renders a single-line "label: n/total (p%)" counter, rewritten in
// place with a carriage return. It is safe for concurrent use, so parallel
// probes can report completion directly.
type Progress struct {
	mu        sync.Mutex
	writer    io.Writer
	label     string
	total     int
	current   int
	lastWidth int
}

// NewProgress creates a counter for total steps.
//
// Parameters:
//   - w: Destination, normally os.Stderr
//   - total: Number of steps; a zero total never renders
//   - label: Text before the counter (e.g. "Collecting")
func NewProgress(w io.Writer, total int, label string) *Progress {
	return &Progress{writer: w, total: total, label: label}
}

// Increment advances the counter by one step and redraws it.
func (p *Progress) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current < p.total {
		p.current++
	}
	p.render()
}

// Clear erases the counter line so regular output can follow.
func (p *Progress) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastWidth > 0 {
		_, _ = fmt.Fprintf(p.writer, "\r%s\r", strings.Repeat(" ", p.lastWidth))
		p.lastWidth = 0
	}
}

// render draws the counter; callers hold p.mu.
func (p *Progress) render() {
	if p.total == 0 {
		return
	}
	line := fmt.Sprintf("%s: %d/%d (%.0f%%)", p.label, p.current, p.total, float64(p.current)/float64(p.total)*100)
	if pad := p.lastWidth - len(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	p.lastWidth = len(line)
	_, _ = fmt.Fprint(p.writer, "\r"+line)

	// CI terminals buffer stderr otherwise.
	if f, ok := p.writer.(*os.File); ok {
		_ = f.Sync()
	}
}
