package renderer

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Progress counts finished work units. It is safe for concurrent use.
type Progress struct {
	done  atomic.Int64
	total int64
}

// NewProgress creates a counter expecting total units
func NewProgress(total int64) *Progress {
	return &Progress{total: total}
}

// Step marks one unit finished
func (p *Progress) Step() {
	p.done.Add(1)
}

// Reset clears the finished count
func (p *Progress) Reset() {
	p.done.Store(0)
}

// Done returns the number of finished units
func (p *Progress) Done() int64 {
	return p.done.Load()
}

// Total returns the expected number of units
func (p *Progress) Total() int64 {
	return p.total
}

// ProgressSink receives periodic progress snapshots
type ProgressSink interface {
	Update(done, total int64)
}

// Report pushes snapshots to sink every interval until all units are done or
// ctx is cancelled. The final snapshot is always delivered. Report blocks, so
// callers normally run it on its own goroutine.
func (p *Progress) Report(ctx context.Context, interval time.Duration, sink ProgressSink) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		done := p.Done()
		if done >= p.total {
			sink.Update(done, p.total)
			return
		}
		sink.Update(done, p.total)

		select {
		case <-ctx.Done():
			sink.Update(p.Done(), p.total)
			return
		case <-ticker.C:
		}
	}
}

// barParts are the partial-cell glyphs, in eighths
var barParts = []string{"", "▏", "▎", "▍", "▌", "▋", "▊", "▉"}

// ConsoleProgressBar draws a single-line text progress bar with elapsed and
// expected time
type ConsoleProgressBar struct {
	logger   core.Logger
	width    int
	start    time.Time
	finished bool
	now      func() time.Time
}

// NewConsoleProgressBar creates a bar that writes through logger
func NewConsoleProgressBar(logger core.Logger) *ConsoleProgressBar {
	return &ConsoleProgressBar{
		logger: logger,
		width:  50,
		start:  time.Now(),
		now:    time.Now,
	}
}

// Update redraws the bar. Once the bar has reached 100% it prints nothing more.
func (b *ConsoleProgressBar) Update(done, total int64) {
	if b.finished {
		return
	}

	pct := 1.0
	if total > 0 {
		pct = min(max(float64(done)/float64(total), 0), 1)
	}
	elapsed := b.now().Sub(b.start).Seconds()

	if done >= total {
		b.finished = true
		b.logger.Printf("\r|%s| (%s)\n", strings.Repeat("█", b.width), FormatDuration(elapsed))
		return
	}

	segments := int(pct * float64(b.width) * 8)
	whole, partial := segments/8, segments%8
	bar := strings.Repeat("█", whole) + barParts[partial]
	blanks := b.width - whole
	if partial > 0 {
		blanks--
	}

	expected := 0.0
	if pct > 0 {
		expected = elapsed / pct
	}
	b.logger.Printf("\r|%s%s|%4.0f%% (%s/%s)", bar, strings.Repeat(" ", blanks), pct*100,
		FormatDuration(elapsed), FormatDuration(expected))
}

// FormatDuration renders seconds compactly: 4.2s, 37s, 3m5s, 1h2m3s, 2d1h0m9s
func FormatDuration(seconds float64) string {
	s := uint64(seconds)
	m := s / 60
	h := m / 60
	d := h / 24

	switch {
	case seconds < 10:
		return fmt.Sprintf("%.1fs", seconds)
	case m == 0:
		return fmt.Sprintf("%ds", s%60)
	case h == 0:
		return fmt.Sprintf("%dm%ds", m%60, s%60)
	case d == 0:
		return fmt.Sprintf("%dh%dm%ds", h%24, m%60, s%60)
	default:
		return fmt.Sprintf("%dd%dh%dm%ds", d, h%24, m%60, s%60)
	}
}
