package renderer

import (
	"fmt"
	"io"
	"sync"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// WriterLogger implements core.Logger on top of an io.Writer. Calls are
// serialized so the progress bar and the render loop can share one writer.
type WriterLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (wl *WriterLogger) Printf(format string, args ...interface{}) {
	wl.mu.Lock()
	defer wl.mu.Unlock()
	fmt.Fprintf(wl.w, format, args...)
}

// NewWriterLogger creates a logger that writes to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &WriterLogger{w: w}
}

// discardLogger drops everything; used when no logger is supplied
type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}
