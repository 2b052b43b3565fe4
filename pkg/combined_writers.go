package pkg

import (
	"fmt"
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans each write out to all of its writers. A failing writer does
// not stop the remaining ones; the failures are combined into the returned error.
type CombinedWriter struct {
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		writers: writers,
	}
}

// Write reports len(p) as long as at least one writer took the whole buffer.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var err error
	anyWritten := false
	for i, w := range cw.writers {
		n, werr := w.Write(p)
		if werr == nil && n < len(p) {
			werr = io.ErrShortWrite
		}
		if werr != nil {
			err = multierr.Append(err, fmt.Errorf("writer %d: %w", i, werr))
			continue
		}
		anyWritten = true
	}

	if !anyWritten {
		return 0, err
	}
	return len(p), err
}
