package util

import (
	"io"
	"sync/atomic"
)

// CountingWriter wraps a writer, counts bytes pushed through it and updates
// progress for bytes written.
type CountingWriter struct {
	writer   io.Writer
	written  atomic.Int64
	progress *ProgressLogger
}

func NewCountingWriter(w io.Writer, progress *ProgressLogger) *CountingWriter {
	return &CountingWriter{writer: w, progress: progress}
}

func (cw *CountingWriter) Write(p []byte) (int, error) {
	n, err := cw.writer.Write(p)
	if n > 0 {
		cw.written.Add(int64(n))
		if cw.progress != nil {
			cw.progress.UpdateBytes(int64(n))
		}
	}
	return n, err
}

// BytesWritten reports the total bytes pushed through the writer so far.
func (cw *CountingWriter) BytesWritten() int64 {
	return cw.written.Load()
}
