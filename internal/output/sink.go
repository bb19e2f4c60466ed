package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/erd/internal/services/clipboard"
)

// LineSink receives rendered output lines. Flush runs after the last line of
// an invocation and completes any deferred delivery.
type LineSink interface {
	WriteLine(line string) error
	Flush() error
}

type writerSink struct {
	writer io.Writer
}

// NewWriterSink returns a sink that prints each line to writer immediately.
func NewWriterSink(writer io.Writer) LineSink {
	return &writerSink{writer: writer}
}

func (sink *writerSink) WriteLine(line string) error {
	_, writeError := fmt.Fprintln(sink.writer, line)
	return writeError
}

func (sink *writerSink) Flush() error {
	return nil
}

type clipboardSink struct {
	copier  clipboard.Copier
	builder strings.Builder
}

// NewClipboardSink returns a sink that buffers every line and copies the
// assembled document to the system clipboard on Flush.
func NewClipboardSink(copier clipboard.Copier) LineSink {
	return &clipboardSink{copier: copier}
}

func (sink *clipboardSink) WriteLine(line string) error {
	sink.builder.WriteString(line)
	sink.builder.WriteByte('\n')
	return nil
}

func (sink *clipboardSink) Flush() error {
	return sink.copier.Copy(sink.builder.String())
}

type teeSink struct {
	sinks []LineSink
}

// NewTeeSink fans every line and the final flush out to all given sinks.
func NewTeeSink(sinks ...LineSink) LineSink {
	return &teeSink{sinks: sinks}
}

func (sink *teeSink) WriteLine(line string) error {
	for _, downstream := range sink.sinks {
		if writeError := downstream.WriteLine(line); writeError != nil {
			return writeError
		}
	}
	return nil
}

func (sink *teeSink) Flush() error {
	for _, downstream := range sink.sinks {
		if flushError := downstream.Flush(); flushError != nil {
			return flushError
		}
	}
	return nil
}
