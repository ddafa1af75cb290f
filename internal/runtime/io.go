package runtime

import (
	"bufio"
	"io"
	"os"
)

// LineReader yields input lines one at a time, each line keeping its trailing
// terminator when present. The final line of a stream without a terminator is
// still yielded.
type LineReader struct {
	r *bufio.Reader
}

// NewLineReader creates a LineReader over r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Next returns the next line. At end of input it returns io.EOF; any other
// error is an I/O fault and propagates unmodified.
func (lr *LineReader) Next() (string, error) {
	line, err := lr.r.ReadString('\n')
	if err == io.EOF && line != "" {
		// Unterminated final line.
		return line, nil
	}
	if err != nil {
		return "", err
	}
	return line, nil
}

// InPlaceFile supports the in-place edit use case: the original file is
// renamed to a ~ backup, input is read from the backup, and output is written
// to a fresh file at the original path. Read source and write sink are
// distinct storage for the whole run; the caller must Close only after the
// run has fully drained the input.
type InPlaceFile struct {
	src *os.File
	dst *os.File
}

// OpenInPlace prepares path for in-place editing.
func OpenInPlace(path string) (*InPlaceFile, error) {
	backup := path + "~"
	if err := os.Rename(path, backup); err != nil {
		return nil, err
	}
	src, err := os.Open(backup)
	if err != nil {
		return nil, err
	}
	dst, err := os.Create(path)
	if err != nil {
		src.Close()
		return nil, err
	}
	return &InPlaceFile{src: src, dst: dst}, nil
}

// Reader returns the read side (the backup file).
func (f *InPlaceFile) Reader() io.Reader {
	return f.src
}

// Writer returns the write side (the new file at the original path).
func (f *InPlaceFile) Writer() io.Writer {
	return f.dst
}

// Close closes both sides, reporting the first error.
func (f *InPlaceFile) Close() error {
	rerr := f.src.Close()
	werr := f.dst.Close()
	if werr != nil {
		return werr
	}
	return rerr
}
