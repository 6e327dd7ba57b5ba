package source

import (
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/transform"

	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

// File streams lines from a file on disk.
type File struct {
	path string
	opts options
}

// NewFile creates a source reading the file at path.
// The file is not opened until iteration starts.
func NewFile(path string, opts ...Option) *File {
	return &File{path: path, opts: buildOptions(opts)}
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// Lines opens the file, yields its lines and closes it when the pass ends.
func (f *File) Lines() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		t, err := decoder(f.opts.encoding)
		if err != nil {
			yield("", fmt.Errorf("read file %s: %w", f.path, err))
			return
		}

		fh, err := os.Open(f.path)
		if err != nil {
			yield("", fmt.Errorf("read file %s: %w", f.path, err))
			return
		}
		defer fh.Close()

		readLines(transform.NewReader(fh, t), f.path, yield)
	}
}

// Text splits an in-memory string on newlines.
// The string is already decoded; it is only checked for valid UTF-8.
type Text struct {
	text string
}

// NewText creates a source over literal text.
func NewText(text string) *Text {
	return &Text{text: text}
}

// Lines yields each "\n"-separated segment, trimmed.
func (t *Text) Lines() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		n := 0
		for line := range strings.SplitSeq(t.text, "\n") {
			n++
			if !utf8.ValidString(line) {
				yield("", fmt.Errorf("decode text line %d: %w", n, internalerr.ErrDecode))
				return
			}
			if !yield(strings.TrimSpace(line), nil) {
				return
			}
		}
	}
}

// Reader streams lines from an io.Reader owned by the caller.
// The reader is consumed by the first pass; later passes see only what is left.
type Reader struct {
	r    io.Reader
	name string
	opts options
}

// NewReader creates a source over r. name is used in error messages.
func NewReader(r io.Reader, name string, opts ...Option) *Reader {
	if name == "" {
		name = "reader"
	}
	return &Reader{r: r, name: name, opts: buildOptions(opts)}
}

// Lines yields the lines of the underlying reader.
func (r *Reader) Lines() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		t, err := decoder(r.opts.encoding)
		if err != nil {
			yield("", fmt.Errorf("read %s: %w", r.name, err))
			return
		}
		readLines(transform.NewReader(r.r, t), r.name, yield)
	}
}
