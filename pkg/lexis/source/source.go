// Package source produces lazy sequences of trimmed text lines.
//
// A Source is consumed with a range-over-func loop:
//
//	for line, err := range src.Lines() {
//		if err != nil {
//			return err
//		}
//		...
//	}
//
// Every call to Lines starts a new pass. Sources backed by a file open it when
// the pass starts and close it when the pass ends, including when the caller
// breaks out of the loop early.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

// DefaultEncoding is assumed when no encoding is configured.
const DefaultEncoding = "utf-8"

// Source yields whitespace-trimmed lines in input order.
// The first non-nil error ends the sequence.
type Source interface {
	Lines() iter.Seq2[string, error]
}

// Option configures byte-oriented sources (File, Reader, HTML).
type Option func(*options)

type options struct {
	encoding string
}

// WithEncoding sets the IANA name of the input encoding, e.g. "ISO-8859-1".
// An empty name means UTF-8.
func WithEncoding(name string) Option {
	return func(o *options) {
		o.encoding = name
	}
}

func buildOptions(opts []Option) options {
	o := options{encoding: DefaultEncoding}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Resolve treats input as a file path when it names an existing path on disk,
// and as literal text otherwise.
func Resolve(input string, opts ...Option) Source {
	if input != "" {
		if _, err := os.Stat(input); err == nil {
			return NewFile(input, opts...)
		}
	}
	return NewText(input)
}

// CheckEncoding reports whether name is a usable encoding.
func CheckEncoding(name string) error {
	_, err := decoder(name)
	return err
}

// decoder returns a transformer producing UTF-8 from the named encoding.
// UTF-8 input is validated rather than decoded so that bad bytes surface as
// errors instead of replacement characters.
func decoder(name string) (transform.Transformer, error) {
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return encoding.UTF8Validator, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: unsupported encoding %q", internalerr.ErrInvalidConfig, name)
	}
	if canonical, _ := ianaindex.IANA.Name(enc); canonical == "UTF-8" {
		return encoding.UTF8Validator, nil
	}
	return enc.NewDecoder(), nil
}

// readLines streams r line by line into yield. name identifies the input in
// error messages.
func readLines(r io.Reader, name string, yield func(string, error) bool) {
	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			yield("", lineError(name, n, err))
			return
		}
		if line == "" && err != nil {
			return
		}
		if !yield(strings.TrimSpace(line), nil) {
			return
		}
		if err != nil {
			return
		}
	}
}

func lineError(name string, n int, err error) error {
	if errors.Is(err, encoding.ErrInvalidUTF8) {
		return fmt.Errorf("decode %s line %d: %w: %w", name, n, internalerr.ErrDecode, err)
	}
	return fmt.Errorf("read %s line %d: %w", name, n, err)
}
