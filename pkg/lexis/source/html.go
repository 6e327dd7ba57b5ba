package source

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/cognicore/lexis/pkg/lexis/internalerr"
)

// HTML yields the visible text of an HTML document as lines.
// Markup is dropped, as is the content of script and style elements. Inline
// elements do not break lines, so "un<em>believ</em>able" stays one word;
// block elements, br and newlines in the text do.
// Like Reader, the underlying reader is consumed by the first pass.
type HTML struct {
	r    io.Reader
	name string
	opts options
}

// NewHTML creates a source over an HTML document. name is used in error messages.
func NewHTML(r io.Reader, name string, opts ...Option) *HTML {
	if name == "" {
		name = "html"
	}
	return &HTML{r: r, name: name, opts: buildOptions(opts)}
}

// Lines tokenizes the document incrementally and yields each non-empty
// line of text content.
func (h *HTML) Lines() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		t, err := decoder(h.opts.encoding)
		if err != nil {
			yield("", fmt.Errorf("read %s: %w", h.name, err))
			return
		}

		z := html.NewTokenizer(transform.NewReader(h.r, t))
		var buf strings.Builder
		n := 0
		hidden := 0

		// flush yields the pending line, if any, and reports whether to go on
		flush := func() bool {
			line := strings.TrimSpace(buf.String())
			buf.Reset()
			if line == "" {
				return true
			}
			n++
			return yield(line, nil)
		}

		for {
			tt := z.Next()
			switch tt {
			case html.ErrorToken:
				if err := z.Err(); !errors.Is(err, io.EOF) {
					yield("", htmlError(h.name, n, err))
					return
				}
				flush()
				return

			case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
				name, _ := z.TagName()
				tag := string(name)
				if hiddenTags[tag] {
					switch {
					case tt == html.StartTagToken:
						hidden++
					case tt == html.EndTagToken && hidden > 0:
						hidden--
					}
					continue
				}
				if blockTags[tag] && !flush() {
					return
				}

			case html.TextToken:
				if hidden > 0 {
					continue
				}
				text := string(z.Text())
				for {
					i := strings.IndexByte(text, '\n')
					if i < 0 {
						buf.WriteString(text)
						break
					}
					buf.WriteString(text[:i])
					if !flush() {
						return
					}
					text = text[i+1:]
				}
			}
		}
	}
}

func htmlError(name string, n int, err error) error {
	if errors.Is(err, encoding.ErrInvalidUTF8) {
		return fmt.Errorf("decode %s after %d text lines: %w: %w", name, n, internalerr.ErrDecode, err)
	}
	return fmt.Errorf("read %s after %d text lines: %w", name, n, err)
}

var hiddenTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// blockTags end the current line when they open or close
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"body": true, "br": true, "caption": true, "dd": true, "div": true,
	"dl": true, "dt": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "head": true,
	"header": true, "hr": true, "html": true, "li": true, "main": true,
	"nav": true, "ol": true, "option": true, "p": true, "pre": true,
	"section": true, "table": true, "tbody": true, "td": true,
	"tfoot": true, "th": true, "thead": true, "title": true, "tr": true,
	"ul": true,
}

// HTMLFile streams the visible text of an HTML file, reopening it on every
// pass and closing it when the pass ends.
type HTMLFile struct {
	path string
	opts []Option
}

// NewHTMLFile creates an HTML source reading the file at path
func NewHTMLFile(path string, opts ...Option) *HTMLFile {
	return &HTMLFile{path: path, opts: opts}
}

// Lines opens the file and yields its text lines
func (h *HTMLFile) Lines() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		fh, err := os.Open(h.path)
		if err != nil {
			yield("", fmt.Errorf("read file %s: %w", h.path, err))
			return
		}
		defer fh.Close()

		for line, err := range NewHTML(fh, h.path, h.opts...).Lines() {
			if !yield(line, err) || err != nil {
				return
			}
		}
	}
}
