package sitedeploy

import (
	"bytes"
	"context"
	"fmt"
	"os"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// manualBuilder abstracts README-to-manual conversion.
type manualBuilder interface {
	BuildManual(ctx context.Context) (string, error)
}

// goldmarkManual converts the README to HTML using goldmark (pure Go) and
// wraps it with the header and footer fragments.
type goldmarkManual struct {
	md         goldmark.Markdown
	readmePath string
	headerPath string
	footerPath string
	outPath    string
}

// newGoldmarkManual creates a goldmarkManual with GFM extensions, syntax
// highlighting, and auto heading IDs so manual sections are linkable.
func newGoldmarkManual(readmePath, headerPath, footerPath, outPath string) *goldmarkManual {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes for smaller HTML and external stylesheet control
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Generate IDs for headings (manual anchors)
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),  // Self-closing tags
			html.WithUnsafe(), // README embeds raw HTML fragments
		),
	)
	return &goldmarkManual{
		md:         md,
		readmePath: readmePath,
		headerPath: headerPath,
		footerPath: footerPath,
		outPath:    outPath,
	}
}

// BuildManual converts the README to HTML, writes the manual file (header
// fragment, footer fragment, then the body, preserving the historical splice
// order), and returns the body alone for template embedding.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (m *goldmarkManual) BuildManual(ctx context.Context) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	source, err := os.ReadFile(m.readmePath) // #nosec G304 -- path comes from the build configuration
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrManualBuild, err)
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if convErr := m.md.Convert(source, &buf); convErr != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrManualBuild, convErr)}
			return
		}
		done <- result{html: buf.String()}
	}()

	var body string
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		body = r.html
	}

	out, err := os.Create(m.outPath) // #nosec G304 -- path comes from the build configuration
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrManualBuild, err)
	}
	defer out.Close()

	for _, fragment := range []string{m.headerPath, m.footerPath} {
		content, readErr := os.ReadFile(fragment) // #nosec G304 -- path comes from the build configuration
		if readErr != nil {
			return "", fmt.Errorf("%w: %v", ErrManualBuild, readErr)
		}
		if _, writeErr := out.Write(content); writeErr != nil {
			return "", fmt.Errorf("%w: %v", ErrManualBuild, writeErr)
		}
	}

	if _, err := out.WriteString(body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrManualBuild, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrManualBuild, err)
	}

	return body, nil
}
