package sitedeploy

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// manualMarker is the template line (after trimming) replaced by the manual.
const manualMarker = "MANUAL"

// versionWord is the literal replaced on a version-marker line.
const versionWord = "version"

// Line classifiers, applied in priority order; the first match wins.
var (
	// A whole-line external script include: <script src="app.js"></script>
	scriptSrcPattern = regexp.MustCompile(`^<script src="(.*)"></script>`)

	// The settings caption carrying the version placeholder.
	versionMarkPattern = regexp.MustCompile(`.*Settings \((version)\).*`)

	// A CSS url(name.png) reference; lowercase name, digits, underscore, hyphen.
	cssURLPNGPattern = regexp.MustCompile(`^(.*)url\(([a-z0-9_\-]*\.png)\)(.*)$`)

	// An <img ... src="path/name.png"> attribute; slash additionally allowed.
	imgSrcPNGPattern = regexp.MustCompile(`^(.*<img.*)src="([a-z0-9_\-/]*\.png)"(.*)$`)
)

// maxTemplateLine bounds scanner buffers; minified script lines can be long.
const maxTemplateLine = 1 << 20

// templateEmbedder abstracts the template-to-artifact transformation.
type templateEmbedder interface {
	Embed(manual, version string) error
}

// lineEmbedder rewrites the HTML template line by line into a single
// self-contained deploy artifact: external scripts are inlined, PNG
// references become data URIs, the version and manual markers are filled in.
type lineEmbedder struct {
	templatePath string
	outPath      string
	log          io.Writer
}

// Embed transforms the template into the deploy HTML. Unmatched lines pass
// through unchanged and in order. Script and template I/O errors abort the
// pass and leave the partially written output in place; a missing PNG only
// degrades its own line (the reference becomes an empty data URI).
func (e *lineEmbedder) Embed(manual, version string) error {
	in, err := os.Open(e.templatePath) // #nosec G304 -- path comes from the build configuration
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateEmbed, err)
	}
	defer in.Close()

	out, err := os.Create(e.outPath) // #nosec G304 -- path comes from the build configuration
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateEmbed, err)
	}
	defer out.Close()

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxTemplateLine)

	for sc.Scan() {
		line := sc.Text()
		if writeErr := e.emitLine(out, line, manual, version); writeErr != nil {
			return writeErr
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateEmbed, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateEmbed, err)
	}
	return nil
}

// emitLine classifies one template line and writes its replacement.
func (e *lineEmbedder) emitLine(out io.Writer, line, manual, version string) error {
	switch {
	case scriptSrcPattern.MatchString(line):
		m := scriptSrcPattern.FindStringSubmatch(line)
		return e.inlineScript(out, m[1])

	case versionMarkPattern.MatchString(line):
		_, err := fmt.Fprintln(out, strings.ReplaceAll(line, versionWord, version))
		return wrapEmbedErr(err)

	case cssURLPNGPattern.MatchString(line):
		m := cssURLPNGPattern.FindStringSubmatch(line)
		_, err := fmt.Fprintf(out, "%surl(%s)%s\n", m[1], e.encodePNG(m[2]), m[3])
		return wrapEmbedErr(err)

	case imgSrcPNGPattern.MatchString(line):
		m := imgSrcPNGPattern.FindStringSubmatch(line)
		_, err := fmt.Fprintf(out, "%ssrc=%q%s\n", m[1], e.encodePNG(m[2]), m[3])
		return wrapEmbedErr(err)

	case strings.TrimSpace(line) == manualMarker:
		_, err := io.WriteString(out, manual)
		return wrapEmbedErr(err)

	default:
		_, err := fmt.Fprintln(out, line)
		return wrapEmbedErr(err)
	}
}

// inlineScript replaces an external script reference with its contents
// wrapped in inline script tags. This is what makes the deploy artifact
// independent of separate script files.
func (e *lineEmbedder) inlineScript(out io.Writer, src string) error {
	content, err := os.ReadFile(src) // #nosec G304 -- src names a project file referenced by the template
	if err != nil {
		return fmt.Errorf("%w: %v", ErrScriptInline, err)
	}
	_, err = fmt.Fprintf(out, "<script>\n%s</script>\n", content)
	return wrapEmbedErr(err)
}

// encodePNG reads a PNG file and returns it as a data URI. A read failure is
// logged and yields an empty string so the surrounding line still ships.
func (e *lineEmbedder) encodePNG(path string) string {
	raw, err := os.ReadFile(path) // #nosec G304 -- path names a project file referenced by the template
	if err != nil {
		fmt.Fprintf(e.log, "Error encoding PNG: %v\n", err)
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
}

func wrapEmbedErr(err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateEmbed, err)
	}
	return nil
}
