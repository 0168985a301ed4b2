package sitedeploy

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// newTestEmbedder sets up a temp working directory (script and PNG paths in
// templates are resolved relative to it) and returns an embedder plus the
// output path.
func newTestEmbedder(t *testing.T, template string) (*lineEmbedder, string, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile("index.html", []byte(template), 0o644); err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	e := &lineEmbedder{
		templatePath: "index.html",
		outPath:      "index_deploy.html",
		log:          &log,
	}
	return e, filepath.Join(dir, "index_deploy.html"), &log
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestEmbedScriptInline(t *testing.T) {
	e, out, _ := newTestEmbedder(t, `<script src="app.js"></script>`+"\n")
	if err := os.WriteFile("app.js", []byte("console.log('hi');\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := e.Embed("", "1.0"); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	want := "<script>\nconsole.log('hi');\n</script>\n"
	if got := readOutput(t, out); got != want {
		t.Errorf("Embed() = %q, want %q", got, want)
	}
}

func TestEmbedVersionMarker(t *testing.T) {
	e, out, _ := newTestEmbedder(t, `<a onclick="show_settings()">Settings (version)</a>`+"\n")

	if err := e.Embed("", "2.3.1"); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	got := readOutput(t, out)
	if !strings.Contains(got, "Settings (2.3.1)") {
		t.Errorf("version not substituted: %q", got)
	}
	if strings.Contains(got, "version") {
		t.Errorf("literal version word left on marker line: %q", got)
	}
}

func TestEmbedPNGReferences(t *testing.T) {
	pngBytes := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x01}
	dataURI := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)

	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "css url reference",
			line: `.compass { background: url(bg.png) no-repeat; }`,
			want: `.compass { background: url(` + dataURI + `) no-repeat; }` + "\n",
		},
		{
			name: "img src reference",
			line: `<p><img class="icon" src="bg.png" alt="x"></p>`,
			want: `<p><img class="icon" src="` + dataURI + `" alt="x"></p>` + "\n",
		},
		{
			name: "img src with directory",
			line: `<img src="icons/bg.png">`,
			want: `<img src="` + dataURI + `">` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, out, _ := newTestEmbedder(t, tt.line+"\n")
			if err := os.MkdirAll("icons", 0o755); err != nil {
				t.Fatal(err)
			}
			for _, p := range []string{"bg.png", filepath.Join("icons", "bg.png")} {
				if err := os.WriteFile(p, pngBytes, 0o644); err != nil {
					t.Fatal(err)
				}
			}

			if err := e.Embed("", "1.0"); err != nil {
				t.Fatalf("Embed() error = %v", err)
			}
			if got := readOutput(t, out); got != tt.want {
				t.Errorf("Embed() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmbedMissingPNGDegradesLine(t *testing.T) {
	e, out, log := newTestEmbedder(t, `body { background: url(gone.png); }`+"\n")

	if err := e.Embed("", "1.0"); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	got := readOutput(t, out)
	if !strings.Contains(got, "url()") {
		t.Errorf("missing PNG should leave an empty reference: %q", got)
	}
	if !strings.Contains(log.String(), "Error encoding PNG") {
		t.Errorf("missing PNG not logged: %q", log.String())
	}
}

func TestEmbedManualMarker(t *testing.T) {
	e, out, _ := newTestEmbedder(t, "<div id=\"manual\">\nMANUAL\n</div>\n")

	manual := "<h1>Manual</h1>\n<p>content</p>\n"
	if err := e.Embed(manual, "1.0"); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	want := "<div id=\"manual\">\n" + manual + "</div>\n"
	if got := readOutput(t, out); got != want {
		t.Errorf("Embed() = %q, want %q", got, want)
	}
}

func TestEmbedPassThroughPreservesOrder(t *testing.T) {
	template := "<!DOCTYPE html>\n<html>\n<body>\n<p>plain</p>\n</body>\n</html>\n"
	e, out, _ := newTestEmbedder(t, template)

	if err := e.Embed("", "1.0"); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if got := readOutput(t, out); got != template {
		t.Errorf("unmatched lines must pass through unchanged:\ngot  %q\nwant %q", got, template)
	}
}

func TestEmbedMissingScriptAborts(t *testing.T) {
	e, out, _ := newTestEmbedder(t, "<p>before</p>\n"+`<script src="gone.js"></script>`+"\n<p>after</p>\n")

	err := e.Embed("", "1.0")
	if !errors.Is(err, ErrScriptInline) {
		t.Fatalf("Embed() error = %v, want ErrScriptInline", err)
	}

	// Partial output is left as-is; lines before the failure were written.
	got := readOutput(t, out)
	if !strings.Contains(got, "before") {
		t.Errorf("partial output missing earlier lines: %q", got)
	}
	if strings.Contains(got, "after") {
		t.Errorf("output contains lines past the failure point: %q", got)
	}
}

func TestEmbedMissingTemplate(t *testing.T) {
	t.Chdir(t.TempDir())
	e := &lineEmbedder{templatePath: "absent.html", outPath: "out.html", log: new(bytes.Buffer)}
	if err := e.Embed("", "1.0"); !errors.Is(err, ErrTemplateEmbed) {
		t.Errorf("Embed() error = %v, want ErrTemplateEmbed", err)
	}
}

// TestEmbedFullArtifact runs all classifiers in one template and checks the
// result is a self-contained document.
func TestEmbedFullArtifact(t *testing.T) {
	pngBytes := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	template := strings.Join([]string{
		`<!DOCTYPE html>`,
		`<html>`,
		`<head>`,
		`<style>body { background: url(bg.png); }</style>`,
		`<script src="app.js"></script>`,
		`</head>`,
		`<body>`,
		`<a href="#">Settings (version)</a>`,
		`<img src="icons/star.png">`,
		`MANUAL`,
		`</body>`,
		`</html>`,
	}, "\n") + "\n"

	e, out, _ := newTestEmbedder(t, template)
	if err := os.WriteFile("app.js", []byte("var x = 1;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("bg.png", pngBytes, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll("icons", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("icons", "star.png"), pngBytes, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := e.Embed("<h2 id=\"help\">Help</h2>\n", "3.1.4"); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	got := readOutput(t, out)

	if strings.Contains(got, `src="app.js"`) || strings.Contains(got, "bg.png") || strings.Contains(got, "star.png") {
		t.Errorf("artifact still references external files:\n%s", got)
	}

	// The artifact must stay parseable HTML with the inlined pieces in place.
	doc, err := html.Parse(strings.NewReader(got))
	if err != nil {
		t.Fatalf("output does not parse as HTML: %v", err)
	}

	var scriptText string
	var imgSrc string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script":
				if n.FirstChild != nil {
					scriptText = n.FirstChild.Data
				}
			case "img":
				for _, attr := range n.Attr {
					if attr.Key == "src" {
						imgSrc = attr.Val
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if !strings.Contains(scriptText, "var x = 1;") {
		t.Errorf("inline script body missing: %q", scriptText)
	}
	if !strings.HasPrefix(imgSrc, "data:image/png;base64,") {
		t.Errorf("img src is not a data URI: %q", imgSrc)
	}
}

// TestPNGEncodeRoundTrip checks base64 data URIs decode back to the original
// bytes.
func TestPNGEncodeRoundTrip(t *testing.T) {
	t.Chdir(t.TempDir())

	original := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0xff, 0x00, 0x7f, 0x33}
	if err := os.WriteFile("img.png", original, 0o644); err != nil {
		t.Fatal(err)
	}

	e := &lineEmbedder{log: new(bytes.Buffer)}
	uri := e.encodePNG("img.png")

	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("encodePNG() = %q, want %q prefix", uri, prefix)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("decoding data URI: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("round trip mismatch: got %v, want %v", decoded, original)
	}
}
