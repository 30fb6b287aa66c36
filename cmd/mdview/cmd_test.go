package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/riverfjs/mdview-go/internal/workspace"
)

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	md := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(md, []byte("# Doc"), 0o644); err != nil {
		t.Fatal(err)
	}
	txt := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := readSource([]string{md}, nil)
	if err != nil || got != "# Doc" {
		t.Errorf("readSource(md) = %q, %v", got, err)
	}

	if _, err := readSource([]string{txt}, nil); !errors.Is(err, workspace.ErrNotMarkdown) {
		t.Errorf("readSource(txt) error = %v, want ErrNotMarkdown", err)
	}

	if _, err := readSource([]string{filepath.Join(dir, "missing.md")}, nil); !errors.Is(err, workspace.ErrReadFile) {
		t.Errorf("readSource(missing) error = %v, want ErrReadFile", err)
	}

	got, err = readSource(nil, strings.NewReader("stdin text"))
	if err != nil || got != "stdin text" {
		t.Errorf("readSource(stdin) = %q, %v", got, err)
	}
}

func TestRenderConfig(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	cfg := `
mermaid: true
default_language: text
heading_ids: false
callout_colors:
  note: purple
`
	if err := v.ReadConfig(strings.NewReader(cfg)); err != nil {
		t.Fatal(err)
	}

	config := renderConfig(v)
	if !config.Mermaid || config.HeadingIDs || config.DefaultLanguage != "text" {
		t.Errorf("config = %+v", config)
	}
	if got := config.CalloutColor("NOTE"); got != "purple" {
		t.Errorf("NOTE color = %q", got)
	}
	if got := config.CalloutColor("TIP"); got != "green" {
		t.Errorf("TIP color = %q", got)
	}
	if !config.FrontMatter {
		t.Error("FrontMatter default changed")
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	md := filepath.Join(dir, "page.mdx")
	src := "import X from './x'\n\n# Page\n\n> [!TIP]\n> hi"
	if err := os.WriteFile(md, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"render", md})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	html := out.String()
	if !strings.Contains(html, `<h1 id="page">Page</h1>`) || !strings.Contains(html, "callout-tip") {
		t.Errorf("output = %s", html)
	}
	if strings.Contains(html, "import") {
		t.Errorf("MDX import leaked: %s", html)
	}
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.html")
	err := writeOutput(path, func(w io.Writer) error {
		return writeRender(w, "# Out")
	})
	if err != nil {
		t.Fatalf("writeOutput() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `<h1 id="out">Out</h1>`) {
		t.Errorf("file = %q", data)
	}

	// 写入失败时返回写入的错误
	want := errors.New("disk full")
	if err := writeOutput(path, func(io.Writer) error { return want }); !errors.Is(err, want) {
		t.Errorf("writeOutput() error = %v, want %v", err, want)
	}

	if err := writeOutput(filepath.Join(dir, "missing", "out.html"), func(io.Writer) error { return nil }); err == nil {
		t.Error("writeOutput() into a missing directory succeeded")
	}
}
