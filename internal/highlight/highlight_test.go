package highlight

import (
	"bytes"
	"io"
	"log"
	"strings"
	"testing"
)

func init() {
	SetLogger(log.New(io.Discard, "", 0))
}

func TestChroma_KnownLanguage(t *testing.T) {
	h := NewChroma()
	code := "func main() {\n\treturn\n}"
	got := h.Highlight(code, "go")

	if got.Fallback {
		t.Fatal("Highlight(go) fell back to plain text")
	}
	if got.Language != "go" {
		t.Errorf("Language = %q, want go", got.Language)
	}
	if got.Wrapper != "chroma" {
		t.Errorf("Wrapper = %q, want chroma", got.Wrapper)
	}
	if !strings.Contains(got.HTML, `<span class="kd">func</span>`) {
		t.Errorf("HTML missing keyword span: %s", got.HTML)
	}
	if n := strings.Count(got.HTML, "\n"); n != 2 {
		t.Errorf("HTML has %d newlines, want 2: %q", n, got.HTML)
	}
}

func TestChroma_Aliases(t *testing.T) {
	h := NewChroma()
	tests := []struct {
		tag  string
		want string
	}{
		{"js", "javascript"},
		{"ts", "typescript"},
		{"py", "python"},
		{"sh", "bash"},
		{"yml", "yaml"},
		{"html", "markup"},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got := h.Highlight("x", tt.tag)
			if got.Fallback {
				t.Fatalf("Highlight(%q) fell back", tt.tag)
			}
			if got.Language != tt.want {
				t.Errorf("Language = %q, want %q", got.Language, tt.want)
			}
		})
	}
}

func TestChroma_UnknownLanguage(t *testing.T) {
	var logs bytes.Buffer
	SetLogger(log.New(&logs, "", 0))
	defer SetLogger(log.New(io.Discard, "", 0))

	h := NewChroma()
	code := "<tag> & +++\n---"
	for i := 0; i < 3; i++ {
		got := h.Highlight(code, "klingon-script")
		if !got.Fallback || got.Language != PlainText {
			t.Fatalf("Highlight() = %+v, want plaintext fallback", got)
		}
		if got.HTML != "&lt;tag&gt; &amp; +++\n---" {
			t.Errorf("HTML = %q", got.HTML)
		}
	}
	if n := strings.Count(logs.String(), "klingon-script"); n != 1 {
		t.Errorf("unknown grammar logged %d times, want 1", n)
	}
}

func TestChroma_EscapesMarkup(t *testing.T) {
	got := NewChroma().Highlight("<script>alert(1)</script>", "html")
	if strings.Contains(got.HTML, "<script>") {
		t.Errorf("HTML contains raw <script>: %s", got.HTML)
	}
	if !strings.Contains(got.HTML, "&lt;") {
		t.Errorf("HTML not escaped: %s", got.HTML)
	}
}

func TestChroma_PreservesLines(t *testing.T) {
	code := "a = 1\n\n\nb = 2\n"
	got := NewChroma().Highlight(code, "python")
	if n := strings.Count(got.HTML, "\n"); n != strings.Count(code, "\n") {
		t.Errorf("HTML has %d newlines, want %d: %q", n, strings.Count(code, "\n"), got.HTML)
	}
}

func TestChroma_NoTag(t *testing.T) {
	got := NewChroma().Highlight("a < b", "")
	if got.Language != "" || got.Fallback {
		t.Errorf("Highlight(\"\") = %+v", got)
	}
	if got.HTML != "a &lt; b" {
		t.Errorf("HTML = %q", got.HTML)
	}
}

func TestPlain(t *testing.T) {
	got := Plain{}.Highlight("if a && b {}", "golang")
	if got.Language != "go" || got.HTML != "if a &amp;&amp; b {}" {
		t.Errorf("Plain.Highlight() = %+v", got)
	}
}

func TestWriteCSS(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSS(&buf, "github"); err != nil {
		t.Fatalf("WriteCSS() error = %v", err)
	}
	if !strings.Contains(buf.String(), ".chroma") {
		t.Errorf("css missing .chroma scope: %s", buf.String())
	}
}

func TestStyle(t *testing.T) {
	if _, ok := Style("tomorrow"); !ok {
		t.Error("Style(tomorrow) not resolved through alias")
	}
	if s, ok := Style("no-such-theme"); ok || s == nil {
		t.Errorf("Style(no-such-theme) = %v, %v", s, ok)
	}
}
